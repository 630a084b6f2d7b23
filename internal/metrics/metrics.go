// Package metrics holds the prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StudentMarks counts marked student periods, labeled by status.
	StudentMarks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_student_marks_total",
		Help: "Student attendance periods marked, by status.",
	}, []string{"status"})

	// TeacherCheckIns counts successful GPS-verified teacher check-ins.
	TeacherCheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_teacher_checkins_total",
		Help: "Teacher check-ins recorded.",
	})

	// TeacherCheckOuts counts teacher check-outs.
	TeacherCheckOuts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_teacher_checkouts_total",
		Help: "Teacher check-outs recorded.",
	})

	// LowAttendanceAlerts counts alerts handed to the notifier.
	LowAttendanceAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_low_attendance_alerts_total",
		Help: "Low-attendance notifications triggered.",
	})

	// SemesterStops counts completed stop transitions.
	SemesterStops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_semester_stops_total",
		Help: "Semester stop transitions committed.",
	})
)
