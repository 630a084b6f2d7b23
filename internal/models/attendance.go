package models

import (
	"time"
)

// Attendance status values.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Attendance type values. Lab, CRT and workshop periods all count as
// practical in reports.
const (
	TypeTheory   = "theory"
	TypeLab      = "lab"
	TypeCRT      = "crt"
	TypeWorkshop = "workshop"
)

// IsPractical reports whether an attendance type belongs to the practical
// bucket.
func IsPractical(attendanceType string) bool {
	switch attendanceType {
	case TypeLab, TypeCRT, TypeWorkshop:
		return true
	}
	return false
}

// Attendance is one marked period for a student. At most one row exists per
// (student, date, period); re-marking the same period overwrites status,
// subject, type and marker.
type Attendance struct {
	ID             uint      `gorm:"primaryKey"`
	StudentID      uint      `gorm:"uniqueIndex:idx_attendance_student_date_period;index"`
	Date           time.Time `gorm:"uniqueIndex:idx_attendance_student_date_period;index"`
	Period         int       `gorm:"uniqueIndex:idx_attendance_student_date_period"`
	Status         string    `gorm:"index"`
	MarkedBy       uint
	MarkedAt       time.Time
	Subject        string
	SemesterAtTime int
	AttendanceType string `gorm:"index"`
}

// TeacherAttendance is the per-day check-in/check-out record for a teacher.
// One row per (teacher, date); check-out is filled in later the same day.
type TeacherAttendance struct {
	ID               uint      `gorm:"primaryKey"`
	TeacherID        uint      `gorm:"uniqueIndex:idx_teacher_attendance_day;index"`
	Date             time.Time `gorm:"uniqueIndex:idx_teacher_attendance_day;index"`
	CheckIn          *time.Time
	CheckOut         *time.Time
	Latitude         *float64
	Longitude        *float64
	LocationVerified bool
	Status           string `gorm:"index"`
}
