package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/attendance"
	"github.com/zaqqye/campus_attendance/internal/config"
	"github.com/zaqqye/campus_attendance/internal/geofence"
	"github.com/zaqqye/campus_attendance/internal/mailer"
	"github.com/zaqqye/campus_attendance/internal/metrics"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/reports"
)

type TeacherController struct {
	DB       *gorm.DB
	Svc      *attendance.Service
	Fence    *geofence.Verifier
	Notifier mailer.Notifier
	Cfg      *config.Config
}

func currentTeacher(c *gin.Context) (models.User, *models.Teacher, bool) {
	uVal, _ := c.Get("user")
	user := uVal.(models.User)
	if user.Teacher == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "teacher profile required"})
		return user, nil, false
	}
	return user, user.Teacher, true
}

// Dashboard returns today's check-in state, the yearly aggregate and the
// subjects for the teacher's branch.
func (t *TeacherController) Dashboard(c *gin.Context) {
	_, teacher, ok := currentTeacher(c)
	if !ok {
		return
	}

	today := reports.DateOnly(time.Now().UTC())
	var todayStatus *models.TeacherAttendance
	var record models.TeacherAttendance
	err := t.DB.Where("teacher_id = ? AND date = ?", teacher.ID, today).First(&record).Error
	if err == nil {
		todayStatus = &record
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, err)
		return
	}

	yearly, err := reports.ForTeacherYear(t.DB, *teacher, time.Now().UTC().Year())
	if err != nil {
		respondError(c, err)
		return
	}

	var subjects []models.Subject
	if err := t.DB.Where("branch = ?", teacher.Branch).Order("semester, code").Find(&subjects).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teacher":      teacher,
		"today":        today,
		"today_status": todayStatus,
		"yearly":       yearly,
		"subjects":     subjects,
	})
}

type checkInRequest struct {
	Latitude  FlexibleString `json:"latitude"`
	Longitude FlexibleString `json:"longitude"`
}

// CheckInOut is the teacher's daily GPS-verified punch: first call checks
// in, second checks out.
func (t *TeacherController) CheckInOut(c *gin.Context) {
	_, teacher, ok := currentTeacher(c)
	if !ok {
		return
	}

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Latitude.String() == "" || req.Longitude.String() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location required"})
		return
	}

	verified := t.Fence.VerifyStrings(req.Latitude.String(), req.Longitude.String())
	lat, _ := strconv.ParseFloat(req.Latitude.String(), 64)
	lng, _ := strconv.ParseFloat(req.Longitude.String(), 64)

	action, err := t.Svc.Punch(teacher.ID, time.Now().UTC(), lat, lng, verified)
	if err != nil {
		respondError(c, err)
		return
	}

	switch action {
	case attendance.ActionCheckIn:
		metrics.TeacherCheckIns.Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Check-in successful", "location_verified": verified})
	case attendance.ActionCheckOut:
		metrics.TeacherCheckOuts.Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Check-out successful", "location_verified": verified})
	}
}

type markAttendanceRequest struct {
	StudentID      uint   `json:"student_id" binding:"required"`
	Periods        []int  `json:"periods" binding:"required"`
	Status         string `json:"status"`
	Subject        string `json:"subject" binding:"required"`
	AttendanceType string `json:"attendance_type"`
}

// MarkStudents upserts attendance for a set of periods on today's date and
// may fire a low-attendance alert afterwards; the alert can never fail the
// write.
func (t *TeacherController) MarkStudents(c *gin.Context) {
	_, teacher, ok := currentTeacher(c)
	if !ok {
		return
	}

	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = models.StatusPresent
	}
	if req.AttendanceType == "" {
		req.AttendanceType = models.TypeTheory
	}
	if req.Status != models.StatusPresent && req.Status != models.StatusAbsent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be present or absent"})
		return
	}
	if req.AttendanceType != models.TypeTheory && !models.IsPractical(req.AttendanceType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown attendance type"})
		return
	}
	if len(req.Periods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one period required"})
		return
	}
	for _, p := range req.Periods {
		if p < 1 || p > 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "periods must be between 1 and 8"})
			return
		}
	}

	var student models.Student
	if err := t.DB.First(&student, req.StudentID).Error; err != nil {
		respondError(c, err)
		return
	}

	if err := t.Svc.MarkPeriods(*teacher, student, time.Now().UTC(), req.Periods, req.Status, req.Subject, req.AttendanceType); err != nil {
		respondError(c, err)
		return
	}
	metrics.StudentMarks.WithLabelValues(req.Status).Add(float64(len(req.Periods)))

	t.maybeAlertLowAttendance(student)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        fmt.Sprintf("Attendance marked for %d periods", len(req.Periods)),
		"periods_marked": len(req.Periods),
	})
}

// maybeAlertLowAttendance recomputes the student's overall percentage and
// hands a below-threshold result to the notifier. Best effort only.
func (t *TeacherController) maybeAlertLowAttendance(student models.Student) {
	sum, err := reports.ForStudent(t.DB, student, nil, nil)
	if err != nil {
		return
	}
	if sum.OverallPercentage >= t.Cfg.LowAttendanceThreshold || sum.TotalPeriods <= t.Cfg.MinPeriodsForAlert {
		return
	}

	var user models.User
	if err := t.DB.First(&user, student.UserIDRef).Error; err != nil {
		return
	}

	metrics.LowAttendanceAlerts.Inc()
	go t.Notifier.NotifyLowAttendance(student.Name, user.Email, student.CurrentSemester, sum.OverallPercentage)
}

// Students lists the active roster for a branch/semester/section, the set a
// teacher can mark.
func (t *TeacherController) Students(c *gin.Context) {
	if _, _, ok := currentTeacher(c); !ok {
		return
	}

	branch := c.Query("branch")
	section := c.Query("section")
	sem, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semester query parameter required"})
		return
	}

	var students []models.Student
	if err := t.DB.
		Where("branch = ? AND current_semester = ? AND section = ? AND is_semester_active = ?",
			branch, sem, section, true).
		Order("register_number").
		Find(&students).Error; err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(students))
	for _, s := range students {
		out = append(out, gin.H{
			"id":              s.ID,
			"register_number": s.RegisterNumber,
			"name":            s.Name,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Subjects lists the catalog for a branch/semester.
func (t *TeacherController) Subjects(c *gin.Context) {
	if _, _, ok := currentTeacher(c); !ok {
		return
	}

	branch := c.Query("branch")
	sem, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semester query parameter required"})
		return
	}

	var subjects []models.Subject
	if err := t.DB.Where("branch = ? AND semester = ?", branch, sem).Order("code").Find(&subjects).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}
