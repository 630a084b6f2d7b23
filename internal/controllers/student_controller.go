package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/reports"
	"github.com/zaqqye/campus_attendance/internal/semester"
)

type StudentController struct {
	DB   *gorm.DB
	Gate *semester.Service
}

func currentStudent(c *gin.Context) (models.User, *models.Student, bool) {
	uVal, _ := c.Get("user")
	user := uVal.(models.User)
	if user.Student == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "student profile required"})
		return user, nil, false
	}
	return user, user.Student, true
}

// Dashboard returns the student's live semester summary, today's marked
// periods and archived past semesters. The stopped flag is derived from the
// stored activity flag and the live stop lookup; nothing is written here.
func (s *StudentController) Dashboard(c *gin.Context) {
	_, student, ok := currentStudent(c)
	if !ok {
		return
	}

	active, err := s.Gate.EffectiveActive(*student)
	if err != nil {
		respondError(c, err)
		return
	}

	sum, err := reports.ForStudent(s.DB, *student, nil, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	today := time.Now().UTC()
	todayPeriods, err := reports.TodayPeriods(s.DB, student.ID, today)
	if err != nil {
		respondError(c, err)
		return
	}

	var pastSemesters []models.SemesterHistory
	if err := s.DB.
		Where("student_id = ?", student.ID).
		Order("semester_number").
		Find(&pastSemesters).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student":          student,
		"semester_stopped": !active,
		"summary":          sum,
		"today":            reports.DateOnly(today),
		"today_attendance": todayPeriods,
		"past_semesters":   pastSemesters,
	})
}

// SemesterReport returns the comprehensive aggregate over the student's
// default range.
func (s *StudentController) SemesterReport(c *gin.Context) {
	_, student, ok := currentStudent(c)
	if !ok {
		return
	}

	sum, err := reports.ForStudent(s.DB, *student, nil, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"student": student,
		"summary": sum,
	})
}
