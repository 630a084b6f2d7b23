package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/metrics"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/reports"
	"github.com/zaqqye/campus_attendance/internal/semester"
)

type AdminController struct {
	DB   *gorm.DB
	Gate *semester.Service
}

func currentAdmin(c *gin.Context) models.User {
	uVal, _ := c.Get("user")
	return uVal.(models.User)
}

// Dashboard returns headline counts, currently stopped semesters and the
// recent admin action log.
func (a *AdminController) Dashboard(c *gin.Context) {
	var totalStudents, totalTeachers int64
	if err := a.DB.Model(&models.Student{}).Count(&totalStudents).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := a.DB.Model(&models.Teacher{}).Count(&totalTeachers).Error; err != nil {
		respondError(c, err)
		return
	}

	today := reports.DateOnly(time.Now().UTC())
	var todayStudentMarks, todayTeacherMarks int64
	if err := a.DB.Model(&models.Attendance{}).Where("date = ?", today).Count(&todayStudentMarks).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := a.DB.Model(&models.TeacherAttendance{}).Where("date = ?", today).Count(&todayTeacherMarks).Error; err != nil {
		respondError(c, err)
		return
	}

	stops, err := a.Gate.ActiveStops()
	if err != nil {
		respondError(c, err)
		return
	}

	var recentLogs []models.AdminLog
	if err := a.DB.Order("timestamp DESC").Limit(10).Find(&recentLogs).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_students":           totalStudents,
		"total_teachers":           totalTeachers,
		"today_student_attendance": todayStudentMarks,
		"today_teacher_attendance": todayTeacherMarks,
		"stopped_semesters":        stops,
		"recent_logs":              recentLogs,
	})
}

type stopSemesterRequest struct {
	Branch   string         `json:"branch" binding:"required"`
	Semester FlexibleString `json:"semester" binding:"required"`
}

// StopSemester closes the attendance window for a branch/semester and
// archives its active students. The transition is atomic: on any failure
// nothing is stopped and nobody is archived.
func (a *AdminController) StopSemester(c *gin.Context) {
	admin := currentAdmin(c)

	var req stopSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sem, err := strconv.Atoi(req.Semester.String())
	if err != nil || sem < 1 || sem > 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semester must be between 1 and 8"})
		return
	}
	if !models.ValidBranch(req.Branch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown branch"})
		return
	}

	result, err := a.Gate.Stop(admin.ID, req.Branch, sem)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.SemesterStops.Inc()

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"stop_id":        result.StopID,
		"archived_count": result.ArchivedCount,
	})
}

// ReactivateSemester reopens a stopped pair for new registrations. Students
// archived by the stop stay archived.
func (a *AdminController) ReactivateSemester(c *gin.Context) {
	admin := currentAdmin(c)

	stopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stop id"})
		return
	}

	if err := a.Gate.Reactivate(admin.ID, uint(stopID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
