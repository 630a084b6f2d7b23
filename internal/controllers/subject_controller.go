package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/models"
)

type SubjectController struct {
	DB *gorm.DB
}

type createSubjectRequest struct {
	Code        string         `json:"code" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Branch      string         `json:"branch" binding:"required"`
	Semester    FlexibleString `json:"semester" binding:"required"`
	SubjectType string         `json:"subject_type"`
}

func (s *SubjectController) Create(c *gin.Context) {
	var req createSubjectRequest
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
	if req.SubjectType == "" {
		req.SubjectType = models.TypeTheory
	}
	if req.SubjectType != models.TypeTheory && !models.IsPractical(req.SubjectType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown subject type"})
		return
	}

	var count int64
	if err := s.DB.Model(&models.Subject{}).Where("code = ?", req.Code).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "subject code already exists"})
		return
	}

	subject := models.Subject{
		Code:        req.Code,
		Name:        req.Name,
		Branch:      req.Branch,
		Semester:    sem,
		SubjectType: req.SubjectType,
	}
	if err := s.DB.Create(&subject).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (s *SubjectController) List(c *gin.Context) {
	var subjects []models.Subject
	if err := s.DB.Order("branch, semester, code").Find(&subjects).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}
