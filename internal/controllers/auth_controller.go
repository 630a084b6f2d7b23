package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/middleware"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/reports"
	"github.com/zaqqye/campus_attendance/internal/semester"
	"github.com/zaqqye/campus_attendance/internal/utils"
)

type AuthController struct {
	DB        *gorm.DB
	Gate      *semester.Service
	JWTSecret string
	ExpiresIn time.Duration
}

type registerStudentRequest struct {
	Name           string         `json:"name" binding:"required"`
	RegisterNumber string         `json:"register_number" binding:"required"`
	Email          string         `json:"email" binding:"required,email"`
	Password       string         `json:"password" binding:"required,min=6"`
	Branch         string         `json:"branch" binding:"required"`
	Semester       FlexibleString `json:"semester" binding:"required"`
	Section        string         `json:"section" binding:"required"`
	Phone          string         `json:"phone"`
}

type registerTeacherRequest struct {
	Name          string `json:"name" binding:"required"`
	EmployeeID    string `json:"employee_id" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Branch        string `json:"branch" binding:"required"`
	Qualification string `json:"qualification" binding:"required"`
	StaffCategory string `json:"staff_category" binding:"required"`
	Role          string `json:"role" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// RegisterStudent creates a user plus student profile. Registration into a
// branch/semester whose attendance window is currently stopped is rejected;
// the admin has to reactivate the pair first.
func (a *AuthController) RegisterStudent(c *gin.Context) {
	var req registerStudentRequest
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
	if !models.ValidSection(req.Section) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown section"})
		return
	}

	stopped, err := a.Gate.IsStopped(req.Branch, sem)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stopped {
		c.JSON(http.StatusForbidden, gin.H{"error": "attendance for this branch and semester is stopped"})
		return
	}

	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	if err := a.DB.Model(&models.Student{}).Where("register_number = ?", req.RegisterNumber).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "register number already exists"})
		return
	}

	pw, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		UserID:   uuid.NewString(),
		Email:    req.Email,
		Password: pw,
		Role:     models.RoleStudent,
		Active:   true,
	}
	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		student := models.Student{
			UserIDRef:         user.ID,
			Name:              req.Name,
			RegisterNumber:    req.RegisterNumber,
			Branch:            req.Branch,
			CurrentSemester:   sem,
			Section:           req.Section,
			Phone:             req.Phone,
			SemesterStartDate: reports.DateOnly(time.Now().UTC()),
			IsSemesterActive:  true,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered",
		"user_id": user.UserID,
		"email":   user.Email,
		"role":    user.Role,
	})
}

// RegisterTeacher creates a user plus teacher profile. The role title must
// belong to the chosen staff category.
func (a *AuthController) RegisterTeacher(c *gin.Context) {
	var req registerTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidTeacherBranch(req.Branch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown branch"})
		return
	}
	titles, ok := models.TeacherRoles[req.StaffCategory]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown staff category"})
		return
	}
	validTitle := false
	for _, t := range titles {
		if t == req.Role {
			validTitle = true
			break
		}
	}
	if !validTitle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role does not belong to staff category"})
		return
	}

	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	if err := a.DB.Model(&models.Teacher{}).Where("employee_id = ?", req.EmployeeID).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "employee id already exists"})
		return
	}

	pw, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		UserID:   uuid.NewString(),
		Email:    req.Email,
		Password: pw,
		Role:     models.RoleTeacher,
		Active:   true,
	}
	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		teacher := models.Teacher{
			UserIDRef:        user.ID,
			Name:             req.Name,
			EmployeeID:       req.EmployeeID,
			Branch:           req.Branch,
			Qualification:    req.Qualification,
			StaffCategory:    req.StaffCategory,
			Role:             req.Role,
			RegistrationDate: reports.DateOnly(time.Now().UTC()),
		}
		return tx.Create(&teacher).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered",
		"user_id": user.UserID,
		"email":   user.Email,
		"role":    user.Role,
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !user.Active || !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if user.Role != req.Role {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid role selected"})
		return
	}

	now := time.Now()
	claims := middleware.Claims{
		UserID: user.UserID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ExpiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(a.ExpiresIn.Seconds()),
		"role":         user.Role,
	})
}

func (a *AuthController) Me(c *gin.Context) {
	uVal, _ := c.Get("user")
	user := uVal.(models.User)
	resp := gin.H{
		"user_id":    user.UserID,
		"email":      user.Email,
		"role":       user.Role,
		"active":     user.Active,
		"created_at": user.CreatedAt,
	}
	if user.Student != nil {
		resp["student"] = user.Student
	}
	if user.Teacher != nil {
		resp["teacher"] = user.Teacher
	}
	c.JSON(http.StatusOK, resp)
}
