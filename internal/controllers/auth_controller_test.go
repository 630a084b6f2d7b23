package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zaqqye/campus_attendance/internal/database"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/reports"
	"github.com/zaqqye/campus_attendance/internal/semester"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Registration into a stopped (branch, semester) is rejected; after the
// admin reactivates the pair, the same registration succeeds with a fresh
// semester start date.
func TestRegisterStudentStoppedSemester(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	gate := semester.NewService(db)
	ctrl := &AuthController{DB: db, Gate: gate, JWTSecret: "secret", ExpiresIn: time.Hour}

	r := gin.New()
	r.POST("/register/student", ctrl.RegisterStudent)

	payload := gin.H{
		"name":            "S One",
		"register_number": "21CSE001",
		"email":           "s1@example.com",
		"password":        "secret12",
		"branch":          "CSE",
		"semester":        3,
		"section":         "A",
	}

	result, err := gate.Stop(1, "CSE", 3)
	require.NoError(t, err)

	w := postJSON(t, r, "/register/student", payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var students int64
	require.NoError(t, db.Model(&models.Student{}).Count(&students).Error)
	assert.Zero(t, students, "a rejected registration creates nothing")
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)

	require.NoError(t, gate.Reactivate(1, result.StopID))

	w = postJSON(t, r, "/register/student", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var student models.Student
	require.NoError(t, db.Where("register_number = ?", "21CSE001").First(&student).Error)
	assert.True(t, student.IsSemesterActive)
	assert.Equal(t, reports.DateOnly(time.Now().UTC()), student.SemesterStartDate,
		"the new cycle starts today, not at the stopped cycle's start")
	assert.Equal(t, 3, student.CurrentSemester)
}

func TestRegisterStudentDuplicateRegisterNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	ctrl := &AuthController{DB: db, Gate: semester.NewService(db), JWTSecret: "secret", ExpiresIn: time.Hour}

	r := gin.New()
	r.POST("/register/student", ctrl.RegisterStudent)

	payload := gin.H{
		"name":            "S One",
		"register_number": "21CSE001",
		"email":           "s1@example.com",
		"password":        "secret12",
		"branch":          "CSE",
		"semester":        "3",
		"section":         "A",
	}
	w := postJSON(t, r, "/register/student", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["email"] = "s2@example.com"
	w = postJSON(t, r, "/register/student", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}
