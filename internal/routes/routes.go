package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/attendance"
	"github.com/zaqqye/campus_attendance/internal/config"
	"github.com/zaqqye/campus_attendance/internal/controllers"
	"github.com/zaqqye/campus_attendance/internal/geofence"
	"github.com/zaqqye/campus_attendance/internal/mailer"
	"github.com/zaqqye/campus_attendance/internal/middleware"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/semester"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	expiresMins, err := time.ParseDuration(cfg.JWTExpiresIn + "m")
	if err != nil || expiresMins == 0 {
		expiresMins = 60 * time.Minute
	}

	gate := semester.NewService(db)
	fence := geofence.New(cfg.CollegeLat, cfg.CollegeLng, cfg.AllowedRadiusKM)
	notifier := mailer.New(cfg)
	attSvc := attendance.NewService(db, gate)

	authCtrl := &controllers.AuthController{DB: db, Gate: gate, JWTSecret: cfg.JWTSecret, ExpiresIn: expiresMins}
	studentCtrl := &controllers.StudentController{DB: db, Gate: gate}
	teacherCtrl := &controllers.TeacherController{DB: db, Svc: attSvc, Fence: fence, Notifier: notifier, Cfg: cfg}
	adminCtrl := &controllers.AdminController{DB: db, Gate: gate}
	subjectCtrl := &controllers.SubjectController{DB: db}
	reportCtrl := &controllers.ReportController{DB: db}
	catalogCtrl := controllers.CatalogController{}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		healthy := err == nil && sqlDB.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": healthy})
	})

	// Public
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register/student", authCtrl.RegisterStudent)
		auth.POST("/register/teacher", authCtrl.RegisterTeacher)
		auth.POST("/login", authCtrl.Login)
	}

	catalog := r.Group("/api/v1/catalog")
	{
		catalog.GET("/branches", catalogCtrl.Branches)
		catalog.GET("/staff-categories", catalogCtrl.StaffCategories)
		catalog.GET("/teacher-roles/:category", catalogCtrl.TeacherRoles)
	}

	// Protected
	authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{
		JWTSecret:    cfg.JWTSecret,
		JWTExpiresIn: expiresMins,
	})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)

		student := api.Group("/student", middleware.RequireRoles(models.RoleStudent))
		{
			student.GET("/dashboard", studentCtrl.Dashboard)
			student.GET("/reports/semester", studentCtrl.SemesterReport)
		}

		teacher := api.Group("/teacher", middleware.RequireRoles(models.RoleTeacher))
		{
			teacher.GET("/dashboard", teacherCtrl.Dashboard)
			teacher.POST("/attendance", teacherCtrl.CheckInOut)
			teacher.POST("/students/attendance", teacherCtrl.MarkStudents)
			teacher.GET("/students", teacherCtrl.Students)
			teacher.GET("/subjects", teacherCtrl.Subjects)
		}

		admin := api.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminCtrl.Dashboard)
			admin.POST("/semesters/stop", adminCtrl.StopSemester)
			admin.POST("/semesters/:id/reactivate", adminCtrl.ReactivateSemester)

			admin.GET("/subjects", subjectCtrl.List)
			admin.POST("/subjects", subjectCtrl.Create)

			admin.GET("/reports/daily", reportCtrl.Daily)
			admin.GET("/reports/monthly", reportCtrl.Monthly)
			admin.GET("/reports/semester", reportCtrl.Semester)
		}
	}
}
