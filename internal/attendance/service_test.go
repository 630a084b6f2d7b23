package attendance

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zaqqye/campus_attendance/internal/apperrors"
	"github.com/zaqqye/campus_attendance/internal/database"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/semester"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db, semester.NewService(db))
}

func newTeacher(t *testing.T, db *gorm.DB) models.Teacher {
	t.Helper()
	teacher := models.Teacher{
		Name:             "T One",
		EmployeeID:       "EMP001",
		Branch:           "CSE",
		StaffCategory:    "teaching",
		Role:             "Assistant Professor",
		RegistrationDate: time.Now().UTC().AddDate(-1, 0, 0),
	}
	require.NoError(t, db.Create(&teacher).Error)
	return teacher
}

func newStudent(t *testing.T, db *gorm.DB, sem int) models.Student {
	t.Helper()
	student := models.Student{
		Name:              "S One",
		RegisterNumber:    fmt.Sprintf("21CSE%d", sem),
		Branch:            "CSE",
		CurrentSemester:   sem,
		Section:           "A",
		SemesterStartDate: time.Now().UTC().AddDate(0, -2, 0),
		IsSemesterActive:  true,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func TestPunchLifecycle(t *testing.T) {
	svc := setupService(t)
	teacher := newTeacher(t, svc.DB)
	now := time.Date(2024, time.March, 4, 9, 5, 0, 0, time.UTC)

	action, err := svc.Punch(teacher.ID, now, 17.1, 80.6, true)
	require.NoError(t, err)
	assert.Equal(t, ActionCheckIn, action)

	checkedIn, err := svc.CheckedIn(teacher.ID, now)
	require.NoError(t, err)
	assert.True(t, checkedIn)

	action, err = svc.Punch(teacher.ID, now.Add(8*time.Hour), 17.1, 80.6, true)
	require.NoError(t, err)
	assert.Equal(t, ActionCheckOut, action)

	_, err = svc.Punch(teacher.ID, now.Add(9*time.Hour), 17.1, 80.6, true)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	var record models.TeacherAttendance
	require.NoError(t, svc.DB.Where("teacher_id = ?", teacher.ID).First(&record).Error)
	require.NotNil(t, record.CheckIn)
	require.NotNil(t, record.CheckOut)
	assert.True(t, record.LocationVerified)

	// next day starts a fresh cycle
	action, err = svc.Punch(teacher.ID, now.AddDate(0, 0, 1), 17.1, 80.6, true)
	require.NoError(t, err)
	assert.Equal(t, ActionCheckIn, action)
}

func TestPunchRequiresVerifiedLocation(t *testing.T) {
	svc := setupService(t)
	teacher := newTeacher(t, svc.DB)
	now := time.Date(2024, time.March, 4, 9, 5, 0, 0, time.UTC)

	_, err := svc.Punch(teacher.ID, now, 20.0, 85.0, false)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	// the checkout punch does not re-verify location
	_, err = svc.Punch(teacher.ID, now, 17.1, 80.6, true)
	require.NoError(t, err)
	action, err := svc.Punch(teacher.ID, now.Add(time.Hour), 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, ActionCheckOut, action)
}

// Only a lost duplicate-key race reads as "already checked in"; an infra
// failure on the insert must not surface as a conflict.
func TestCheckInErrorTranslation(t *testing.T) {
	err := translateCheckInError(gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	infra := errors.New("connection reset by peer")
	err = translateCheckInError(infra)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, infra, err)
}

func checkIn(t *testing.T, svc *Service, teacher models.Teacher, now time.Time) {
	t.Helper()
	_, err := svc.Punch(teacher.ID, now, 17.1, 80.6, true)
	require.NoError(t, err)
}

func TestMarkPeriodsUpsert(t *testing.T) {
	svc := setupService(t)
	teacher := newTeacher(t, svc.DB)
	student := newStudent(t, svc.DB, 3)
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	checkIn(t, svc, teacher, now)

	require.NoError(t, svc.MarkPeriods(teacher, student, now, []int{1, 2}, models.StatusAbsent, "Maths", models.TypeTheory))

	// correction: re-mark period 1 present under a different subject
	require.NoError(t, svc.MarkPeriods(teacher, student, now, []int{1}, models.StatusPresent, "Physics", models.TypeTheory))

	var records []models.Attendance
	require.NoError(t, svc.DB.Where("student_id = ?", student.ID).Order("period").Find(&records).Error)
	require.Len(t, records, 2, "re-marking overwrites, never duplicates")
	assert.Equal(t, models.StatusPresent, records[0].Status)
	assert.Equal(t, "Physics", records[0].Subject)
	assert.Equal(t, models.StatusAbsent, records[1].Status)
	assert.Equal(t, "Maths", records[1].Subject)
}

func TestMarkPeriodsFreezesSemester(t *testing.T) {
	svc := setupService(t)
	teacher := newTeacher(t, svc.DB)
	student := newStudent(t, svc.DB, 3)
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	checkIn(t, svc, teacher, now)

	require.NoError(t, svc.MarkPeriods(teacher, student, now, []int{1}, models.StatusPresent, "Maths", models.TypeTheory))

	// student promoted between marks
	require.NoError(t, svc.DB.Model(&models.Student{}).
		Where("id = ?", student.ID).
		Update("current_semester", 4).Error)
	student.CurrentSemester = 4

	require.NoError(t, svc.MarkPeriods(teacher, student, now, []int{1}, models.StatusAbsent, "Maths", models.TypeTheory))

	var record models.Attendance
	require.NoError(t, svc.DB.Where("student_id = ?", student.ID).First(&record).Error)
	assert.Equal(t, models.StatusAbsent, record.Status)
	assert.Equal(t, 3, record.SemesterAtTime, "semester stays frozen at first insert")
}

func TestMarkPeriodsRequiresCheckIn(t *testing.T) {
	svc := setupService(t)
	teacher := newTeacher(t, svc.DB)
	student := newStudent(t, svc.DB, 3)
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

	err := svc.MarkPeriods(teacher, student, now, []int{1}, models.StatusPresent, "Maths", models.TypeTheory)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	var count int64
	require.NoError(t, svc.DB.Model(&models.Attendance{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMarkPeriodsClosedSemester(t *testing.T) {
	svc := setupService(t)
	teacher := newTeacher(t, svc.DB)
	student := newStudent(t, svc.DB, 3)
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	checkIn(t, svc, teacher, now)

	_, err := svc.Gate.Stop(1, student.Branch, student.CurrentSemester)
	require.NoError(t, err)

	err = svc.MarkPeriods(teacher, student, now, []int{1}, models.StatusPresent, "Maths", models.TypeTheory)
	assert.ErrorIs(t, err, apperrors.ErrSemesterClosed)
}
