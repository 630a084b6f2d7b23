package reports

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zaqqye/campus_attendance/internal/models"
)

func TestEffectiveEndDate(t *testing.T) {
	today := day(2024, time.July, 15)
	student := models.Student{
		SemesterStartDate: day(2024, time.January, 10),
		IsSemesterActive:  true,
	}

	t.Run("active student, no stop", func(t *testing.T) {
		assert.Equal(t, today, EffectiveEndDate(student, nil, nil, today))
	})

	t.Run("branch currently stopped", func(t *testing.T) {
		stop := &models.StoppedSemester{StoppedAt: day(2024, time.June, 1)}
		assert.Equal(t, day(2024, time.June, 1), EffectiveEndDate(student, stop, nil, today))
	})

	t.Run("individually archived", func(t *testing.T) {
		archived := student
		archived.IsSemesterActive = false
		history := &models.SemesterHistory{EndDate: day(2024, time.May, 20)}
		assert.Equal(t, day(2024, time.May, 20), EffectiveEndDate(archived, nil, history, today))
	})

	t.Run("inactive without history falls back to today", func(t *testing.T) {
		archived := student
		archived.IsSemesterActive = false
		assert.Equal(t, today, EffectiveEndDate(archived, nil, nil, today))
	})
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Student{}, &models.Teacher{},
		&models.Attendance{}, &models.TeacherAttendance{},
		&models.Subject{}, &models.StoppedSemester{}, &models.SemesterHistory{},
		&models.AdminLog{},
	))
	return db
}

var nextUserRef uint64

func seedStudent(t *testing.T, db *gorm.DB, regNo, branch string, sem int, section string, start time.Time) models.Student {
	t.Helper()
	student := models.Student{
		UserIDRef:         uint(atomic.AddUint64(&nextUserRef, 1)),
		Name:              "Student " + regNo,
		RegisterNumber:    regNo,
		Branch:            branch,
		CurrentSemester:   sem,
		Section:           section,
		SemesterStartDate: start,
		IsSemesterActive:  true,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedMark(t *testing.T, db *gorm.DB, student models.Student, date time.Time, period int, status, attType string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Attendance{
		StudentID:      student.ID,
		Date:           date,
		Period:         period,
		Status:         status,
		Subject:        "Maths",
		SemesterAtTime: student.CurrentSemester,
		AttendanceType: attType,
	}).Error)
}

// Monthly roster rows come back sorted by register number, and each row's
// overall percentage is (theory+practical present)/(theory+practical total).
func TestMonthlyRosterOrderingAndFormula(t *testing.T) {
	db := testDB(t)

	start := day(2025, time.January, 1)
	s2 := seedStudent(t, db, "21CSE042", "CSE", 2, "A", start)
	s1 := seedStudent(t, db, "21CSE007", "CSE", 2, "A", start)

	seedMark(t, db, s1, day(2025, time.January, 6), 1, models.StatusPresent, models.TypeTheory)
	seedMark(t, db, s1, day(2025, time.January, 6), 2, models.StatusAbsent, models.TypeLab)
	seedMark(t, db, s2, day(2025, time.January, 7), 1, models.StatusPresent, models.TypeTheory)
	seedMark(t, db, s2, day(2025, time.January, 7), 2, models.StatusPresent, models.TypeLab)
	seedMark(t, db, s2, day(2025, time.January, 7), 3, models.StatusAbsent, models.TypeTheory)
	// outside January: must not count
	seedMark(t, db, s2, day(2025, time.February, 3), 1, models.StatusPresent, models.TypeTheory)

	rows, err := MonthlyRoster(db, "CSE", 2, "A", 2025, time.January)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "21CSE007", rows[0].RegisterNumber)
	assert.Equal(t, "21CSE042", rows[1].RegisterNumber)

	for _, row := range rows {
		total := row.Theory.Total + row.Practical.Total
		present := row.Theory.Present + row.Practical.Present
		assert.Equal(t, total, row.TotalPeriods)
		assert.InDelta(t, Pct(present, total), row.OverallPercentage, 1e-9)
	}
	assert.Equal(t, 2, rows[0].TotalPeriods)
	assert.InDelta(t, 50.0, rows[0].OverallPercentage, 1e-9)
	assert.Equal(t, 3, rows[1].TotalPeriods, "february mark stays out of the january roster")
	assert.InDelta(t, 2.0/3.0*100, rows[1].OverallPercentage, 1e-9)
}

// A student with no marks in the month still appears, with zeros.
func TestMonthlyRosterEmptyBucket(t *testing.T) {
	db := testDB(t)
	seedStudent(t, db, "21CSE001", "CSE", 2, "A", day(2025, time.January, 1))

	rows, err := MonthlyRoster(db, "CSE", 2, "A", 2025, time.March)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].TotalPeriods)
	assert.Zero(t, rows[0].OverallPercentage)
}

func TestDailyRoster(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "21CSE010", "CSE", 3, "B", day(2024, time.January, 10))

	d := day(2024, time.January, 10)
	seedMark(t, db, student, d, 1, models.StatusPresent, models.TypeTheory)
	seedMark(t, db, student, d, 2, models.StatusAbsent, models.TypeTheory)
	seedMark(t, db, student, d.AddDate(0, 0, 1), 1, models.StatusPresent, models.TypeTheory)

	rows, err := DailyRoster(db, "CSE", 3, "B", d)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].TotalPeriods, "only the requested date's periods count")
	assert.InDelta(t, 50.0, rows[0].OverallPercentage, 1e-9)
}

// The semester roster uses each student's own date range: a student
// archived by a stop reports up to the stop date even after reactivation,
// while a newer student reports up to today.
func TestSemesterRosterPerStudentRanges(t *testing.T) {
	db := testDB(t)

	archived := seedStudent(t, db, "21CSE001", "CSE", 3, "A", day(2024, time.January, 10))
	seedMark(t, db, archived, day(2024, time.January, 15), 1, models.StatusPresent, models.TypeTheory)
	seedMark(t, db, archived, day(2024, time.July, 1), 1, models.StatusPresent, models.TypeTheory)

	// stop happened 2024-06-01 and was later reactivated
	require.NoError(t, db.Model(&models.Student{}).Where("id = ?", archived.ID).
		Update("is_semester_active", false).Error)
	require.NoError(t, db.Create(&models.SemesterHistory{
		StudentID:      archived.ID,
		SemesterNumber: 3,
		StartDate:      day(2024, time.January, 10),
		EndDate:        day(2024, time.June, 1),
		StoppedAt:      day(2024, time.June, 1),
	}).Error)

	fresh := seedStudent(t, db, "21CSE099", "CSE", 3, "A", day(2024, time.June, 10))
	seedMark(t, db, fresh, day(2024, time.July, 1), 1, models.StatusPresent, models.TypeTheory)

	rows, err := SemesterRoster(db, "CSE", 3, "A")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "21CSE001", rows[0].RegisterNumber)
	assert.Equal(t, day(2024, time.June, 1), rows[0].EndDate)
	assert.Equal(t, 1, rows[0].TotalPeriods, "marks after the archived end date are excluded")

	assert.Equal(t, "21CSE099", rows[1].RegisterNumber)
	assert.Equal(t, 1, rows[1].TotalPeriods)
	assert.True(t, rows[1].EndDate.After(day(2024, time.June, 1)))
}
