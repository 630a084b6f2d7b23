package reports

import (
	"time"

	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/models"
)

// studentRecords fetches the rows the aggregation runs over: one student,
// the given date range, and only periods marked while the student was in
// their current semester (semester_at_time is frozen at mark time).
func studentRecords(db *gorm.DB, student models.Student, start, end time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := db.
		Where("student_id = ? AND date >= ? AND date <= ? AND semester_at_time = ?",
			student.ID, start, end, student.CurrentSemester).
		Find(&records).Error
	return records, err
}

// ForStudent computes the comprehensive summary for a student. A nil start
// defaults to the student's semester start date, a nil end to today.
func ForStudent(db *gorm.DB, student models.Student, start, end *time.Time) (Summary, error) {
	s := DateOnly(student.SemesterStartDate)
	if start != nil {
		s = DateOnly(*start)
	}
	e := DateOnly(time.Now().UTC())
	if end != nil {
		e = DateOnly(*end)
	}

	records, err := studentRecords(db, student, s, e)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records, s, e), nil
}

// TodayPeriods returns a student's marked periods for one date, ordered by
// period number.
func TodayPeriods(db *gorm.DB, studentID uint, date time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := db.
		Where("student_id = ? AND date = ?", studentID, DateOnly(date)).
		Order("period").
		Find(&records).Error
	return records, err
}

// rosterStudents lists the cohort a roster runs over. Branch and section may
// be empty to mean all.
func rosterStudents(db *gorm.DB, branch string, semester int, section string) ([]models.Student, error) {
	q := db.Where("current_semester = ?", semester)
	if branch != "" {
		q = q.Where("branch = ?", branch)
	}
	if section != "" {
		q = q.Where("section = ?", section)
	}
	var students []models.Student
	err := q.Order("register_number").Find(&students).Error
	return students, err
}
