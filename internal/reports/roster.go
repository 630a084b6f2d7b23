package reports

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/models"
)

// RosterRow is one student's line in a tabular report. The column set is
// the export contract: downstream CSV/PDF formatting happens elsewhere.
type RosterRow struct {
	StudentID      uint   `json:"student_id"`
	RegisterNumber string `json:"register_number"`
	Name           string `json:"name"`
	Branch         string `json:"branch"`
	Semester       int    `json:"semester"`
	Section        string `json:"section"`

	Theory    BucketStats `json:"theory"`
	Practical BucketStats `json:"practical"`

	TotalPeriods      int     `json:"total_periods"`
	PresentPeriods    int     `json:"present_periods"`
	OverallPercentage float64 `json:"overall_percentage"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func rowFromSummary(student models.Student, sum Summary) RosterRow {
	return RosterRow{
		StudentID:         student.ID,
		RegisterNumber:    student.RegisterNumber,
		Name:              student.Name,
		Branch:            student.Branch,
		Semester:          student.CurrentSemester,
		Section:           student.Section,
		Theory:            sum.Theory,
		Practical:         sum.Practical,
		TotalPeriods:      sum.TotalPeriods,
		PresentPeriods:    sum.PresentPeriods,
		OverallPercentage: sum.OverallPercentage,
		StartDate:         sum.StartDate,
		EndDate:           sum.EndDate,
	}
}

// DailyRoster rolls up every period marked on one date, per student, for a
// branch/semester/section slice. Rows come back in register number order.
func DailyRoster(db *gorm.DB, branch string, semester int, section string, date time.Time) ([]RosterRow, error) {
	students, err := rosterStudents(db, branch, semester, section)
	if err != nil {
		return nil, err
	}

	day := DateOnly(date)
	rows := make([]RosterRow, 0, len(students))
	for _, student := range students {
		records, err := studentRecords(db, student, day, day)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowFromSummary(student, Summarize(records, day, day)))
	}
	return rows, nil
}

// MonthlyRoster rolls up one calendar month for a branch/semester/section
// slice, sorted ascending by register number.
func MonthlyRoster(db *gorm.DB, branch string, semester int, section string, year int, month time.Month) ([]RosterRow, error) {
	students, err := rosterStudents(db, branch, semester, section)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	rows := make([]RosterRow, 0, len(students))
	for _, student := range students {
		records, err := studentRecords(db, student, first, last)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowFromSummary(student, Summarize(records, first, last)))
	}
	return rows, nil
}

// EffectiveEndDate resolves the end of a student's individual reporting
// range: the stop date when their branch/semester is currently stopped, the
// archived history end date when they were individually archived, otherwise
// today. Two students in the same branch/semester can therefore report over
// different ranges.
func EffectiveEndDate(student models.Student, activeStop *models.StoppedSemester, history *models.SemesterHistory, today time.Time) time.Time {
	if activeStop != nil {
		return DateOnly(activeStop.StoppedAt)
	}
	if !student.IsSemesterActive && history != nil {
		return DateOnly(history.EndDate)
	}
	return DateOnly(today)
}

// SemesterRoster rolls up each student's full semester, over that student's
// own effective date range.
func SemesterRoster(db *gorm.DB, branch string, semester int, section string) ([]RosterRow, error) {
	students, err := rosterStudents(db, branch, semester, section)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC()
	stops := make(map[string]*models.StoppedSemester)

	rows := make([]RosterRow, 0, len(students))
	for _, student := range students {
		stop, ok := stops[student.Branch]
		if !ok {
			stop, err = activeStopFor(db, student.Branch, student.CurrentSemester)
			if err != nil {
				return nil, err
			}
			stops[student.Branch] = stop
		}

		var history *models.SemesterHistory
		if stop == nil && !student.IsSemesterActive {
			history, err = latestHistoryFor(db, student.ID, student.CurrentSemester)
			if err != nil {
				return nil, err
			}
		}

		start := DateOnly(student.SemesterStartDate)
		end := EffectiveEndDate(student, stop, history, today)
		records, err := studentRecords(db, student, start, end)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowFromSummary(student, Summarize(records, start, end)))
	}
	return rows, nil
}

func activeStopFor(db *gorm.DB, branch string, semester int) (*models.StoppedSemester, error) {
	var stop models.StoppedSemester
	err := db.
		Where("branch = ? AND semester = ? AND is_active = ?", branch, semester, true).
		First(&stop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stop, nil
}

func latestHistoryFor(db *gorm.DB, studentID uint, semester int) (*models.SemesterHistory, error) {
	var history models.SemesterHistory
	err := db.
		Where("student_id = ? AND semester_number = ?", studentID, semester).
		Order("stopped_at DESC").
		First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}
