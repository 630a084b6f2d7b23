package reports

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/models"
)

// TeacherCheckIn is one day's check-in/out pair in the yearly breakdown.
// Times are formatted HH:MM; "-" when missing.
type TeacherCheckIn struct {
	Date     time.Time `json:"date"`
	CheckIn  string    `json:"check_in"`
	CheckOut string    `json:"check_out"`
}

// TeacherMonth is one month's slice of a teacher's yearly attendance.
type TeacherMonth struct {
	Key         string           `json:"key"`
	MonthName   string           `json:"month_name"`
	DaysPresent int              `json:"days_present"`
	CheckIns    []TeacherCheckIn `json:"check_ins"`
}

// TeacherYearSummary is a teacher's attendance for one calendar year,
// measured against Mon-Fri working days.
type TeacherYearSummary struct {
	Year             int            `json:"year"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          time.Time      `json:"end_date"`
	TotalDaysPresent int            `json:"total_days_present"`
	WorkingDays      int            `json:"working_days"`
	Percentage       float64        `json:"percentage"`
	MonthlyBreakdown []TeacherMonth `json:"monthly_breakdown"`
}

func clockLabel(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

// TeacherYearly aggregates present days for one year. The range is
// Jan 1 - Dec 31, clipped to the teacher's registration date when they
// registered that year; the denominator counts every weekday in the range.
// The present slice must hold only status=present records within the range.
func TeacherYearly(teacher models.Teacher, present []models.TeacherAttendance, year int) TeacherYearSummary {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if teacher.RegistrationDate.Year() == year {
		start = DateOnly(teacher.RegistrationDate)
	}

	months := make(map[string]*TeacherMonth)
	for _, att := range present {
		key := att.Date.Format("2006-01")
		month, ok := months[key]
		if !ok {
			month = &TeacherMonth{Key: key, MonthName: att.Date.Format("January")}
			months[key] = month
		}
		month.DaysPresent++
		month.CheckIns = append(month.CheckIns, TeacherCheckIn{
			Date:     att.Date,
			CheckIn:  clockLabel(att.CheckIn),
			CheckOut: clockLabel(att.CheckOut),
		})
	}

	monthly := make([]TeacherMonth, 0, len(months))
	for _, m := range months {
		sort.Slice(m.CheckIns, func(i, j int) bool { return m.CheckIns[i].Date.Before(m.CheckIns[j].Date) })
		monthly = append(monthly, *m)
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Key < monthly[j].Key })

	workingDays := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			workingDays++
		}
	}

	return TeacherYearSummary{
		Year:             year,
		StartDate:        start,
		EndDate:          end,
		TotalDaysPresent: len(present),
		WorkingDays:      workingDays,
		Percentage:       Pct(len(present), workingDays),
		MonthlyBreakdown: monthly,
	}
}

// ForTeacherYear fetches a teacher's present days and aggregates the year.
func ForTeacherYear(db *gorm.DB, teacher models.Teacher, year int) (TeacherYearSummary, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if teacher.RegistrationDate.Year() == year {
		start = DateOnly(teacher.RegistrationDate)
	}

	var present []models.TeacherAttendance
	err := db.
		Where("teacher_id = ? AND date >= ? AND date <= ? AND status = ?",
			teacher.ID, start, end, models.StatusPresent).
		Find(&present).Error
	if err != nil {
		return TeacherYearSummary{}, err
	}
	return TeacherYearly(teacher, present, year), nil
}
