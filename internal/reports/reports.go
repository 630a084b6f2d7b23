// Package reports is the attendance aggregation engine. The rollup
// functions here are pure: they take record slices already fetched from the
// store and return explicit result structs, so every percentage path is
// testable without a database.
//
// All percentage math is total: an empty bucket yields 0, never an error.
package reports

import (
	"sort"
	"time"

	"github.com/zaqqye/campus_attendance/internal/models"
)

// Pct returns present/total*100, or 0 for an empty bucket.
func Pct(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}

// BucketStats is the present/total/percentage triple used throughout the
// reports.
type BucketStats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Percentage float64 `json:"percentage"`
}

func newBucketStats(present, total int) BucketStats {
	return BucketStats{Total: total, Present: present, Percentage: Pct(present, total)}
}

// SubjectStats is the per-subject rollup. Type is the attendance type seen
// on the first record for the subject, not re-derived per record.
type SubjectStats struct {
	Subject    string  `json:"subject"`
	Type       string  `json:"type"`
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Percentage float64 `json:"percentage"`
}

// MonthStats is the per-calendar-month rollup. Key is the sortable YYYY-MM
// form, MonthName the display label.
type MonthStats struct {
	Key              string `json:"key"`
	MonthName        string `json:"month_name"`
	TheoryTotal      int    `json:"theory_total"`
	TheoryPresent    int    `json:"theory_present"`
	PracticalTotal   int    `json:"practical_total"`
	PracticalPresent int    `json:"practical_present"`
}

// Summary is the comprehensive rollup for one student over a date range.
type Summary struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Theory    BucketStats `json:"theory"`
	Practical BucketStats `json:"practical"`

	TotalPeriods      int     `json:"total_periods"`
	PresentPeriods    int     `json:"present_periods"`
	OverallPercentage float64 `json:"overall_percentage"`

	SubjectWise      []SubjectStats `json:"subject_wise"`
	MonthlyBreakdown []MonthStats   `json:"monthly_breakdown"`
}

// unknownSubject groups records marked without a subject.
const unknownSubject = "Unknown"

// Summarize rolls raw attendance rows up into theory/practical/overall
// buckets plus subject-wise and monthly breakdowns. The records are expected
// to be pre-filtered to one student, one semester and the given range.
func Summarize(records []models.Attendance, start, end time.Time) Summary {
	var theoryTotal, theoryPresent, practicalTotal, practicalPresent int

	type subjectAcc struct {
		typ     string
		total   int
		present int
	}
	subjects := make(map[string]*subjectAcc)
	months := make(map[string]*MonthStats)

	for _, att := range records {
		present := att.Status == models.StatusPresent
		practical := models.IsPractical(att.AttendanceType)

		if practical {
			practicalTotal++
			if present {
				practicalPresent++
			}
		} else {
			theoryTotal++
			if present {
				theoryPresent++
			}
		}

		name := att.Subject
		if name == "" {
			name = unknownSubject
		}
		sub, ok := subjects[name]
		if !ok {
			sub = &subjectAcc{typ: att.AttendanceType}
			subjects[name] = sub
		}
		sub.total++
		if present {
			sub.present++
		}

		key := att.Date.Format("2006-01")
		month, ok := months[key]
		if !ok {
			month = &MonthStats{Key: key, MonthName: att.Date.Format("January 2006")}
			months[key] = month
		}
		if practical {
			month.PracticalTotal++
			if present {
				month.PracticalPresent++
			}
		} else {
			month.TheoryTotal++
			if present {
				month.TheoryPresent++
			}
		}
	}

	totalPeriods := theoryTotal + practicalTotal
	presentPeriods := theoryPresent + practicalPresent

	subjectWise := make([]SubjectStats, 0, len(subjects))
	for name, acc := range subjects {
		subjectWise = append(subjectWise, SubjectStats{
			Subject:    name,
			Type:       acc.typ,
			Total:      acc.total,
			Present:    acc.present,
			Percentage: Pct(acc.present, acc.total),
		})
	}
	sort.Slice(subjectWise, func(i, j int) bool { return subjectWise[i].Subject < subjectWise[j].Subject })

	monthly := make([]MonthStats, 0, len(months))
	for _, m := range months {
		monthly = append(monthly, *m)
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Key < monthly[j].Key })

	return Summary{
		StartDate:         start,
		EndDate:           end,
		Theory:            newBucketStats(theoryPresent, theoryTotal),
		Practical:         newBucketStats(practicalPresent, practicalTotal),
		TotalPeriods:      totalPeriods,
		PresentPeriods:    presentPeriods,
		OverallPercentage: Pct(presentPeriods, totalPeriods),
		SubjectWise:       subjectWise,
		MonthlyBreakdown:  monthly,
	}
}

// DateOnly truncates a timestamp to midnight UTC; attendance dates are
// stored and compared at day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
