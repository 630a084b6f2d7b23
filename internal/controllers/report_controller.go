package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/reports"
)

// ReportController is the reporting facade: it serves the aggregation
// engine's tabular rows as JSON, or CSV with ?format=csv. PDF and richer
// formatting live outside this service.
type ReportController struct {
	DB *gorm.DB
}

type rosterParams struct {
	branch   string
	semester int
	section  string
}

// parseRosterParams reads the common branch/semester/section filters.
// Branch and section accept "all" (or empty) to mean no filter.
func parseRosterParams(c *gin.Context) (rosterParams, bool) {
	var p rosterParams

	p.branch = c.Query("branch")
	if p.branch == "all" {
		p.branch = ""
	}
	p.section = c.Query("section")
	if p.section == "all" {
		p.section = ""
	}

	sem, err := strconv.Atoi(c.DefaultQuery("semester", "1"))
	if err != nil || sem < 1 || sem > 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semester must be between 1 and 8"})
		return p, false
	}
	p.semester = sem
	return p, true
}

// Daily reports every student's rollup for one date (default today).
func (r *ReportController) Daily(c *gin.Context) {
	p, ok := parseRosterParams(c)
	if !ok {
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	rows, err := reports.DailyRoster(r.DB, p.branch, p.semester, p.section, date)
	if err != nil {
		respondError(c, err)
		return
	}
	r.respond(c, "daily", rows)
}

// Monthly reports per-student totals over one calendar month.
func (r *ReportController) Monthly(c *gin.Context) {
	p, ok := parseRosterParams(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}

	rows, err := reports.MonthlyRoster(r.DB, p.branch, p.semester, p.section, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	r.respond(c, "monthly", rows)
}

// Semester reports each student's full-semester rollup over their own
// effective date range.
func (r *ReportController) Semester(c *gin.Context) {
	p, ok := parseRosterParams(c)
	if !ok {
		return
	}

	rows, err := reports.SemesterRoster(r.DB, p.branch, p.semester, p.section)
	if err != nil {
		respondError(c, err)
		return
	}
	r.respond(c, "semester", rows)
}

func (r *ReportController) respond(c *gin.Context, reportType string, rows []reports.RosterRow) {
	if c.Query("format") == "csv" {
		r.writeCSV(c, reportType, rows)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report_type": reportType,
		"count":       len(rows),
		"rows":        rows,
	})
}

func (r *ReportController) writeCSV(c *gin.Context, reportType string, rows []reports.RosterRow) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report.csv", reportType))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"register_number", "name", "branch", "semester", "section",
		"theory_percentage", "practical_percentage", "overall_percentage",
	})
	for _, row := range rows {
		_ = w.Write([]string{
			row.RegisterNumber,
			row.Name,
			row.Branch,
			strconv.Itoa(row.Semester),
			row.Section,
			fmt.Sprintf("%.2f", row.Theory.Percentage),
			fmt.Sprintf("%.2f", row.Practical.Percentage),
			fmt.Sprintf("%.2f", row.OverallPercentage),
		})
	}
	w.Flush()
}
