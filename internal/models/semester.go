package models

import (
	"time"
)

// StoppedSemester records an administrative stop of a (branch, semester)
// attendance window. At most one row per pair has IsActive=true; the gate
// enforces that, not the schema.
type StoppedSemester struct {
	ID        uint   `gorm:"primaryKey"`
	Branch    string `gorm:"index"`
	Semester  int    `gorm:"index"`
	StoppedBy uint
	StoppedAt time.Time
	IsActive  bool `gorm:"index"`
}

// SemesterHistory is the immutable archival snapshot written for each
// student when their semester is stopped. Never updated after creation.
type SemesterHistory struct {
	ID                   uint `gorm:"primaryKey"`
	StudentID            uint `gorm:"index"`
	SemesterNumber       int
	Section              string
	StartDate            time.Time
	EndDate              time.Time
	TotalTheoryClasses   int
	PresentTheoryClasses int
	TotalLabClasses      int
	PresentLabClasses    int
	AttendancePercentage float64
	StoppedByAdminID     uint
	StoppedAt            time.Time
}
