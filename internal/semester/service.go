// Package semester implements the lifecycle gate for a (branch, semester)
// attendance window and the archival of students when it is stopped.
//
// The stored is_semester_active flag is written only inside Stop's
// transaction. Read paths combine the flag with the live stop lookup via
// EffectiveActive and never write.
package semester

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/apperrors"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/reports"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// IsStopped reports whether an active stop record exists for the pair.
func (s *Service) IsStopped(branch string, semester int) (bool, error) {
	var count int64
	err := s.DB.Model(&models.StoppedSemester{}).
		Where("branch = ? AND semester = ? AND is_active = ?", branch, semester, true).
		Count(&count).Error
	return count > 0, err
}

// EffectiveActive is the read-only activity check for a student: the stored
// flag AND the absence of an active stop for their branch/semester.
func (s *Service) EffectiveActive(student models.Student) (bool, error) {
	if !student.IsSemesterActive {
		return false, nil
	}
	stopped, err := s.IsStopped(student.Branch, student.CurrentSemester)
	if err != nil {
		return false, err
	}
	return !stopped, nil
}

// StopResult reports what a Stop transition did.
type StopResult struct {
	StopID        uint `json:"stop_id"`
	ArchivedCount int  `json:"archived_count"`
}

// Stop closes the attendance window for (branch, semester): it creates the
// stop record, archives every currently active student in the pair into
// SemesterHistory, deactivates them, and appends an admin log line. The
// whole transition is one transaction; a failure for any student rolls back
// everything, including the stop record.
func (s *Service) Stop(adminID uint, branch string, semester int) (StopResult, error) {
	var result StopResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.StoppedSemester{}).
			Where("branch = ? AND semester = ? AND is_active = ?", branch, semester, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: semester %d for %s is already stopped", apperrors.ErrConflict, semester, branch)
		}

		now := time.Now().UTC()
		stop := models.StoppedSemester{
			Branch:    branch,
			Semester:  semester,
			StoppedBy: adminID,
			StoppedAt: now,
			IsActive:  true,
		}
		if err := tx.Create(&stop).Error; err != nil {
			return err
		}

		var students []models.Student
		if err := tx.
			Where("branch = ? AND current_semester = ? AND is_semester_active = ?", branch, semester, true).
			Find(&students).Error; err != nil {
			return err
		}

		for _, student := range students {
			if _, err := archiveStudent(tx, student, adminID, now); err != nil {
				return err
			}
		}

		log := models.AdminLog{
			AdminID:   adminID,
			Action:    fmt.Sprintf("Stopped Semester %d for %s. Archived %d students.", semester, branch, len(students)),
			Timestamp: now,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		result = StopResult{StopID: stop.ID, ArchivedCount: len(students)}
		return nil
	})
	return result, err
}

// archiveStudent snapshots one student's semester aggregate into an
// immutable SemesterHistory row and deactivates their live semester. Both
// writes ride the caller's transaction.
func archiveStudent(tx *gorm.DB, student models.Student, adminID uint, now time.Time) (models.SemesterHistory, error) {
	sum, err := reports.ForStudent(tx, student, nil, nil)
	if err != nil {
		return models.SemesterHistory{}, err
	}

	history := models.SemesterHistory{
		StudentID:            student.ID,
		SemesterNumber:       student.CurrentSemester,
		Section:              student.Section,
		StartDate:            reports.DateOnly(student.SemesterStartDate),
		EndDate:              reports.DateOnly(now),
		TotalTheoryClasses:   sum.Theory.Total,
		PresentTheoryClasses: sum.Theory.Present,
		TotalLabClasses:      sum.Practical.Total,
		PresentLabClasses:    sum.Practical.Present,
		AttendancePercentage: sum.OverallPercentage,
		StoppedByAdminID:     adminID,
		StoppedAt:            now,
	}
	if err := tx.Create(&history).Error; err != nil {
		return models.SemesterHistory{}, err
	}

	if err := tx.Model(&models.Student{}).
		Where("id = ?", student.ID).
		Update("is_semester_active", false).Error; err != nil {
		return models.SemesterHistory{}, err
	}
	return history, nil
}

// Reactivate clears a stop record's active flag, reopening the pair for new
// registrations. Students archived by the stop stay archived; a new
// semester for them means a fresh registration cycle, not a reversal.
func (s *Service) Reactivate(adminID uint, stopID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var stop models.StoppedSemester
		if err := tx.First(&stop, stopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: stop record %d", apperrors.ErrNotFound, stopID)
			}
			return err
		}
		if !stop.IsActive {
			return fmt.Errorf("%w: semester %d for %s is already active", apperrors.ErrConflict, stop.Semester, stop.Branch)
		}

		if err := tx.Model(&stop).Update("is_active", false).Error; err != nil {
			return err
		}

		log := models.AdminLog{
			AdminID:   adminID,
			Action:    fmt.Sprintf("Reactivated Semester %d for %s", stop.Semester, stop.Branch),
			Timestamp: time.Now().UTC(),
		}
		return tx.Create(&log).Error
	})
}

// ActiveStops lists the currently stopped pairs, newest first.
func (s *Service) ActiveStops() ([]models.StoppedSemester, error) {
	var stops []models.StoppedSemester
	err := s.DB.
		Where("is_active = ?", true).
		Order("stopped_at DESC").
		Find(&stops).Error
	return stops, err
}
