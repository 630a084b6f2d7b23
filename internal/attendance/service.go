// Package attendance owns the write paths for attendance records: the
// teacher's two-phase daily punch and the period-level upsert for students.
package attendance

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zaqqye/campus_attendance/internal/apperrors"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/reports"
	"github.com/zaqqye/campus_attendance/internal/semester"
)

type Service struct {
	DB   *gorm.DB
	Gate *semester.Service
}

func NewService(db *gorm.DB, gate *semester.Service) *Service {
	return &Service{DB: db, Gate: gate}
}

// Punch actions returned by the teacher's daily check-in/check-out.
const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

// Punch records the teacher's daily attendance. The first punch of the day
// checks in and requires a verified location; the second fills in the
// check-out; any further punch conflicts. The (teacher, date) unique index
// rejects a concurrent double check-in that slips past the existence check.
func (s *Service) Punch(teacherID uint, now time.Time, lat, lng float64, locationVerified bool) (string, error) {
	today := reports.DateOnly(now)

	var existing models.TeacherAttendance
	err := s.DB.Where("teacher_id = ? AND date = ?", teacherID, today).First(&existing).Error
	switch {
	case err == nil:
		if existing.CheckOut != nil {
			return "", fmt.Errorf("%w: already checked out today", apperrors.ErrConflict)
		}
		if err := s.DB.Model(&existing).Update("check_out", now).Error; err != nil {
			return "", err
		}
		return ActionCheckOut, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if !locationVerified {
			return "", fmt.Errorf("%w: you must be within college premises", apperrors.ErrForbidden)
		}
		record := models.TeacherAttendance{
			TeacherID:        teacherID,
			Date:             today,
			CheckIn:          &now,
			Latitude:         &lat,
			Longitude:        &lng,
			LocationVerified: true,
			Status:           models.StatusPresent,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			return "", translateCheckInError(err)
		}
		return ActionCheckIn, nil

	default:
		return "", err
	}
}

// translateCheckInError classifies the guarded insert's failure: a duplicate
// key means a concurrent check-in won the race; anything else is a real
// failure and passes through untouched.
func translateCheckInError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: already checked in today", apperrors.ErrConflict)
	}
	return err
}

// CheckedIn reports whether the teacher has a check-in for the date.
func (s *Service) CheckedIn(teacherID uint, date time.Time) (bool, error) {
	var count int64
	err := s.DB.Model(&models.TeacherAttendance{}).
		Where("teacher_id = ? AND date = ? AND check_in IS NOT NULL", teacherID, reports.DateOnly(date)).
		Count(&count).Error
	return count > 0, err
}

// MarkPeriods upserts attendance for a set of periods on one date. The
// authoritative key is (student, date, period): a re-mark overwrites
// status, subject, marker and type, while semester_at_time stays frozen at
// first insert. All periods commit together.
//
// The marking teacher must be checked in for the date, and the student's
// semester must be effectively active.
func (s *Service) MarkPeriods(teacher models.Teacher, student models.Student, now time.Time, periods []int, status, subject, attendanceType string) error {
	checkedIn, err := s.CheckedIn(teacher.ID, now)
	if err != nil {
		return err
	}
	if !checkedIn {
		return fmt.Errorf("%w: please mark your attendance first", apperrors.ErrForbidden)
	}

	active, err := s.Gate.EffectiveActive(student)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%w for this student", apperrors.ErrSemesterClosed)
	}

	today := reports.DateOnly(now)
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, period := range periods {
			att := models.Attendance{
				StudentID:      student.ID,
				Date:           today,
				Period:         period,
				Status:         status,
				MarkedBy:       teacher.ID,
				MarkedAt:       now,
				Subject:        subject,
				SemesterAtTime: student.CurrentSemester,
				AttendanceType: attendanceType,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}, {Name: "period"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"status", "marked_by", "marked_at", "subject", "attendance_type",
				}),
			}).Create(&att).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
