package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// Attendance is accepted around the lecture start in Moscow time.
const attendanceWindow = 15 * time.Minute

var mskZone = time.FixedZone("MSK", 3*60*60)

// AttendanceService records presence per (student, lecture) pair with upsert
// semantics: marking the same pair twice updates the existing row.
type AttendanceService interface {
	List(ctx context.Context) ([]*models.AttendanceRecord, error)
	Mark(ctx context.Context, req *MarkAttendanceRequest) (*models.Attendance, error)
	Update(ctx context.Context, id uint, present bool) (*models.Attendance, error)
}

type MarkAttendanceRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	LectureID uint `json:"lecture_id" validate:"required"`
	Present   bool `json:"present"`

	// SkipTimeValidation bypasses the start-time window, for manual entry
	// by an administrator after the fact.
	SkipTimeValidation bool `json:"skip_time_validation"`
}

type attendanceService struct {
	repo          repositories.Repository
	notifications NotificationEventService
	logger        *slog.Logger
	validator     *utils.Validator

	// now is swappable for window tests.
	now func() time.Time
}

func NewAttendanceService(
	repo repositories.Repository,
	notifications NotificationEventService,
	logger *slog.Logger,
	validator *utils.Validator,
) AttendanceService {
	return &attendanceService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		validator:     validator,
		now:           time.Now,
	}
}

func (s *attendanceService) List(ctx context.Context) ([]*models.AttendanceRecord, error) {
	rows, err := s.repo.Attendance().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	students, err := s.repo.Student().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	studentsByID := make(map[uint]*models.Student, len(students))
	for _, st := range students {
		studentsByID[st.ID] = st
	}

	lectures, err := s.repo.Lecture().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	lecturesByID := make(map[uint]*models.Lecture, len(lectures))
	for _, lec := range lectures {
		lecturesByID[lec.ID] = lec
	}

	records := make([]*models.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		student, ok := studentsByID[row.StudentID]
		if !ok || student.IsDeleted {
			continue
		}
		lecture, ok := lecturesByID[row.LectureID]
		if !ok {
			continue
		}
		records = append(records, &models.AttendanceRecord{
			ID:      row.ID,
			Student: *student,
			Lecture: *lecture,
			Present: row.Present,
		})
	}
	return records, nil
}

func (s *attendanceService) Mark(ctx context.Context, req *MarkAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Student().GetActiveByID(ctx, req.StudentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}
	lecture, err := s.repo.Lecture().GetByID(ctx, req.LectureID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLectureNotFound
		}
		return nil, fmt.Errorf("failed to resolve lecture: %w", err)
	}

	if !req.SkipTimeValidation {
		if err := s.checkWindow(lecture); err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.Attendance().GetByPair(ctx, req.StudentID, req.LectureID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	// Capacity gates only new present marks; flipping an existing row does
	// not add an attendee.
	if req.Present && existing == nil && lecture.MaxStudent != nil {
		current, err := s.repo.Attendance().CountPresentByLecture(ctx, lecture.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count attendance: %w", err)
		}
		capacity := CapacityOf(lecture, current)
		if !capacity.CanAttend {
			return nil, ErrLectureFull
		}
		if current+1 >= *lecture.MaxStudent {
			if err := s.notifications.NotifyLectureFull(ctx, lecture); err != nil {
				s.logger.Warn("Failed to publish lecture full event",
					"lecture_id", lecture.ID, "error", err)
			}
		}
	}

	if existing != nil {
		existing.Present = req.Present
		if err := s.repo.Attendance().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update attendance: %w", err)
		}
		return existing, nil
	}

	attendance := &models.Attendance{
		StudentID: req.StudentID,
		LectureID: req.LectureID,
		Present:   req.Present,
	}
	if err := s.repo.Attendance().Create(ctx, attendance); err != nil {
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}
	return attendance, nil
}

func (s *attendanceService) Update(ctx context.Context, id uint, present bool) (*models.Attendance, error) {
	attendance, err := s.repo.Attendance().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	attendance.Present = present
	if err := s.repo.Attendance().Update(ctx, attendance); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance, nil
}

// checkWindow rejects marks outside the lecture's date or more than the
// window away from its start time. Lectures without a start time accept marks
// any time on their date.
func (s *attendanceService) checkWindow(lecture *models.Lecture) error {
	now := s.now().In(mskZone)

	lectureDay, err := time.ParseInLocation(dateLayout, lecture.Date, mskZone)
	if err != nil {
		return fmt.Errorf("lecture %d has malformed date %q: %w", lecture.ID, lecture.Date, err)
	}
	if now.Year() != lectureDay.Year() || now.YearDay() != lectureDay.YearDay() {
		return ErrAttendanceNotOpen
	}

	if lecture.StartTime == nil {
		return nil
	}
	startClock, err := time.Parse("15:04", *lecture.StartTime)
	if err != nil {
		return fmt.Errorf("lecture %d has malformed start time %q: %w", lecture.ID, *lecture.StartTime, err)
	}

	start := time.Date(lectureDay.Year(), lectureDay.Month(), lectureDay.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, mskZone)
	if now.Before(start.Add(-attendanceWindow)) || now.After(start.Add(attendanceWindow)) {
		return ErrAttendanceNotOpen
	}
	return nil
}
