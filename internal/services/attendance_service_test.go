package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/DVDemon/frieren/internal/events"
	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/utils"
)

func testSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newMockPublisher() *events.MockEventPublisher {
	return events.NewMockEventPublisher(testSlog())
}

func newAttendanceService(repo *MockRepository, publisher *events.MockEventPublisher, now func() time.Time) AttendanceService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	notifications := NewNotificationEventService(repo, publisher, logger)
	service := NewAttendanceService(repo, notifications, logger, utils.NewValidator()).(*attendanceService)
	if now != nil {
		service.now = now
	}
	return service
}

func mskTime(value string) func() time.Time {
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, mskZone)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}

func TestAttendanceService_Mark_TimeWindow(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student"}
	lecture := &models.Lecture{ID: 2, Number: 5, Date: "2024-03-10", StartTime: strPtr("18:00")}

	expectResolve := func(repo *MockRepository) {
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.LectureRepo.On("GetByID", ctx, uint(2)).Return(lecture, nil)
	}

	t.Run("inside the window", func(t *testing.T) {
		repo := NewMockRepository()
		expectResolve(repo)
		repo.AttendanceRepo.On("GetByPair", ctx, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)
		repo.AttendanceRepo.On("Create", ctx, mock.AnythingOfType("*models.Attendance")).Return(nil)

		service := newAttendanceService(repo, newMockPublisher(), mskTime("2024-03-10 18:10"))
		attendance, err := service.Mark(ctx, &MarkAttendanceRequest{StudentID: 1, LectureID: 2, Present: true})

		assert.NoError(t, err)
		assert.True(t, attendance.Present)
	})

	t.Run("too late", func(t *testing.T) {
		repo := NewMockRepository()
		expectResolve(repo)

		service := newAttendanceService(repo, newMockPublisher(), mskTime("2024-03-10 18:16"))
		_, err := service.Mark(ctx, &MarkAttendanceRequest{StudentID: 1, LectureID: 2, Present: true})

		assert.ErrorIs(t, err, ErrAttendanceNotOpen)
	})

	t.Run("too early", func(t *testing.T) {
		repo := NewMockRepository()
		expectResolve(repo)

		service := newAttendanceService(repo, newMockPublisher(), mskTime("2024-03-10 17:40"))
		_, err := service.Mark(ctx, &MarkAttendanceRequest{StudentID: 1, LectureID: 2, Present: true})

		assert.ErrorIs(t, err, ErrAttendanceNotOpen)
	})

	t.Run("wrong day", func(t *testing.T) {
		repo := NewMockRepository()
		expectResolve(repo)

		service := newAttendanceService(repo, newMockPublisher(), mskTime("2024-03-11 18:00"))
		_, err := service.Mark(ctx, &MarkAttendanceRequest{StudentID: 1, LectureID: 2, Present: true})

		assert.ErrorIs(t, err, ErrAttendanceNotOpen)
	})

	t.Run("skip flag bypasses the window", func(t *testing.T) {
		repo := NewMockRepository()
		expectResolve(repo)
		repo.AttendanceRepo.On("GetByPair", ctx, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)
		repo.AttendanceRepo.On("Create", ctx, mock.AnythingOfType("*models.Attendance")).Return(nil)

		service := newAttendanceService(repo, newMockPublisher(), mskTime("2024-04-01 09:00"))
		_, err := service.Mark(ctx, &MarkAttendanceRequest{
			StudentID: 1, LectureID: 2, Present: true, SkipTimeValidation: true,
		})

		assert.NoError(t, err)
	})

	t.Run("no start time accepts any time that day", func(t *testing.T) {
		openLecture := &models.Lecture{ID: 3, Number: 6, Date: "2024-03-10"}
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.LectureRepo.On("GetByID", ctx, uint(3)).Return(openLecture, nil)
		repo.AttendanceRepo.On("GetByPair", ctx, uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)
		repo.AttendanceRepo.On("Create", ctx, mock.AnythingOfType("*models.Attendance")).Return(nil)

		service := newAttendanceService(repo, newMockPublisher(), mskTime("2024-03-10 23:50"))
		_, err := service.Mark(ctx, &MarkAttendanceRequest{StudentID: 1, LectureID: 3, Present: true})

		assert.NoError(t, err)
	})
}

func TestAttendanceService_Mark_Capacity(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student"}
	lecture := &models.Lecture{ID: 2, Number: 5, Date: "2024-03-10", MaxStudent: intPtr(20)}

	t.Run("full lecture rejects a new mark", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.LectureRepo.On("GetByID", ctx, uint(2)).Return(lecture, nil)
		repo.AttendanceRepo.On("GetByPair", ctx, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)
		repo.AttendanceRepo.On("CountPresentByLecture", ctx, uint(2)).Return(20, nil)

		service := newAttendanceService(repo, newMockPublisher(), nil)
		_, err := service.Mark(ctx, &MarkAttendanceRequest{
			StudentID: 1, LectureID: 2, Present: true, SkipTimeValidation: true,
		})

		assert.ErrorIs(t, err, ErrLectureFull)
		repo.AttendanceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("taking the last seat publishes a full event", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.LectureRepo.On("GetByID", ctx, uint(2)).Return(lecture, nil)
		repo.AttendanceRepo.On("GetByPair", ctx, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)
		repo.AttendanceRepo.On("CountPresentByLecture", ctx, uint(2)).Return(19, nil)
		repo.AttendanceRepo.On("Create", ctx, mock.AnythingOfType("*models.Attendance")).Return(nil)

		publisher := newMockPublisher()
		service := newAttendanceService(repo, publisher, nil)
		_, err := service.Mark(ctx, &MarkAttendanceRequest{
			StudentID: 1, LectureID: 2, Present: true, SkipTimeValidation: true,
		})

		assert.NoError(t, err)
		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventLectureFull, published[0].Type)
	})

	t.Run("flipping an existing row skips the capacity gate", func(t *testing.T) {
		existing := &models.Attendance{ID: 4, StudentID: 1, LectureID: 2, Present: false}
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.LectureRepo.On("GetByID", ctx, uint(2)).Return(lecture, nil)
		repo.AttendanceRepo.On("GetByPair", ctx, uint(1), uint(2)).Return(existing, nil)
		repo.AttendanceRepo.On("Update", ctx, existing).Return(nil)

		service := newAttendanceService(repo, newMockPublisher(), nil)
		attendance, err := service.Mark(ctx, &MarkAttendanceRequest{
			StudentID: 1, LectureID: 2, Present: true, SkipTimeValidation: true,
		})

		assert.NoError(t, err)
		assert.True(t, attendance.Present)
		repo.AttendanceRepo.AssertNotCalled(t, "CountPresentByLecture", mock.Anything, mock.Anything)
	})
}
