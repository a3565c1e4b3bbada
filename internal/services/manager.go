package services

import (
	"log/slog"

	"github.com/DVDemon/frieren/internal/cache"
	"github.com/DVDemon/frieren/internal/events"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// Manager wires every service over one repository, cache, and publisher.
type Manager struct {
	Students      StudentService
	Teachers      TeacherService
	Lectures      LectureService
	Attendance    AttendanceService
	Homework      HomeworkService
	Reviews       ReviewService
	Variants      VariantService
	ExamGrades    ExamGradeService
	Stats         StatsService
	Transfer      TransferService
	AIReview      AIReviewService
	Notifications NotificationEventService
}

func NewManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	aiConfig AIReviewConfig,
	logger *slog.Logger,
) *Manager {
	validator := utils.NewValidator()
	notifications := NewNotificationEventService(repo, publisher, logger)

	return &Manager{
		Students:      NewStudentService(repo, logger, validator),
		Teachers:      NewTeacherService(repo, logger, validator),
		Lectures:      NewLectureService(repo, cacheService, logger, validator),
		Attendance:    NewAttendanceService(repo, notifications, logger, validator),
		Homework:      NewHomeworkService(repo, logger, validator),
		Reviews:       NewReviewService(repo, notifications, logger, validator),
		Variants:      NewVariantService(repo, logger, validator),
		ExamGrades:    NewExamGradeService(repo, logger, validator),
		Stats:         NewStatsService(repo, logger),
		Transfer:      NewTransferService(repo, logger),
		AIReview:      NewAIReviewService(repo, aiConfig, logger),
		Notifications: notifications,
	}
}
