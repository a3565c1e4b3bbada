package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DVDemon/frieren/internal/events"
	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
)

// NotificationEventService publishes domain notifications as events. A bot
// process consumes them and delivers the actual messages, so this service
// never talks to a chat API directly.
type NotificationEventService interface {
	NotifyReviewSubmitted(ctx context.Context, review *models.HomeworkReview) error
	NotifyReviewGraded(ctx context.Context, review *models.HomeworkReview) error
	NotifyPendingDigest(ctx context.Context, teacherID uint, groups []string, pendingCount int) error
	NotifyLectureFull(ctx context.Context, lecture *models.Lecture) error
}

type notificationEventService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewNotificationEventService(
	repo repositories.Repository,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
) NotificationEventService {
	return &notificationEventService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationEventService) NotifyReviewSubmitted(ctx context.Context, review *models.HomeworkReview) error {
	s.logger.Info("Publishing review submitted event",
		"review_id", review.ID,
		"student_id", review.StudentID,
		"homework_number", review.Number)

	sendDate := ""
	if review.SendDate != nil {
		sendDate = *review.SendDate
	}

	event := events.NewReviewSubmittedEvent(review.ID, review.StudentID, review.Number, review.URL, sendDate)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyReviewGraded(ctx context.Context, review *models.HomeworkReview) error {
	if review.Result == nil {
		return fmt.Errorf("cannot publish graded event for ungraded review %d", review.ID)
	}

	s.logger.Info("Publishing review graded event",
		"review_id", review.ID,
		"student_id", review.StudentID,
		"result", *review.Result)

	// The student's chat id rides along so the consumer can address the
	// message without a lookup of its own.
	var chatID *int64
	student, err := s.repo.Student().GetByID(ctx, review.StudentID)
	if err == nil {
		chatID = student.ChatID
	} else if !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to resolve student for graded event: %w", err)
	}

	reviewDate := ""
	if review.ReviewDate != nil {
		reviewDate = *review.ReviewDate
	}

	event := events.NewReviewGradedEvent(
		review.ID,
		review.StudentID,
		chatID,
		review.Number,
		*review.Result,
		review.Comments,
		reviewDate,
	)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyPendingDigest(ctx context.Context, teacherID uint, groups []string, pendingCount int) error {
	s.logger.Info("Publishing pending review digest event",
		"teacher_id", teacherID,
		"pending_count", pendingCount)

	event := events.NewPendingReviewDigestEvent(teacherID, groups, pendingCount, todayISO())
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyLectureFull(ctx context.Context, lecture *models.Lecture) error {
	if lecture.MaxStudent == nil {
		return nil
	}

	s.logger.Info("Publishing lecture full event",
		"lecture_id", lecture.ID,
		"lecture_number", lecture.Number)

	event := events.NewLectureFullEvent(lecture.ID, lecture.Number, *lecture.MaxStudent)
	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}
