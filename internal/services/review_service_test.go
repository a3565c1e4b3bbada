package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/DVDemon/frieren/internal/events"
	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/utils"
)

func newReviewService(repo *MockRepository, publisher *events.MockEventPublisher) ReviewService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	notifications := NewNotificationEventService(repo, publisher, logger)
	return NewReviewService(repo, notifications, logger, utils.NewValidator())
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student"}
	homework := &models.Homework{ID: 3, Number: 2, DueDate: "2024-03-10", VariantsCount: 5}

	t.Run("defaults send date and publishes submitted event", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByNumber", ctx, 2).Return(homework, nil)
		repo.ReviewRepo.On("Create", ctx, mock.AnythingOfType("*models.HomeworkReview")).Return(nil)

		publisher := newMockPublisher()
		service := newReviewService(repo, publisher)
		review, err := service.Create(ctx, &CreateReviewRequest{StudentID: 1, Number: 2})

		assert.NoError(t, err)
		assert.NotNil(t, review.SendDate)
		assert.Nil(t, review.ReviewDate)

		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventReviewSubmitted, published[0].Type)
	})

	t.Run("immediate grade stamps review date", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByNumber", ctx, 2).Return(homework, nil)
		repo.ReviewRepo.On("Create", ctx, mock.AnythingOfType("*models.HomeworkReview")).Return(nil)

		service := newReviewService(repo, newMockPublisher())
		review, err := service.Create(ctx, &CreateReviewRequest{
			StudentID: 1, Number: 2, Result: intPtr(95),
		})

		assert.NoError(t, err)
		assert.NotNil(t, review.ReviewDate)
	})

	t.Run("unknown homework number", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByNumber", ctx, 9).Return(nil, gorm.ErrRecordNotFound)

		service := newReviewService(repo, newMockPublisher())
		_, err := service.Create(ctx, &CreateReviewRequest{StudentID: 1, Number: 9})

		assert.ErrorIs(t, err, ErrHomeworkNotFound)
	})
}

func TestReviewService_Update_Grading(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student", ChatID: ptrInt64(42)}

	t.Run("first grade stamps date and publishes graded event", func(t *testing.T) {
		stored := &models.HomeworkReview{ID: 5, StudentID: 1, Number: 2, SendDate: strPtr("2024-03-08")}
		repo := NewMockRepository()
		repo.ReviewRepo.On("GetByID", ctx, uint(5)).Return(stored, nil)
		repo.ReviewRepo.On("Update", ctx, stored).Return(nil)
		repo.StudentRepo.On("GetByID", ctx, uint(1)).Return(student, nil)

		publisher := newMockPublisher()
		service := newReviewService(repo, publisher)
		review, err := service.Update(ctx, 5, &UpdateReviewRequest{Result: intPtr(0)})

		assert.NoError(t, err)
		assert.NotNil(t, review.ReviewDate)
		assert.Equal(t, 0, *review.Result)

		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventReviewGraded, published[0].Type)
	})

	t.Run("regrading an already graded review publishes nothing", func(t *testing.T) {
		stored := &models.HomeworkReview{
			ID: 5, StudentID: 1, Number: 2,
			Result: intPtr(40), ReviewDate: strPtr("2024-03-09"),
		}
		repo := NewMockRepository()
		repo.ReviewRepo.On("GetByID", ctx, uint(5)).Return(stored, nil)
		repo.ReviewRepo.On("Update", ctx, stored).Return(nil)

		publisher := newMockPublisher()
		service := newReviewService(repo, publisher)
		review, err := service.Update(ctx, 5, &UpdateReviewRequest{Result: intPtr(80)})

		assert.NoError(t, err)
		assert.Equal(t, 80, *review.Result)
		assert.Equal(t, "2024-03-09", *review.ReviewDate)
		assert.Empty(t, publisher.GetPublishedEvents())
	})

	t.Run("unknown review", func(t *testing.T) {
		repo := NewMockRepository()
		repo.ReviewRepo.On("GetByID", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := newReviewService(repo, newMockPublisher())
		_, err := service.Update(ctx, 99, &UpdateReviewRequest{Result: intPtr(50)})

		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func ptrInt64(v int64) *int64 { return &v }
