package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DVDemon/frieren/internal/events"
	"github.com/DVDemon/frieren/internal/models"
)

func TestNotificationEventService_NotifyReviewGraded(t *testing.T) {
	ctx := context.Background()

	t.Run("carries the student chat id", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetByID", ctx, uint(1)).
			Return(&models.Student{ID: 1, ChatID: ptrInt64(100500)}, nil)

		publisher := newMockPublisher()
		service := NewNotificationEventService(repo, publisher, testSlog())

		review := &models.HomeworkReview{
			ID: 7, StudentID: 1, Number: 3,
			Result: intPtr(90), ReviewDate: strPtr("2024-03-12"),
		}
		err := service.NotifyReviewGraded(ctx, review)

		assert.NoError(t, err)
		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventReviewGraded, published[0].Type)

		payload, ok := published[0].Data.(events.ReviewGradedEvent)
		assert.True(t, ok)
		assert.Equal(t, int64(100500), *payload.StudentChatID)
		assert.Equal(t, 90, payload.Result)
	})

	t.Run("rejects ungraded review", func(t *testing.T) {
		repo := NewMockRepository()
		publisher := newMockPublisher()
		service := NewNotificationEventService(repo, publisher, testSlog())

		err := service.NotifyReviewGraded(ctx, &models.HomeworkReview{ID: 7, StudentID: 1})

		assert.Error(t, err)
		assert.Empty(t, publisher.GetPublishedEvents())
	})
}

func TestNotificationEventService_NotifyLectureFull(t *testing.T) {
	ctx := context.Background()

	t.Run("unlimited lecture publishes nothing", func(t *testing.T) {
		publisher := newMockPublisher()
		service := NewNotificationEventService(NewMockRepository(), publisher, testSlog())

		err := service.NotifyLectureFull(ctx, &models.Lecture{ID: 2, Number: 5})

		assert.NoError(t, err)
		assert.Empty(t, publisher.GetPublishedEvents())
	})

	t.Run("limited lecture publishes", func(t *testing.T) {
		publisher := newMockPublisher()
		service := NewNotificationEventService(NewMockRepository(), publisher, testSlog())

		err := service.NotifyLectureFull(ctx, &models.Lecture{ID: 2, Number: 5, MaxStudent: intPtr(20)})

		assert.NoError(t, err)
		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventLectureFull, published[0].Type)
	})
}

func TestNotificationEventService_NotifyPendingDigest(t *testing.T) {
	publisher := newMockPublisher()
	service := NewNotificationEventService(NewMockRepository(), publisher, testSlog())

	err := service.NotifyPendingDigest(context.Background(), 3, []string{"AB-101", "AB-102"}, 7)

	assert.NoError(t, err)
	published := publisher.GetPublishedEvents()
	assert.Len(t, published, 1)
	assert.Equal(t, events.EventPendingReviewDigest, published[0].Type)
}
