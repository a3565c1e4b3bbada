package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/utils"
)

func newHomeworkService(repo *MockRepository) HomeworkService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewHomeworkService(repo, logger, utils.NewValidator())
}

func TestHomeworkService_Update_VariantsCountShrink(t *testing.T) {
	ctx := context.Background()
	homework := &models.Homework{ID: 3, Number: 2, DueDate: "2024-03-10", ShortDescription: "Build a parser", VariantsCount: 10}

	t.Run("shrink below a held variant is refused", func(t *testing.T) {
		repo := NewMockRepository()
		repo.HomeworkRepo.On("GetByID", ctx, uint(3)).Return(homework, nil)
		repo.VariantRepo.On("ListByHomework", ctx, uint(3)).Return([]*models.StudentHomeworkVariant{
			{ID: 1, StudentID: 4, HomeworkID: 3, VariantNumber: 7},
		}, nil)

		service := newHomeworkService(repo)
		_, err := service.Update(ctx, 3, &UpdateHomeworkRequest{VariantsCount: intPtr(5)})

		var ruleErr *BusinessRuleError
		assert.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, "variants_count_shrink", ruleErr.Rule)
		repo.HomeworkRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("shrink above every held variant passes", func(t *testing.T) {
		stored := &models.Homework{ID: 3, Number: 2, DueDate: "2024-03-10", ShortDescription: "Build a parser", VariantsCount: 10}
		repo := NewMockRepository()
		repo.HomeworkRepo.On("GetByID", ctx, uint(3)).Return(stored, nil)
		repo.VariantRepo.On("ListByHomework", ctx, uint(3)).Return([]*models.StudentHomeworkVariant{
			{ID: 1, StudentID: 4, HomeworkID: 3, VariantNumber: 4},
		}, nil)
		repo.HomeworkRepo.On("Update", ctx, stored).Return(nil)

		service := newHomeworkService(repo)
		updated, err := service.Update(ctx, 3, &UpdateHomeworkRequest{VariantsCount: intPtr(5)})

		assert.NoError(t, err)
		assert.Equal(t, 5, updated.VariantsCount)
	})
}
