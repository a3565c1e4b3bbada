package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/utils"
)

func newVariantService(repo *MockRepository) VariantService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewVariantService(repo, logger, utils.NewValidator())
}

func TestVariantService_Create(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, FullName: "Test Student", Telegram: "test_student"}
	homework := &models.Homework{ID: 2, Number: 4, VariantsCount: 10}

	t.Run("assigns within bounds", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(2)).Return(homework, nil)
		repo.VariantRepo.On("GetByPair", ctx, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)
		repo.VariantRepo.On("Create", ctx, mock.AnythingOfType("*models.StudentHomeworkVariant")).Return(nil)

		service := newVariantService(repo)
		variant, err := service.Create(ctx, &CreateVariantRequest{StudentID: 1, HomeworkID: 2, VariantNumber: 10})

		assert.NoError(t, err)
		assert.Equal(t, 10, variant.VariantNumber)
		repo.VariantRepo.AssertExpectations(t)
	})

	t.Run("rejects variant above count", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(2)).Return(homework, nil)

		service := newVariantService(repo)
		_, err := service.Create(ctx, &CreateVariantRequest{StudentID: 1, HomeworkID: 2, VariantNumber: 11})

		var validationErrors ValidationErrors
		assert.ErrorAs(t, err, &validationErrors)
		repo.VariantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects zero variant before touching the store", func(t *testing.T) {
		repo := NewMockRepository()

		service := newVariantService(repo)
		_, err := service.Create(ctx, &CreateVariantRequest{StudentID: 1, HomeworkID: 2, VariantNumber: 0})

		assert.Error(t, err)
		repo.VariantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate pair", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(2)).Return(homework, nil)
		repo.VariantRepo.On("GetByPair", ctx, uint(1), uint(2)).
			Return(&models.StudentHomeworkVariant{ID: 9, StudentID: 1, HomeworkID: 2, VariantNumber: 3}, nil)

		service := newVariantService(repo)
		_, err := service.Create(ctx, &CreateVariantRequest{StudentID: 1, HomeworkID: 2, VariantNumber: 5})

		var ruleErr *BusinessRuleError
		assert.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, "variant_pair_unique", ruleErr.Rule)
	})
}

func TestVariantService_SetVariant_UpsertsInPlace(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student"}
	homework := &models.Homework{ID: 2, Number: 4, VariantsCount: 10}
	existing := &models.StudentHomeworkVariant{ID: 7, StudentID: 1, HomeworkID: 2, VariantNumber: 3}

	repo := NewMockRepository()
	repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
	repo.HomeworkRepo.On("GetByID", ctx, uint(2)).Return(homework, nil)
	repo.VariantRepo.On("GetByPair", ctx, uint(1), uint(2)).Return(existing, nil)
	repo.VariantRepo.On("Update", ctx, existing).Return(nil)

	service := newVariantService(repo)
	variant, err := service.SetVariant(ctx, 1, 2, 8)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), variant.ID)
	assert.Equal(t, 8, variant.VariantNumber)
	repo.VariantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVariantService_GenerateRandomForStudent(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student"}
	catalog := []*models.Homework{
		{ID: 10, Number: 1, VariantsCount: 4},
		{ID: 11, Number: 2, VariantsCount: 1},
		{ID: 12, Number: 3, VariantsCount: 25},
	}
	// Homework 11 already has an assignment and must be skipped.
	existing := []*models.StudentHomeworkVariant{
		{ID: 5, StudentID: 1, HomeworkID: 11, VariantNumber: 1},
	}

	repo := NewMockRepository()
	repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
	repo.HomeworkRepo.On("List", ctx).Return(catalog, nil)
	repo.VariantRepo.On("ListByStudent", ctx, uint(1)).Return(existing, nil)
	repo.VariantRepo.On("Create", ctx, mock.AnythingOfType("*models.StudentHomeworkVariant")).Return(nil)

	service := newVariantService(repo)
	created, err := service.GenerateRandomForStudent(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, created, 2)

	boundsByHomework := map[uint]int{10: 4, 12: 25}
	for _, variant := range created {
		upper, ok := boundsByHomework[variant.HomeworkID]
		assert.True(t, ok, "unexpected homework %d", variant.HomeworkID)
		assert.GreaterOrEqual(t, variant.VariantNumber, 1)
		assert.LessOrEqual(t, variant.VariantNumber, upper)
	}
}

func TestVariantService_GenerateRandomForStudent_ZeroVariantsCount(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student"}
	// A variants_count below one can only appear through direct DB edits;
	// generation must skip the row instead of panicking.
	catalog := []*models.Homework{
		{ID: 10, Number: 1, VariantsCount: 0},
		{ID: 11, Number: 2, VariantsCount: 3},
	}

	repo := NewMockRepository()
	repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
	repo.HomeworkRepo.On("List", ctx).Return(catalog, nil)
	repo.VariantRepo.On("ListByStudent", ctx, uint(1)).Return([]*models.StudentHomeworkVariant{}, nil)
	repo.VariantRepo.On("Create", ctx, mock.AnythingOfType("*models.StudentHomeworkVariant")).Return(nil)

	service := newVariantService(repo)
	created, err := service.GenerateRandomForStudent(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, uint(11), created[0].HomeworkID)
	assert.GreaterOrEqual(t, created[0].VariantNumber, 1)
	assert.LessOrEqual(t, created[0].VariantNumber, 3)
}

func TestVariantService_BulkUpdateForStudent(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{ID: 1, Telegram: "test_student"}
	hwFirst := &models.Homework{ID: 10, Number: 1, VariantsCount: 4}
	hwSecond := &models.Homework{ID: 11, Number: 2, VariantsCount: 6}

	t.Run("applies all entries", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(10)).Return(hwFirst, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(11)).Return(hwSecond, nil)
		repo.VariantRepo.On("GetByPair", ctx, uint(1), uint(10)).Return(nil, gorm.ErrRecordNotFound)
		repo.VariantRepo.On("GetByPair", ctx, uint(1), uint(11)).
			Return(&models.StudentHomeworkVariant{ID: 3, StudentID: 1, HomeworkID: 11, VariantNumber: 2}, nil)
		repo.VariantRepo.On("Create", ctx, mock.AnythingOfType("*models.StudentHomeworkVariant")).Return(nil)
		repo.VariantRepo.On("Update", ctx, mock.AnythingOfType("*models.StudentHomeworkVariant")).Return(nil)

		service := newVariantService(repo)
		applied, err := service.BulkUpdateForStudent(ctx, 1, []VariantAssignment{
			{HomeworkID: 10, VariantNumber: 4},
			{HomeworkID: 11, VariantNumber: 6},
		})

		assert.NoError(t, err)
		assert.Len(t, applied, 2)
	})

	t.Run("one bad entry blocks the whole batch", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(10)).Return(hwFirst, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(11)).Return(hwSecond, nil)

		service := newVariantService(repo)
		_, err := service.BulkUpdateForStudent(ctx, 1, []VariantAssignment{
			{HomeworkID: 10, VariantNumber: 2},
			{HomeworkID: 11, VariantNumber: 7},
		})

		var validationErrors ValidationErrors
		assert.ErrorAs(t, err, &validationErrors)
		assert.Len(t, validationErrors, 1)
		assert.Equal(t, "variant_bound", validationErrors[0].Rule)
		repo.VariantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		repo.VariantRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown homework blocks the whole batch", func(t *testing.T) {
		repo := NewMockRepository()
		repo.StudentRepo.On("GetActiveByID", ctx, uint(1)).Return(student, nil)
		repo.HomeworkRepo.On("GetByID", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := newVariantService(repo)
		_, err := service.BulkUpdateForStudent(ctx, 1, []VariantAssignment{
			{HomeworkID: 99, VariantNumber: 1},
		})

		assert.ErrorIs(t, err, ErrHomeworkNotFound)
		repo.VariantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
