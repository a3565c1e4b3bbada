package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// HomeworkService manages the assignment catalog. The sequence number is the
// key reviews match on, so shrinking VariantsCount below existing assignments
// is refused.
type HomeworkService interface {
	Create(ctx context.Context, req *CreateHomeworkRequest) (*models.Homework, error)
	GetByID(ctx context.Context, id uint) (*models.Homework, error)
	GetByNumber(ctx context.Context, number int) (*models.Homework, error)
	List(ctx context.Context) ([]*models.Homework, error)
	Update(ctx context.Context, id uint, req *UpdateHomeworkRequest) (*models.Homework, error)
}

type CreateHomeworkRequest struct {
	Number           int    `json:"number" validate:"required,min=1"`
	DueDate          string `json:"due_date" validate:"required,datetime=2006-01-02"`
	ShortDescription string `json:"short_description" validate:"required,min=1,max=500"`
	ExampleLink      string `json:"example_link" validate:"omitempty,url,max=500"`
	AssignedDate     string `json:"assigned_date" validate:"omitempty,datetime=2006-01-02"`
	VariantsCount    int    `json:"variants_count" validate:"required,min=1"`
}

type UpdateHomeworkRequest struct {
	Number           *int    `json:"number" validate:"omitempty,min=1"`
	DueDate          *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	ShortDescription *string `json:"short_description" validate:"omitempty,min=1,max=500"`
	ExampleLink      *string `json:"example_link" validate:"omitempty,url,max=500"`
	AssignedDate     *string `json:"assigned_date" validate:"omitempty,datetime=2006-01-02"`
	VariantsCount    *int    `json:"variants_count" validate:"omitempty,min=1"`
}

type homeworkService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewHomeworkService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) HomeworkService {
	return &homeworkService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *homeworkService) Create(ctx context.Context, req *CreateHomeworkRequest) (*models.Homework, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	homework := &models.Homework{
		Number:           req.Number,
		DueDate:          req.DueDate,
		ShortDescription: req.ShortDescription,
		ExampleLink:      req.ExampleLink,
		AssignedDate:     req.AssignedDate,
		VariantsCount:    req.VariantsCount,
	}
	if err := s.repo.Homework().Create(ctx, homework); err != nil {
		return nil, fmt.Errorf("failed to create homework: %w", err)
	}
	return homework, nil
}

func (s *homeworkService) GetByID(ctx context.Context, id uint) (*models.Homework, error) {
	homework, err := s.repo.Homework().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrHomeworkNotFound
		}
		return nil, fmt.Errorf("failed to load homework: %w", err)
	}
	return homework, nil
}

func (s *homeworkService) GetByNumber(ctx context.Context, number int) (*models.Homework, error) {
	homework, err := s.repo.Homework().GetByNumber(ctx, number)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrHomeworkNotFound
		}
		return nil, fmt.Errorf("failed to load homework by number: %w", err)
	}
	return homework, nil
}

func (s *homeworkService) List(ctx context.Context) ([]*models.Homework, error) {
	homeworkList, err := s.repo.Homework().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list homework: %w", err)
	}
	return homeworkList, nil
}

func (s *homeworkService) Update(ctx context.Context, id uint, req *UpdateHomeworkRequest) (*models.Homework, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	homework, err := s.repo.Homework().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrHomeworkNotFound
		}
		return nil, fmt.Errorf("failed to load homework: %w", err)
	}

	if req.VariantsCount != nil && *req.VariantsCount < homework.VariantsCount {
		if err := s.checkShrink(ctx, homework, *req.VariantsCount); err != nil {
			return nil, err
		}
	}

	if req.Number != nil {
		homework.Number = *req.Number
	}
	if req.DueDate != nil {
		homework.DueDate = *req.DueDate
	}
	if req.ShortDescription != nil {
		homework.ShortDescription = *req.ShortDescription
	}
	if req.ExampleLink != nil {
		homework.ExampleLink = *req.ExampleLink
	}
	if req.AssignedDate != nil {
		homework.AssignedDate = *req.AssignedDate
	}
	if req.VariantsCount != nil {
		homework.VariantsCount = *req.VariantsCount
	}

	if err := s.repo.Homework().Update(ctx, homework); err != nil {
		return nil, fmt.Errorf("failed to update homework: %w", err)
	}
	return homework, nil
}

// checkShrink refuses a variants_count reduction that would strand existing
// assignments above the new bound.
func (s *homeworkService) checkShrink(ctx context.Context, homework *models.Homework, newCount int) error {
	variants, err := s.repo.Variant().ListByHomework(ctx, homework.ID)
	if err != nil {
		return fmt.Errorf("failed to list homework variants: %w", err)
	}
	for _, variant := range variants {
		if variant.VariantNumber > newCount {
			return NewBusinessRuleError("variants_count_shrink",
				fmt.Sprintf("cannot reduce variants_count to %d: student %d holds variant %d",
					newCount, variant.StudentID, variant.VariantNumber),
				map[string]interface{}{"homework_id": homework.ID, "new_count": newCount})
		}
	}
	return nil
}
