package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// VariantService maintains the (student, homework) to variant-number mapping.
// Every write enforces 1 <= variant_number <= homework.variants_count and the
// at-most-one-row-per-pair invariant.
type VariantService interface {
	GetByID(ctx context.Context, id uint) (*models.StudentHomeworkVariant, error)
	GetByPair(ctx context.Context, studentID, homeworkID uint) (*models.StudentHomeworkVariant, error)
	List(ctx context.Context) ([]*models.StudentHomeworkVariant, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentHomeworkVariant, error)
	ListByHomework(ctx context.Context, homeworkID uint) ([]*models.StudentHomeworkVariant, error)
	Create(ctx context.Context, req *CreateVariantRequest) (*models.StudentHomeworkVariant, error)
	Update(ctx context.Context, id uint, variantNumber int) (*models.StudentHomeworkVariant, error)
	Delete(ctx context.Context, id uint) error

	SetVariant(ctx context.Context, studentID, homeworkID uint, variantNumber int) (*models.StudentHomeworkVariant, error)
	GenerateRandomForStudent(ctx context.Context, studentID uint) ([]*models.StudentHomeworkVariant, error)
	BulkUpdateForStudent(ctx context.Context, studentID uint, assignments []VariantAssignment) ([]*models.StudentHomeworkVariant, error)
}

type CreateVariantRequest struct {
	StudentID     uint `json:"student_id" validate:"required"`
	HomeworkID    uint `json:"homework_id" validate:"required"`
	VariantNumber int  `json:"variant_number" validate:"required,min=1"`
}

// VariantAssignment is one entry of a bulk upsert.
type VariantAssignment struct {
	HomeworkID    uint `json:"homework_id" validate:"required"`
	VariantNumber int  `json:"variant_number" validate:"required,min=1"`
}

type variantService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewVariantService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) VariantService {
	return &variantService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== READS =====

func (s *variantService) GetByID(ctx context.Context, id uint) (*models.StudentHomeworkVariant, error) {
	variant, err := s.repo.Variant().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to load variant: %w", err)
	}
	return variant, nil
}

func (s *variantService) GetByPair(ctx context.Context, studentID, homeworkID uint) (*models.StudentHomeworkVariant, error) {
	variant, err := s.repo.Variant().GetByPair(ctx, studentID, homeworkID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to load variant for pair: %w", err)
	}
	return variant, nil
}

func (s *variantService) List(ctx context.Context) ([]*models.StudentHomeworkVariant, error) {
	variants, err := s.repo.Variant().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	return variants, nil
}

func (s *variantService) ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentHomeworkVariant, error) {
	variants, err := s.repo.Variant().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list student variants: %w", err)
	}
	return variants, nil
}

func (s *variantService) ListByHomework(ctx context.Context, homeworkID uint) ([]*models.StudentHomeworkVariant, error) {
	variants, err := s.repo.Variant().ListByHomework(ctx, homeworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list homework variants: %w", err)
	}
	return variants, nil
}

// ===== WRITES =====

func (s *variantService) Create(ctx context.Context, req *CreateVariantRequest) (*models.StudentHomeworkVariant, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	homework, err := s.resolvePair(ctx, req.StudentID, req.HomeworkID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBound(homework, req.VariantNumber); err != nil {
		return nil, err
	}

	if _, err := s.repo.Variant().GetByPair(ctx, req.StudentID, req.HomeworkID); err == nil {
		return nil, NewBusinessRuleError("variant_pair_unique",
			"a variant is already assigned for this student and homework",
			map[string]interface{}{"student_id": req.StudentID, "homework_id": req.HomeworkID})
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing variant: %w", err)
	}

	variant := &models.StudentHomeworkVariant{
		StudentID:     req.StudentID,
		HomeworkID:    req.HomeworkID,
		VariantNumber: req.VariantNumber,
	}
	if err := s.repo.Variant().Create(ctx, variant); err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return variant, nil
}

func (s *variantService) Update(ctx context.Context, id uint, variantNumber int) (*models.StudentHomeworkVariant, error) {
	variant, err := s.repo.Variant().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to load variant: %w", err)
	}

	homework, err := s.getHomework(ctx, variant.HomeworkID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBound(homework, variantNumber); err != nil {
		return nil, err
	}

	variant.VariantNumber = variantNumber
	if err := s.repo.Variant().Update(ctx, variant); err != nil {
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}
	return variant, nil
}

func (s *variantService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Variant().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrVariantNotFound
		}
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	return nil
}

// SetVariant upserts the assignment for a pair: an existing row is replaced
// in place by its own id, never duplicated.
func (s *variantService) SetVariant(ctx context.Context, studentID, homeworkID uint, variantNumber int) (*models.StudentHomeworkVariant, error) {
	homework, err := s.resolvePair(ctx, studentID, homeworkID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBound(homework, variantNumber); err != nil {
		return nil, err
	}
	return s.upsert(ctx, s.repo, studentID, homeworkID, variantNumber)
}

// GenerateRandomForStudent draws a uniform random variant for every homework
// in the catalog the student has no assignment for yet. Existing assignments
// are left untouched.
func (s *variantService) GenerateRandomForStudent(ctx context.Context, studentID uint) ([]*models.StudentHomeworkVariant, error) {
	if _, err := s.repo.Student().GetActiveByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}

	homeworkList, err := s.repo.Homework().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list homework: %w", err)
	}

	existing, err := s.repo.Variant().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing variants: %w", err)
	}
	assigned := make(map[uint]bool, len(existing))
	for _, v := range existing {
		assigned[v.HomeworkID] = true
	}

	created := make([]*models.StudentHomeworkVariant, 0, len(homeworkList))
	for _, hw := range homeworkList {
		if assigned[hw.ID] {
			continue
		}
		if hw.VariantsCount < 1 {
			s.logger.Warn("Skipping homework with no variants",
				"homework_id", hw.ID, "variants_count", hw.VariantsCount)
			continue
		}
		variant := &models.StudentHomeworkVariant{
			StudentID:     studentID,
			HomeworkID:    hw.ID,
			VariantNumber: rand.IntN(hw.VariantsCount) + 1,
		}
		if err := s.repo.Variant().Create(ctx, variant); err != nil {
			return nil, fmt.Errorf("failed to create random variant for homework %d: %w", hw.ID, err)
		}
		created = append(created, variant)
	}

	s.logger.Info("Generated random variants",
		"student_id", studentID, "created", len(created), "skipped", len(assigned))
	return created, nil
}

// BulkUpdateForStudent validates every entry before touching the store, then
// applies all upserts in one transaction. If any entry is out of range or
// names an unknown homework, nothing is persisted.
func (s *variantService) BulkUpdateForStudent(ctx context.Context, studentID uint, assignments []VariantAssignment) ([]*models.StudentHomeworkVariant, error) {
	if _, err := s.repo.Student().GetActiveByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}

	homeworkByID := make(map[uint]*models.Homework, len(assignments))
	var validationErrors ValidationErrors
	for _, assignment := range assignments {
		homework, err := s.getHomework(ctx, assignment.HomeworkID)
		if err != nil {
			return nil, err
		}
		homeworkByID[assignment.HomeworkID] = homework
		if assignment.VariantNumber < 1 || assignment.VariantNumber > homework.VariantsCount {
			validationErrors = append(validationErrors, ValidationError{
				Field:   "variant_number",
				Message: fmt.Sprintf("must be between 1 and %d for homework %d", homework.VariantsCount, homework.Number),
				Value:   assignment.VariantNumber,
				Rule:    "variant_bound",
			})
		}
	}
	if len(validationErrors) > 0 {
		return nil, validationErrors
	}

	var applied []*models.StudentHomeworkVariant
	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		for _, assignment := range assignments {
			variant, err := s.upsert(ctx, tx, studentID, assignment.HomeworkID, assignment.VariantNumber)
			if err != nil {
				return err
			}
			applied = append(applied, variant)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply bulk variant update: %w", err)
	}

	s.logger.Info("Applied bulk variant update", "student_id", studentID, "entries", len(applied))
	return applied, nil
}

// ===== HELPERS =====

func (s *variantService) upsert(ctx context.Context, repo repositories.Repository, studentID, homeworkID uint, variantNumber int) (*models.StudentHomeworkVariant, error) {
	existing, err := repo.Variant().GetByPair(ctx, studentID, homeworkID)
	if err == nil {
		existing.VariantNumber = variantNumber
		if err := repo.Variant().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update variant: %w", err)
		}
		return existing, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing variant: %w", err)
	}

	variant := &models.StudentHomeworkVariant{
		StudentID:     studentID,
		HomeworkID:    homeworkID,
		VariantNumber: variantNumber,
	}
	if err := repo.Variant().Create(ctx, variant); err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return variant, nil
}

func (s *variantService) resolvePair(ctx context.Context, studentID, homeworkID uint) (*models.Homework, error) {
	if _, err := s.repo.Student().GetActiveByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}
	return s.getHomework(ctx, homeworkID)
}

func (s *variantService) getHomework(ctx context.Context, homeworkID uint) (*models.Homework, error) {
	homework, err := s.repo.Homework().GetByID(ctx, homeworkID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrHomeworkNotFound
		}
		return nil, fmt.Errorf("failed to resolve homework: %w", err)
	}
	return homework, nil
}

func (s *variantService) checkBound(homework *models.Homework, variantNumber int) error {
	if variantNumber < 1 || variantNumber > homework.VariantsCount {
		return ValidationErrors{{
			Field:   "variant_number",
			Message: fmt.Sprintf("must be between 1 and %d for homework %d", homework.VariantsCount, homework.Number),
			Value:   variantNumber,
			Rule:    "variant_bound",
		}}
	}
	return nil
}
