package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// TeacherService manages teachers and their group assignments.
type TeacherService interface {
	Create(ctx context.Context, req *CreateTeacherRequest) (*models.Teacher, error)
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	GetByTelegram(ctx context.Context, telegram string) (*models.Teacher, error)
	List(ctx context.Context) ([]*models.Teacher, error)
	ListByGroup(ctx context.Context, groupNumber string) ([]*models.Teacher, error)
	Update(ctx context.Context, id uint, req *UpdateTeacherRequest) (*models.Teacher, error)
	Delete(ctx context.Context, id uint) error

	CreateGroup(ctx context.Context, req *CreateTeacherGroupRequest) (*models.TeacherGroup, error)
	ListGroups(ctx context.Context) ([]*models.TeacherGroup, error)
	ListGroupsByTeacher(ctx context.Context, teacherID uint) ([]*models.TeacherGroup, error)
	UpdateGroup(ctx context.Context, id uint, groupNumber string) (*models.TeacherGroup, error)
	DeleteGroup(ctx context.Context, id uint) error
}

type CreateTeacherRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Telegram string `json:"telegram" validate:"required,telegram_handle"`
}

type UpdateTeacherRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Telegram *string `json:"telegram" validate:"omitempty,telegram_handle"`
}

type CreateTeacherGroupRequest struct {
	TeacherID   uint   `json:"teacher_id" validate:"required"`
	GroupNumber string `json:"group_number" validate:"required,group_number"`
}

type teacherService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewTeacherService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) TeacherService {
	return &teacherService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== TEACHERS =====

func (s *teacherService) Create(ctx context.Context, req *CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		FullName: req.FullName,
		Telegram: req.Telegram,
	}
	if err := s.repo.Teacher().Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	s.logger.Info("Created teacher", "teacher_id", teacher.ID, "telegram", teacher.Telegram)
	return teacher, nil
}

func (s *teacherService) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetActiveByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to load teacher: %w", err)
	}
	return teacher, nil
}

func (s *teacherService) GetByTelegram(ctx context.Context, telegram string) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetActiveByTelegram(ctx, telegram)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to load teacher by telegram: %w", err)
	}
	return teacher, nil
}

func (s *teacherService) List(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.repo.Teacher().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (s *teacherService) ListByGroup(ctx context.Context, groupNumber string) ([]*models.Teacher, error) {
	teachers, err := s.repo.Teacher().ListActiveByGroup(ctx, groupNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers by group: %w", err)
	}
	return teachers, nil
}

func (s *teacherService) Update(ctx context.Context, id uint, req *UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	teacher, err := s.repo.Teacher().GetActiveByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to load teacher: %w", err)
	}

	if req.FullName != nil {
		teacher.FullName = *req.FullName
	}
	if req.Telegram != nil {
		teacher.Telegram = *req.Telegram
	}

	if err := s.repo.Teacher().Update(ctx, teacher); err != nil {
		return nil, fmt.Errorf("failed to update teacher: %w", err)
	}
	return teacher, nil
}

func (s *teacherService) Delete(ctx context.Context, id uint) error {
	teacher, err := s.repo.Teacher().GetActiveByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("failed to load teacher: %w", err)
	}

	teacher.IsDeleted = true
	if err := s.repo.Teacher().Update(ctx, teacher); err != nil {
		return fmt.Errorf("failed to soft-delete teacher: %w", err)
	}

	s.logger.Info("Soft-deleted teacher", "teacher_id", id)
	return nil
}

// ===== GROUP ASSIGNMENTS =====

func (s *teacherService) CreateGroup(ctx context.Context, req *CreateTeacherGroupRequest) (*models.TeacherGroup, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Teacher().GetActiveByID(ctx, req.TeacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to resolve teacher: %w", err)
	}

	group := &models.TeacherGroup{
		TeacherID:   req.TeacherID,
		GroupNumber: req.GroupNumber,
	}
	if err := s.repo.Teacher().CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create teacher group: %w", err)
	}
	return group, nil
}

func (s *teacherService) ListGroups(ctx context.Context) ([]*models.TeacherGroup, error) {
	groups, err := s.repo.Teacher().ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher groups: %w", err)
	}
	return groups, nil
}

func (s *teacherService) ListGroupsByTeacher(ctx context.Context, teacherID uint) ([]*models.TeacherGroup, error) {
	if _, err := s.repo.Teacher().GetActiveByID(ctx, teacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to resolve teacher: %w", err)
	}

	groups, err := s.repo.Teacher().ListGroupsByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher groups: %w", err)
	}
	return groups, nil
}

func (s *teacherService) UpdateGroup(ctx context.Context, id uint, groupNumber string) (*models.TeacherGroup, error) {
	if groupNumber == "" {
		return nil, NewValidationError("group_number", "is required", groupNumber)
	}

	group, err := s.repo.Teacher().GetGroupByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherGroupNotFound
		}
		return nil, fmt.Errorf("failed to load teacher group: %w", err)
	}

	group.GroupNumber = groupNumber
	if err := s.repo.Teacher().UpdateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update teacher group: %w", err)
	}
	return group, nil
}

func (s *teacherService) DeleteGroup(ctx context.Context, id uint) error {
	if err := s.repo.Teacher().DeleteGroup(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTeacherGroupNotFound
		}
		return fmt.Errorf("failed to delete teacher group: %w", err)
	}
	return nil
}
