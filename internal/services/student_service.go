package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// StudentService manages course participants. Deletion is always a soft
// delete so historical reviews and attendance keep resolving.
type StudentService interface {
	Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByTelegram(ctx context.Context, telegram string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id uint) error
	UpdateChatID(ctx context.Context, telegram string, chatID int64) (*models.Student, error)
}

type CreateStudentRequest struct {
	Year        int    `json:"year" validate:"required,min=1"`
	FullName    string `json:"full_name" validate:"required,min=1,max=200"`
	Telegram    string `json:"telegram" validate:"required,telegram_handle"`
	Github      string `json:"github" validate:"omitempty,max=100"`
	GroupNumber string `json:"group_number" validate:"omitempty,group_number"`
	ChatID      *int64 `json:"chat_id"`
}

type UpdateStudentRequest struct {
	Year        *int    `json:"year" validate:"omitempty,min=1"`
	FullName    *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Telegram    *string `json:"telegram" validate:"omitempty,telegram_handle"`
	Github      *string `json:"github" validate:"omitempty,max=100"`
	GroupNumber *string `json:"group_number" validate:"omitempty,group_number"`
	ChatID      *int64  `json:"chat_id"`
}

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Student().ExistsActiveByTelegram(ctx, req.Telegram)
	if err != nil {
		return nil, fmt.Errorf("failed to check telegram uniqueness: %w", err)
	}
	if exists {
		return nil, ErrDuplicateStudent
	}

	student := &models.Student{
		Year:        req.Year,
		FullName:    req.FullName,
		Telegram:    req.Telegram,
		Github:      req.Github,
		GroupNumber: req.GroupNumber,
		ChatID:      req.ChatID,
	}
	if err := s.repo.Student().Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("Created student", "student_id", student.ID, "telegram", student.Telegram)
	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetActiveByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	return student, nil
}

func (s *studentService) GetByTelegram(ctx context.Context, telegram string) (*models.Student, error) {
	student, err := s.repo.Student().GetActiveByTelegram(ctx, telegram)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student by telegram: %w", err)
	}
	return student, nil
}

func (s *studentService) List(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.Student().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetActiveByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	if req.Telegram != nil && *req.Telegram != student.Telegram {
		exists, err := s.repo.Student().ExistsActiveByTelegram(ctx, *req.Telegram)
		if err != nil {
			return nil, fmt.Errorf("failed to check telegram uniqueness: %w", err)
		}
		if exists {
			return nil, ErrDuplicateStudent
		}
		student.Telegram = *req.Telegram
	}
	if req.Year != nil {
		student.Year = *req.Year
	}
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Github != nil {
		student.Github = *req.Github
	}
	if req.GroupNumber != nil {
		student.GroupNumber = *req.GroupNumber
	}
	if req.ChatID != nil {
		student.ChatID = req.ChatID
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return student, nil
}

// Delete flags the student as deleted. The row stays so exports and joined
// reads of past activity still resolve.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	student, err := s.repo.Student().GetActiveByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to load student: %w", err)
	}

	student.IsDeleted = true
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return fmt.Errorf("failed to soft-delete student: %w", err)
	}

	s.logger.Info("Soft-deleted student", "student_id", id)
	return nil
}

// UpdateChatID binds the messaging chat id reported by the bot to the
// student with the given telegram handle.
func (s *studentService) UpdateChatID(ctx context.Context, telegram string, chatID int64) (*models.Student, error) {
	student, err := s.repo.Student().GetActiveByTelegram(ctx, telegram)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student by telegram: %w", err)
	}

	student.ChatID = &chatID
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student chat id: %w", err)
	}
	return student, nil
}
