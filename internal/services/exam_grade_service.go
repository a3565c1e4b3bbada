package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// ExamGradeService manages exam results and their attached documents. The
// document blob never travels with list reads; it is uploaded and fetched
// through its own operations.
type ExamGradeService interface {
	Create(ctx context.Context, req *CreateExamGradeRequest) (*models.ExamGrade, error)
	GetByID(ctx context.Context, id uint) (*models.ExamGradeRecord, error)
	List(ctx context.Context) ([]*models.ExamGradeRecord, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.ExamGradeRecord, error)
	Update(ctx context.Context, id uint, req *UpdateExamGradeRequest) (*models.ExamGrade, error)
	Delete(ctx context.Context, id uint) error

	UploadDocument(ctx context.Context, id uint, document []byte) error
	GetDocument(ctx context.Context, id uint) ([]byte, error)
}

type CreateExamGradeRequest struct {
	StudentID     uint   `json:"student_id" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Grade         int    `json:"grade" validate:"min=0,max=100"`
	VariantNumber int    `json:"variant_number" validate:"required,min=1"`
}

type UpdateExamGradeRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Grade         *int    `json:"grade" validate:"omitempty,min=0,max=100"`
	VariantNumber *int    `json:"variant_number" validate:"omitempty,min=1"`
}

type examGradeService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewExamGradeService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) ExamGradeService {
	return &examGradeService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *examGradeService) Create(ctx context.Context, req *CreateExamGradeRequest) (*models.ExamGrade, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Student().GetActiveByID(ctx, req.StudentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}

	grade := &models.ExamGrade{
		StudentID:     req.StudentID,
		Date:          req.Date,
		Grade:         req.Grade,
		VariantNumber: req.VariantNumber,
	}
	if err := s.repo.ExamGrade().Create(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to create exam grade: %w", err)
	}
	return grade, nil
}

func (s *examGradeService) GetByID(ctx context.Context, id uint) (*models.ExamGradeRecord, error) {
	grade, err := s.repo.ExamGrade().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamGradeNotFound
		}
		return nil, fmt.Errorf("failed to load exam grade: %w", err)
	}

	records, err := s.buildRecords(ctx, []*models.ExamGrade{grade})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrStudentNotFound
	}
	return records[0], nil
}

func (s *examGradeService) List(ctx context.Context) ([]*models.ExamGradeRecord, error) {
	grades, err := s.repo.ExamGrade().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exam grades: %w", err)
	}
	return s.buildRecords(ctx, grades)
}

func (s *examGradeService) ListByStudent(ctx context.Context, studentID uint) ([]*models.ExamGradeRecord, error) {
	if _, err := s.repo.Student().GetActiveByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}

	grades, err := s.repo.ExamGrade().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list student exam grades: %w", err)
	}
	return s.buildRecords(ctx, grades)
}

func (s *examGradeService) Update(ctx context.Context, id uint, req *UpdateExamGradeRequest) (*models.ExamGrade, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	grade, err := s.repo.ExamGrade().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamGradeNotFound
		}
		return nil, fmt.Errorf("failed to load exam grade: %w", err)
	}

	if req.Date != nil {
		grade.Date = *req.Date
	}
	if req.Grade != nil {
		grade.Grade = *req.Grade
	}
	if req.VariantNumber != nil {
		grade.VariantNumber = *req.VariantNumber
	}

	if err := s.repo.ExamGrade().Update(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to update exam grade: %w", err)
	}
	return grade, nil
}

func (s *examGradeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.ExamGrade().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrExamGradeNotFound
		}
		return fmt.Errorf("failed to delete exam grade: %w", err)
	}
	return nil
}

func (s *examGradeService) UploadDocument(ctx context.Context, id uint, document []byte) error {
	if len(document) == 0 {
		return NewValidationError("document", "is required", nil)
	}

	grade, err := s.repo.ExamGrade().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrExamGradeNotFound
		}
		return fmt.Errorf("failed to load exam grade: %w", err)
	}

	grade.Document = document
	if err := s.repo.ExamGrade().Update(ctx, grade); err != nil {
		return fmt.Errorf("failed to store exam document: %w", err)
	}

	s.logger.Info("Stored exam document", "exam_grade_id", id, "size_bytes", len(document))
	return nil
}

func (s *examGradeService) GetDocument(ctx context.Context, id uint) ([]byte, error) {
	grade, err := s.repo.ExamGrade().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamGradeNotFound
		}
		return nil, fmt.Errorf("failed to load exam grade: %w", err)
	}
	if len(grade.Document) == 0 {
		return nil, ErrDocumentNotFound
	}
	return grade.Document, nil
}

func (s *examGradeService) buildRecords(ctx context.Context, grades []*models.ExamGrade) ([]*models.ExamGradeRecord, error) {
	students, err := s.repo.Student().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	studentsByID := make(map[uint]*models.Student, len(students))
	for _, st := range students {
		studentsByID[st.ID] = st
	}

	records := make([]*models.ExamGradeRecord, 0, len(grades))
	for _, grade := range grades {
		student, ok := studentsByID[grade.StudentID]
		if !ok || student.IsDeleted {
			continue
		}
		records = append(records, &models.ExamGradeRecord{
			ID:            grade.ID,
			Date:          grade.Date,
			Grade:         grade.Grade,
			VariantNumber: grade.VariantNumber,
			StudentID:     grade.StudentID,
			Student:       *student,
			HasDocument:   len(grade.Document) > 0,
		})
	}
	return records, nil
}
