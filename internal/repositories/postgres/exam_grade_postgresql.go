package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type ExamGradePostgreSQL struct {
	db *gorm.DB
}

func NewExamGradePostgreSQL(db *gorm.DB) repositories.ExamGradeRepository {
	return &ExamGradePostgreSQL{db: db}
}

func (e *ExamGradePostgreSQL) Create(ctx context.Context, grade *models.ExamGrade) error {
	if err := e.db.WithContext(ctx).Create(grade).Error; err != nil {
		return fmt.Errorf("failed to create exam grade: %w", err)
	}
	return nil
}

func (e *ExamGradePostgreSQL) GetByID(ctx context.Context, id uint) (*models.ExamGrade, error) {
	var grade models.ExamGrade
	if err := e.db.WithContext(ctx).First(&grade, id).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (e *ExamGradePostgreSQL) List(ctx context.Context) ([]*models.ExamGrade, error) {
	var grades []*models.ExamGrade
	err := e.db.WithContext(ctx).
		Order("date ASC").
		Find(&grades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exam grades: %w", err)
	}
	return grades, nil
}

func (e *ExamGradePostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.ExamGrade, error) {
	var grades []*models.ExamGrade
	err := e.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date ASC").
		Find(&grades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exam grades for student: %w", err)
	}
	return grades, nil
}

func (e *ExamGradePostgreSQL) Update(ctx context.Context, grade *models.ExamGrade) error {
	if err := e.db.WithContext(ctx).Save(grade).Error; err != nil {
		return fmt.Errorf("failed to update exam grade: %w", err)
	}
	return nil
}

func (e *ExamGradePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := e.db.WithContext(ctx).Delete(&models.ExamGrade{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete exam grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
