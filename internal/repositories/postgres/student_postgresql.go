package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetActiveByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetActiveByTelegram(ctx context.Context, telegram string) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Where("telegram = ? AND is_deleted = ?", telegram, false).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) ListActive(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("full_name ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) ListActiveByGroups(ctx context.Context, groupNumbers []string) ([]*models.Student, error) {
	if len(groupNumbers) == 0 {
		return nil, nil
	}
	var students []*models.Student
	err := s.db.WithContext(ctx).
		Where("group_number IN ? AND is_deleted = ?", groupNumbers, false).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students by groups: %w", err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) ListAll(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	if err := s.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list all students: %w", err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

func (s *StudentPostgreSQL) ExistsActiveByTelegram(ctx context.Context, telegram string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("telegram = ? AND is_deleted = ?", telegram, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check telegram uniqueness: %w", err)
	}
	return count > 0, nil
}
