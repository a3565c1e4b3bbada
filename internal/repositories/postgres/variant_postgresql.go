package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type VariantPostgreSQL struct {
	db *gorm.DB
}

func NewVariantPostgreSQL(db *gorm.DB) repositories.VariantRepository {
	return &VariantPostgreSQL{db: db}
}

func (v *VariantPostgreSQL) Create(ctx context.Context, variant *models.StudentHomeworkVariant) error {
	if err := v.db.WithContext(ctx).Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create variant assignment: %w", err)
	}
	return nil
}

func (v *VariantPostgreSQL) GetByID(ctx context.Context, id uint) (*models.StudentHomeworkVariant, error) {
	var variant models.StudentHomeworkVariant
	if err := v.db.WithContext(ctx).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (v *VariantPostgreSQL) GetByPair(ctx context.Context, studentID, homeworkID uint) (*models.StudentHomeworkVariant, error) {
	var variant models.StudentHomeworkVariant
	err := v.db.WithContext(ctx).
		Where("student_id = ? AND homework_id = ?", studentID, homeworkID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (v *VariantPostgreSQL) List(ctx context.Context) ([]*models.StudentHomeworkVariant, error) {
	var variants []*models.StudentHomeworkVariant
	if err := v.db.WithContext(ctx).Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to list variant assignments: %w", err)
	}
	return variants, nil
}

func (v *VariantPostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentHomeworkVariant, error) {
	var variants []*models.StudentHomeworkVariant
	err := v.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&variants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list variants for student: %w", err)
	}
	return variants, nil
}

func (v *VariantPostgreSQL) ListByHomework(ctx context.Context, homeworkID uint) ([]*models.StudentHomeworkVariant, error) {
	var variants []*models.StudentHomeworkVariant
	err := v.db.WithContext(ctx).
		Where("homework_id = ?", homeworkID).
		Find(&variants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list variants for homework: %w", err)
	}
	return variants, nil
}

func (v *VariantPostgreSQL) Update(ctx context.Context, variant *models.StudentHomeworkVariant) error {
	if err := v.db.WithContext(ctx).Save(variant).Error; err != nil {
		return fmt.Errorf("failed to update variant assignment: %w", err)
	}
	return nil
}

func (v *VariantPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := v.db.WithContext(ctx).Delete(&models.StudentHomeworkVariant{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete variant assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
