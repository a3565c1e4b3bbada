package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type HomeworkPostgreSQL struct {
	db *gorm.DB
}

func NewHomeworkPostgreSQL(db *gorm.DB) repositories.HomeworkRepository {
	return &HomeworkPostgreSQL{db: db}
}

func (h *HomeworkPostgreSQL) Create(ctx context.Context, homework *models.Homework) error {
	if err := h.db.WithContext(ctx).Create(homework).Error; err != nil {
		return fmt.Errorf("failed to create homework: %w", err)
	}
	return nil
}

func (h *HomeworkPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Homework, error) {
	var homework models.Homework
	if err := h.db.WithContext(ctx).First(&homework, id).Error; err != nil {
		return nil, err
	}
	return &homework, nil
}

func (h *HomeworkPostgreSQL) GetByNumber(ctx context.Context, number int) (*models.Homework, error) {
	var homework models.Homework
	err := h.db.WithContext(ctx).
		Where("number = ?", number).
		First(&homework).Error
	if err != nil {
		return nil, err
	}
	return &homework, nil
}

func (h *HomeworkPostgreSQL) List(ctx context.Context) ([]*models.Homework, error) {
	var homework []*models.Homework
	err := h.db.WithContext(ctx).
		Order("number ASC").
		Find(&homework).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list homework: %w", err)
	}
	return homework, nil
}

func (h *HomeworkPostgreSQL) Update(ctx context.Context, homework *models.Homework) error {
	if err := h.db.WithContext(ctx).Save(homework).Error; err != nil {
		return fmt.Errorf("failed to update homework: %w", err)
	}
	return nil
}

func (h *HomeworkPostgreSQL) Count(ctx context.Context) (int, error) {
	var count int64
	if err := h.db.WithContext(ctx).Model(&models.Homework{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count homework: %w", err)
	}
	return int(count), nil
}
