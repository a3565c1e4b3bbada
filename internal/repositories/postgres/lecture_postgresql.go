package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type LecturePostgreSQL struct {
	db *gorm.DB
}

func NewLecturePostgreSQL(db *gorm.DB) repositories.LectureRepository {
	return &LecturePostgreSQL{db: db}
}

func (l *LecturePostgreSQL) Create(ctx context.Context, lecture *models.Lecture) error {
	if err := l.db.WithContext(ctx).Create(lecture).Error; err != nil {
		return fmt.Errorf("failed to create lecture: %w", err)
	}
	return nil
}

func (l *LecturePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Lecture, error) {
	var lecture models.Lecture
	if err := l.db.WithContext(ctx).First(&lecture, id).Error; err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (l *LecturePostgreSQL) GetByNumber(ctx context.Context, number int) (*models.Lecture, error) {
	var lecture models.Lecture
	err := l.db.WithContext(ctx).
		Where("number = ?", number).
		First(&lecture).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (l *LecturePostgreSQL) GetBySecretCode(ctx context.Context, code string) (*models.Lecture, error) {
	var lecture models.Lecture
	err := l.db.WithContext(ctx).
		Where("secret_code = ?", code).
		First(&lecture).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (l *LecturePostgreSQL) List(ctx context.Context) ([]*models.Lecture, error) {
	var lectures []*models.Lecture
	err := l.db.WithContext(ctx).
		Order("number ASC").
		Find(&lectures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	return lectures, nil
}

func (l *LecturePostgreSQL) Update(ctx context.Context, lecture *models.Lecture) error {
	if err := l.db.WithContext(ctx).Save(lecture).Error; err != nil {
		return fmt.Errorf("failed to update lecture: %w", err)
	}
	return nil
}

func (l *LecturePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := l.db.WithContext(ctx).Delete(&models.Lecture{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lecture: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
