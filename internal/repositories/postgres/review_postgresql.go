package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type ReviewPostgreSQL struct {
	db *gorm.DB
}

func NewReviewPostgreSQL(db *gorm.DB) repositories.ReviewRepository {
	return &ReviewPostgreSQL{db: db}
}

func (r *ReviewPostgreSQL) Create(ctx context.Context, review *models.HomeworkReview) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create homework review: %w", err)
	}
	return nil
}

func (r *ReviewPostgreSQL) GetByID(ctx context.Context, id uint) (*models.HomeworkReview, error) {
	var review models.HomeworkReview
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewPostgreSQL) List(ctx context.Context) ([]*models.HomeworkReview, error) {
	var reviews []*models.HomeworkReview
	if err := r.db.WithContext(ctx).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list homework reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewPostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.HomeworkReview, error) {
	var reviews []*models.HomeworkReview
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("send_date DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for student: %w", err)
	}
	return reviews, nil
}

func (r *ReviewPostgreSQL) ListByStudents(ctx context.Context, studentIDs []uint) ([]*models.HomeworkReview, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var reviews []*models.HomeworkReview
	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for students: %w", err)
	}
	return reviews, nil
}

func (r *ReviewPostgreSQL) Update(ctx context.Context, review *models.HomeworkReview) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return fmt.Errorf("failed to update homework review: %w", err)
	}
	return nil
}

func (r *ReviewPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.HomeworkReview{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete homework review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewPostgreSQL) SumResultByStudent(ctx context.Context, studentID uint) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.HomeworkReview{}).
		Where("student_id = ?", studentID).
		Select("COALESCE(SUM(result), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum results for student: %w", err)
	}
	return int(total), nil
}

func (r *ReviewPostgreSQL) AvgAIPercentageByStudent(ctx context.Context, studentID uint) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.HomeworkReview{}).
		Where("student_id = ? AND ai_percentage IS NOT NULL", studentID).
		Select("AVG(ai_percentage)").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average ai percentage for student: %w", err)
	}
	return avg, nil
}
