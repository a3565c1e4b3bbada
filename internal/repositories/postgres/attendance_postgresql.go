package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type AttendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: db}
}

func (a *AttendancePostgreSQL) Create(ctx context.Context, attendance *models.Attendance) error {
	if err := a.db.WithContext(ctx).Create(attendance).Error; err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

func (a *AttendancePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := a.db.WithContext(ctx).First(&attendance, id).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (a *AttendancePostgreSQL) GetByPair(ctx context.Context, studentID, lectureID uint) (*models.Attendance, error) {
	var attendance models.Attendance
	err := a.db.WithContext(ctx).
		Where("student_id = ? AND lecture_id = ?", studentID, lectureID).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (a *AttendancePostgreSQL) List(ctx context.Context) ([]*models.Attendance, error) {
	var records []*models.Attendance
	if err := a.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (a *AttendancePostgreSQL) Update(ctx context.Context, attendance *models.Attendance) error {
	if err := a.db.WithContext(ctx).Save(attendance).Error; err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

func (a *AttendancePostgreSQL) CountPresentByLecture(ctx context.Context, lectureID uint) (int, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("lecture_id = ? AND present = ?", lectureID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance for lecture: %w", err)
	}
	return int(count), nil
}

func (a *AttendancePostgreSQL) CountPresentByStudent(ctx context.Context, studentID uint) (int, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("student_id = ? AND present = ?", studentID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance for student: %w", err)
	}
	return int(count), nil
}

func (a *AttendancePostgreSQL) DeleteByLecture(ctx context.Context, lectureID uint) (int, error) {
	result := a.db.WithContext(ctx).
		Where("lecture_id = ?", lectureID).
		Delete(&models.Attendance{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete attendance for lecture: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}
