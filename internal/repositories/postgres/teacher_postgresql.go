package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type TeacherPostgreSQL struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{db: db}
}

func (t *TeacherPostgreSQL) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := t.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}
	return nil
}

func (t *TeacherPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := t.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (t *TeacherPostgreSQL) GetActiveByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := t.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (t *TeacherPostgreSQL) GetActiveByTelegram(ctx context.Context, telegram string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := t.db.WithContext(ctx).
		Where("telegram = ? AND is_deleted = ?", telegram, false).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (t *TeacherPostgreSQL) ListActive(ctx context.Context) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	err := t.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("full_name ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (t *TeacherPostgreSQL) ListActiveByGroup(ctx context.Context, groupNumber string) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	err := t.db.WithContext(ctx).
		Joins("JOIN teacher_groups ON teacher_groups.teacher_id = teachers.id").
		Where("teacher_groups.group_number = ? AND teachers.is_deleted = ?", groupNumber, false).
		Find(&teachers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers by group: %w", err)
	}
	return teachers, nil
}

func (t *TeacherPostgreSQL) ListAll(ctx context.Context) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	if err := t.db.WithContext(ctx).Find(&teachers).Error; err != nil {
		return nil, fmt.Errorf("failed to list all teachers: %w", err)
	}
	return teachers, nil
}

func (t *TeacherPostgreSQL) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := t.db.WithContext(ctx).Save(teacher).Error; err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}
	return nil
}

func (t *TeacherPostgreSQL) CreateGroup(ctx context.Context, group *models.TeacherGroup) error {
	if err := t.db.WithContext(ctx).Create(group).Error; err != nil {
		return fmt.Errorf("failed to create teacher group: %w", err)
	}
	return nil
}

func (t *TeacherPostgreSQL) GetGroupByID(ctx context.Context, id uint) (*models.TeacherGroup, error) {
	var group models.TeacherGroup
	if err := t.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (t *TeacherPostgreSQL) ListGroups(ctx context.Context) ([]*models.TeacherGroup, error) {
	var groups []*models.TeacherGroup
	if err := t.db.WithContext(ctx).Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list teacher groups: %w", err)
	}
	return groups, nil
}

func (t *TeacherPostgreSQL) ListGroupsByTeacher(ctx context.Context, teacherID uint) ([]*models.TeacherGroup, error) {
	var groups []*models.TeacherGroup
	err := t.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for teacher: %w", err)
	}
	return groups, nil
}

func (t *TeacherPostgreSQL) UpdateGroup(ctx context.Context, group *models.TeacherGroup) error {
	if err := t.db.WithContext(ctx).Save(group).Error; err != nil {
		return fmt.Errorf("failed to update teacher group: %w", err)
	}
	return nil
}

func (t *TeacherPostgreSQL) DeleteGroup(ctx context.Context, id uint) error {
	result := t.db.WithContext(ctx).Delete(&models.TeacherGroup{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete teacher group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
