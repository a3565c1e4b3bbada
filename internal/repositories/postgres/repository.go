package postgres

import (
	"context"
	"fmt"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db         *gorm.DB
	student    repositories.StudentRepository
	teacher    repositories.TeacherRepository
	lecture    repositories.LectureRepository
	attendance repositories.AttendanceRepository
	homework   repositories.HomeworkRepository
	review     repositories.ReviewRepository
	variant    repositories.VariantRepository
	examGrade  repositories.ExamGradeRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:         db,
		student:    NewStudentPostgreSQL(db),
		teacher:    NewTeacherPostgreSQL(db),
		lecture:    NewLecturePostgreSQL(db),
		attendance: NewAttendancePostgreSQL(db),
		homework:   NewHomeworkPostgreSQL(db),
		review:     NewReviewPostgreSQL(db),
		variant:    NewVariantPostgreSQL(db),
		examGrade:  NewExamGradePostgreSQL(db),
	}
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.TeacherGroup{},
		&models.Lecture{},
		&models.Attendance{},
		&models.Homework{},
		&models.HomeworkReview{},
		&models.StudentHomeworkVariant{},
		&models.ExamGrade{},
	)
}

func (r *repository) Student() repositories.StudentRepository       { return r.student }
func (r *repository) Teacher() repositories.TeacherRepository       { return r.teacher }
func (r *repository) Lecture() repositories.LectureRepository       { return r.lecture }
func (r *repository) Attendance() repositories.AttendanceRepository { return r.attendance }
func (r *repository) Homework() repositories.HomeworkRepository     { return r.homework }
func (r *repository) Review() repositories.ReviewRepository         { return r.review }
func (r *repository) Variant() repositories.VariantRepository       { return r.variant }
func (r *repository) ExamGrade() repositories.ExamGradeRepository   { return r.examGrade }

func (r *repository) Transaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *repository) ClearAll(ctx context.Context) error {
	// Dependents first so foreign keys never dangle mid-clear.
	ordered := []interface{}{
		&models.ExamGrade{},
		&models.StudentHomeworkVariant{},
		&models.HomeworkReview{},
		&models.Attendance{},
		&models.TeacherGroup{},
		&models.Student{},
		&models.Teacher{},
		&models.Lecture{},
		&models.Homework{},
	}
	for _, model := range ordered {
		if err := r.db.WithContext(ctx).Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}
