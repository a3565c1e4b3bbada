package repositories

import (
	"context"
	"errors"

	"github.com/DVDemon/frieren/internal/models"
	"gorm.io/gorm"
)

// Repository aggregates all entity repositories. Transaction runs fn against
// a Repository bound to a single database transaction; any error rolls back.
type Repository interface {
	Student() StudentRepository
	Teacher() TeacherRepository
	Lecture() LectureRepository
	Attendance() AttendanceRepository
	Homework() HomeworkRepository
	Review() ReviewRepository
	Variant() VariantRepository
	ExamGrade() ExamGradeRepository

	Transaction(ctx context.Context, fn func(Repository) error) error

	// ClearAll truncates every collection. Only meaningful inside Transaction;
	// bulk import is the sole caller.
	ClearAll(ctx context.Context) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Student, error)
	GetActiveByTelegram(ctx context.Context, telegram string) (*models.Student, error)
	ListActive(ctx context.Context) ([]*models.Student, error)
	ListActiveByGroups(ctx context.Context, groupNumbers []string) ([]*models.Student, error)
	ListAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	ExistsActiveByTelegram(ctx context.Context, telegram string) (bool, error)
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetActiveByID(ctx context.Context, id uint) (*models.Teacher, error)
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	GetActiveByTelegram(ctx context.Context, telegram string) (*models.Teacher, error)
	ListActive(ctx context.Context) ([]*models.Teacher, error)
	ListActiveByGroup(ctx context.Context, groupNumber string) ([]*models.Teacher, error)
	ListAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error

	CreateGroup(ctx context.Context, group *models.TeacherGroup) error
	GetGroupByID(ctx context.Context, id uint) (*models.TeacherGroup, error)
	ListGroups(ctx context.Context) ([]*models.TeacherGroup, error)
	ListGroupsByTeacher(ctx context.Context, teacherID uint) ([]*models.TeacherGroup, error)
	UpdateGroup(ctx context.Context, group *models.TeacherGroup) error
	DeleteGroup(ctx context.Context, id uint) error
}

type LectureRepository interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	GetByID(ctx context.Context, id uint) (*models.Lecture, error)
	GetByNumber(ctx context.Context, number int) (*models.Lecture, error)
	GetBySecretCode(ctx context.Context, code string) (*models.Lecture, error)
	List(ctx context.Context) ([]*models.Lecture, error)
	Update(ctx context.Context, lecture *models.Lecture) error
	Delete(ctx context.Context, id uint) error
}

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, id uint) (*models.Attendance, error)
	GetByPair(ctx context.Context, studentID, lectureID uint) (*models.Attendance, error)
	List(ctx context.Context) ([]*models.Attendance, error)
	Update(ctx context.Context, attendance *models.Attendance) error
	CountPresentByLecture(ctx context.Context, lectureID uint) (int, error)
	CountPresentByStudent(ctx context.Context, studentID uint) (int, error)
	DeleteByLecture(ctx context.Context, lectureID uint) (int, error)
}

type HomeworkRepository interface {
	Create(ctx context.Context, homework *models.Homework) error
	GetByID(ctx context.Context, id uint) (*models.Homework, error)
	GetByNumber(ctx context.Context, number int) (*models.Homework, error)
	List(ctx context.Context) ([]*models.Homework, error)
	Update(ctx context.Context, homework *models.Homework) error
	Count(ctx context.Context) (int, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.HomeworkReview) error
	GetByID(ctx context.Context, id uint) (*models.HomeworkReview, error)
	List(ctx context.Context) ([]*models.HomeworkReview, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.HomeworkReview, error)
	ListByStudents(ctx context.Context, studentIDs []uint) ([]*models.HomeworkReview, error)
	Update(ctx context.Context, review *models.HomeworkReview) error
	Delete(ctx context.Context, id uint) error
	SumResultByStudent(ctx context.Context, studentID uint) (int, error)
	AvgAIPercentageByStudent(ctx context.Context, studentID uint) (*float64, error)
}

type VariantRepository interface {
	Create(ctx context.Context, variant *models.StudentHomeworkVariant) error
	GetByID(ctx context.Context, id uint) (*models.StudentHomeworkVariant, error)
	GetByPair(ctx context.Context, studentID, homeworkID uint) (*models.StudentHomeworkVariant, error)
	List(ctx context.Context) ([]*models.StudentHomeworkVariant, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentHomeworkVariant, error)
	ListByHomework(ctx context.Context, homeworkID uint) ([]*models.StudentHomeworkVariant, error)
	Update(ctx context.Context, variant *models.StudentHomeworkVariant) error
	Delete(ctx context.Context, id uint) error
}

type ExamGradeRepository interface {
	Create(ctx context.Context, grade *models.ExamGrade) error
	GetByID(ctx context.Context, id uint) (*models.ExamGrade, error)
	List(ctx context.Context) ([]*models.ExamGrade, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.ExamGrade, error)
	Update(ctx context.Context, grade *models.ExamGrade) error
	Delete(ctx context.Context, id uint) error
}

// IsNotFoundError reports whether err is the storage layer's missing-row error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
