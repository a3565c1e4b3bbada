package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
)

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetActiveByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetActiveByTelegram(ctx context.Context, telegram string) (*models.Student, error) {
	args := m.Called(ctx, telegram)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) ListActive(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentRepository) ListActiveByGroups(ctx context.Context, groupNumbers []string) ([]*models.Student, error) {
	args := m.Called(ctx, groupNumbers)
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) ExistsActiveByTelegram(ctx context.Context, telegram string) (bool, error) {
	args := m.Called(ctx, telegram)
	return args.Bool(0), args.Error(1)
}

// MockTeacherRepository is a mock implementation of TeacherRepository
type MockTeacherRepository struct {
	mock.Mock
}

func (m *MockTeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepository) GetActiveByID(ctx context.Context, id uint) (*models.Teacher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) GetActiveByTelegram(ctx context.Context, telegram string) (*models.Teacher, error) {
	args := m.Called(ctx, telegram)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) ListActive(ctx context.Context) ([]*models.Teacher, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) ListActiveByGroup(ctx context.Context, groupNumber string) ([]*models.Teacher, error) {
	args := m.Called(ctx, groupNumber)
	return args.Get(0).([]*models.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) ListAll(ctx context.Context) ([]*models.Teacher, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepository) CreateGroup(ctx context.Context, group *models.TeacherGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockTeacherRepository) GetGroupByID(ctx context.Context, id uint) (*models.TeacherGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeacherGroup), args.Error(1)
}

func (m *MockTeacherRepository) ListGroups(ctx context.Context) ([]*models.TeacherGroup, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.TeacherGroup), args.Error(1)
}

func (m *MockTeacherRepository) ListGroupsByTeacher(ctx context.Context, teacherID uint) ([]*models.TeacherGroup, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).([]*models.TeacherGroup), args.Error(1)
}

func (m *MockTeacherRepository) UpdateGroup(ctx context.Context, group *models.TeacherGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockTeacherRepository) DeleteGroup(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLectureRepository is a mock implementation of LectureRepository
type MockLectureRepository struct {
	mock.Mock
}

func (m *MockLectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	args := m.Called(ctx, lecture)
	return args.Error(0)
}

func (m *MockLectureRepository) GetByID(ctx context.Context, id uint) (*models.Lecture, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lecture), args.Error(1)
}

func (m *MockLectureRepository) GetByNumber(ctx context.Context, number int) (*models.Lecture, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lecture), args.Error(1)
}

func (m *MockLectureRepository) GetBySecretCode(ctx context.Context, code string) (*models.Lecture, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lecture), args.Error(1)
}

func (m *MockLectureRepository) List(ctx context.Context) ([]*models.Lecture, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Lecture), args.Error(1)
}

func (m *MockLectureRepository) Update(ctx context.Context, lecture *models.Lecture) error {
	args := m.Called(ctx, lecture)
	return args.Error(0)
}

func (m *MockLectureRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) GetByID(ctx context.Context, id uint) (*models.Attendance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) GetByPair(ctx context.Context, studentID, lectureID uint) (*models.Attendance, error) {
	args := m.Called(ctx, studentID, lectureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) List(ctx context.Context) ([]*models.Attendance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) CountPresentByLecture(ctx context.Context, lectureID uint) (int, error) {
	args := m.Called(ctx, lectureID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttendanceRepository) CountPresentByStudent(ctx context.Context, studentID uint) (int, error) {
	args := m.Called(ctx, studentID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttendanceRepository) DeleteByLecture(ctx context.Context, lectureID uint) (int, error) {
	args := m.Called(ctx, lectureID)
	return args.Int(0), args.Error(1)
}

// MockHomeworkRepository is a mock implementation of HomeworkRepository
type MockHomeworkRepository struct {
	mock.Mock
}

func (m *MockHomeworkRepository) Create(ctx context.Context, homework *models.Homework) error {
	args := m.Called(ctx, homework)
	return args.Error(0)
}

func (m *MockHomeworkRepository) GetByID(ctx context.Context, id uint) (*models.Homework, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Homework), args.Error(1)
}

func (m *MockHomeworkRepository) GetByNumber(ctx context.Context, number int) (*models.Homework, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Homework), args.Error(1)
}

func (m *MockHomeworkRepository) List(ctx context.Context) ([]*models.Homework, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Homework), args.Error(1)
}

func (m *MockHomeworkRepository) Update(ctx context.Context, homework *models.Homework) error {
	args := m.Called(ctx, homework)
	return args.Error(0)
}

func (m *MockHomeworkRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.HomeworkReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uint) (*models.HomeworkReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HomeworkReview), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context) ([]*models.HomeworkReview, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.HomeworkReview), args.Error(1)
}

func (m *MockReviewRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.HomeworkReview, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.HomeworkReview), args.Error(1)
}

func (m *MockReviewRepository) ListByStudents(ctx context.Context, studentIDs []uint) ([]*models.HomeworkReview, error) {
	args := m.Called(ctx, studentIDs)
	return args.Get(0).([]*models.HomeworkReview), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.HomeworkReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) SumResultByStudent(ctx context.Context, studentID uint) (int, error) {
	args := m.Called(ctx, studentID)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) AvgAIPercentageByStudent(ctx context.Context, studentID uint) (*float64, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

// MockVariantRepository is a mock implementation of VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) Create(ctx context.Context, variant *models.StudentHomeworkVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) GetByID(ctx context.Context, id uint) (*models.StudentHomeworkVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentHomeworkVariant), args.Error(1)
}

func (m *MockVariantRepository) GetByPair(ctx context.Context, studentID, homeworkID uint) (*models.StudentHomeworkVariant, error) {
	args := m.Called(ctx, studentID, homeworkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentHomeworkVariant), args.Error(1)
}

func (m *MockVariantRepository) List(ctx context.Context) ([]*models.StudentHomeworkVariant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.StudentHomeworkVariant), args.Error(1)
}

func (m *MockVariantRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentHomeworkVariant, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.StudentHomeworkVariant), args.Error(1)
}

func (m *MockVariantRepository) ListByHomework(ctx context.Context, homeworkID uint) ([]*models.StudentHomeworkVariant, error) {
	args := m.Called(ctx, homeworkID)
	return args.Get(0).([]*models.StudentHomeworkVariant), args.Error(1)
}

func (m *MockVariantRepository) Update(ctx context.Context, variant *models.StudentHomeworkVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExamGradeRepository is a mock implementation of ExamGradeRepository
type MockExamGradeRepository struct {
	mock.Mock
}

func (m *MockExamGradeRepository) Create(ctx context.Context, grade *models.ExamGrade) error {
	args := m.Called(ctx, grade)
	return args.Error(0)
}

func (m *MockExamGradeRepository) GetByID(ctx context.Context, id uint) (*models.ExamGrade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamGrade), args.Error(1)
}

func (m *MockExamGradeRepository) List(ctx context.Context) ([]*models.ExamGrade, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ExamGrade), args.Error(1)
}

func (m *MockExamGradeRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.ExamGrade, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.ExamGrade), args.Error(1)
}

func (m *MockExamGradeRepository) Update(ctx context.Context, grade *models.ExamGrade) error {
	args := m.Called(ctx, grade)
	return args.Error(0)
}

func (m *MockExamGradeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRepository aggregates the entity mocks behind the Repository interface.
// Transaction runs the callback against the same mocks, so expectations set
// on the sub-repositories cover transactional paths too.
type MockRepository struct {
	mock.Mock
	StudentRepo    *MockStudentRepository
	TeacherRepo    *MockTeacherRepository
	LectureRepo    *MockLectureRepository
	AttendanceRepo *MockAttendanceRepository
	HomeworkRepo   *MockHomeworkRepository
	ReviewRepo     *MockReviewRepository
	VariantRepo    *MockVariantRepository
	ExamGradeRepo  *MockExamGradeRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		StudentRepo:    new(MockStudentRepository),
		TeacherRepo:    new(MockTeacherRepository),
		LectureRepo:    new(MockLectureRepository),
		AttendanceRepo: new(MockAttendanceRepository),
		HomeworkRepo:   new(MockHomeworkRepository),
		ReviewRepo:     new(MockReviewRepository),
		VariantRepo:    new(MockVariantRepository),
		ExamGradeRepo:  new(MockExamGradeRepository),
	}
}

func (m *MockRepository) Student() repositories.StudentRepository       { return m.StudentRepo }
func (m *MockRepository) Teacher() repositories.TeacherRepository       { return m.TeacherRepo }
func (m *MockRepository) Lecture() repositories.LectureRepository       { return m.LectureRepo }
func (m *MockRepository) Attendance() repositories.AttendanceRepository { return m.AttendanceRepo }
func (m *MockRepository) Homework() repositories.HomeworkRepository     { return m.HomeworkRepo }
func (m *MockRepository) Review() repositories.ReviewRepository         { return m.ReviewRepo }
func (m *MockRepository) Variant() repositories.VariantRepository       { return m.VariantRepo }
func (m *MockRepository) ExamGrade() repositories.ExamGradeRepository   { return m.ExamGradeRepo }

func (m *MockRepository) Transaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
