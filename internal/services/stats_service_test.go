package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DVDemon/frieren/internal/models"
)

func TestPerHomeworkStats(t *testing.T) {
	homework := &models.Homework{ID: 1, Number: 3, VariantsCount: 5}

	t.Run("counts submitted, reviewed, pending", func(t *testing.T) {
		reviews := []*models.HomeworkReview{
			{ID: 1, StudentID: 1, Number: 3, Result: intPtr(80)},
			{ID: 2, StudentID: 2, Number: 3, Result: intPtr(55)},
			{ID: 3, StudentID: 3, Number: 3, Result: intPtr(100)},
			{ID: 4, StudentID: 4, Number: 3, Result: nil},
			{ID: 5, StudentID: 5, Number: 3, Result: nil},
			{ID: 6, StudentID: 6, Number: 4, Result: intPtr(90)},
		}

		stats := PerHomeworkStats(homework, reviews)

		assert.Equal(t, 5, stats.Submitted)
		assert.Equal(t, 3, stats.Reviewed)
		assert.Equal(t, 2, stats.Pending)
		assert.Equal(t, 60, stats.Percentage)
	})

	t.Run("zero grade counts as pending here", func(t *testing.T) {
		reviews := []*models.HomeworkReview{
			{ID: 1, StudentID: 1, Number: 3, Result: intPtr(0)},
		}

		stats := PerHomeworkStats(homework, reviews)

		assert.Equal(t, 1, stats.Submitted)
		assert.Equal(t, 0, stats.Reviewed)
		assert.Equal(t, 1, stats.Pending)
	})

	t.Run("no submissions", func(t *testing.T) {
		stats := PerHomeworkStats(homework, nil)

		assert.Equal(t, 0, stats.Submitted)
		assert.Equal(t, 0, stats.Percentage)
	})

	t.Run("nil homework", func(t *testing.T) {
		stats := PerHomeworkStats(nil, []*models.HomeworkReview{{ID: 1, Number: 3}})
		assert.Equal(t, 0, stats.Submitted)
	})
}

func TestPerStudentStats(t *testing.T) {
	student := &models.Student{ID: 5, FullName: "Test Student"}

	t.Run("denominator is the whole catalog", func(t *testing.T) {
		reviews := []*models.HomeworkReview{
			{ID: 1, StudentID: 5, Number: 1, Result: intPtr(70)},
			{ID: 2, StudentID: 5, Number: 2, Result: nil},
			{ID: 3, StudentID: 8, Number: 1, Result: intPtr(90)},
		}

		stats := PerStudentStats(student, reviews, 4)

		assert.Equal(t, 2, stats.Submitted)
		assert.Equal(t, 1, stats.Reviewed)
		assert.Equal(t, 25, stats.Percentage)
	})

	t.Run("empty catalog", func(t *testing.T) {
		stats := PerStudentStats(student, nil, 0)
		assert.Equal(t, 0, stats.Percentage)
	})
}

func TestStatsService_TeacherStats(t *testing.T) {
	ctx := context.Background()
	teacher := &models.Teacher{ID: 3, FullName: "Test Teacher", Telegram: "test_teacher"}

	t.Run("deduplicates before counting pending", func(t *testing.T) {
		repo := NewMockRepository()
		repo.TeacherRepo.On("GetActiveByID", ctx, uint(3)).Return(teacher, nil)
		repo.TeacherRepo.On("ListGroupsByTeacher", ctx, uint(3)).Return([]*models.TeacherGroup{
			{ID: 1, TeacherID: 3, GroupNumber: "AB-101"},
		}, nil)
		repo.StudentRepo.On("ListActiveByGroups", ctx, []string{"AB-101"}).Return([]*models.Student{
			{ID: 1}, {ID: 2},
		}, nil)
		// Student 1 resubmitted homework 1; the graded row wins, so the
		// pair is not pending. Student 2 has a recorded zero, which is.
		repo.ReviewRepo.On("ListByStudents", ctx, []uint{1, 2}).Return([]*models.HomeworkReview{
			{ID: 1, StudentID: 1, Number: 1, Result: nil},
			{ID: 2, StudentID: 1, Number: 1, Result: intPtr(75)},
			{ID: 3, StudentID: 2, Number: 1, Result: intPtr(0)},
		}, nil)

		service := NewStatsService(repo, testSlog())
		stats, err := service.TeacherStats(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, 2, stats.TotalReviews)
		assert.Equal(t, 1, stats.PendingReviews)
	})

	t.Run("teacher without groups", func(t *testing.T) {
		repo := NewMockRepository()
		repo.TeacherRepo.On("GetActiveByID", ctx, uint(3)).Return(teacher, nil)
		repo.TeacherRepo.On("ListGroupsByTeacher", ctx, uint(3)).Return([]*models.TeacherGroup{}, nil)

		service := NewStatsService(repo, testSlog())
		stats, err := service.TeacherStats(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, 0, stats.TotalReviews)
	})
}
