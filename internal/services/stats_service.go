package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
)

// PerHomeworkStats summarizes submissions for one assignment. Submitted is
// every review carrying the homework's number; reviewed is the subset with a
// result strictly above 0, so a recorded 0 counts as submitted-but-pending.
func PerHomeworkStats(homework *models.Homework, reviews []*models.HomeworkReview) models.HomeworkStats {
	stats := models.HomeworkStats{}
	if homework == nil {
		return stats
	}
	stats.Homework = *homework

	for _, review := range reviews {
		if review == nil || review.Number != homework.Number {
			continue
		}
		stats.Submitted++
		if review.Result != nil && *review.Result > 0 {
			stats.Reviewed++
		}
	}

	stats.Pending = stats.Submitted - stats.Reviewed
	stats.Percentage = roundPercentage(stats.Reviewed, stats.Submitted)
	return stats
}

// PerStudentStats summarizes one student's progress over the whole homework
// catalog: the denominator is the catalog size, not the count of assignments
// actually given to the student.
func PerStudentStats(student *models.Student, reviews []*models.HomeworkReview, totalHomeworkCount int) models.StudentHomeworkStats {
	stats := models.StudentHomeworkStats{}
	if student == nil {
		return stats
	}
	stats.Student = *student

	for _, review := range reviews {
		if review == nil || review.StudentID != student.ID {
			continue
		}
		stats.Submitted++
		if review.Result != nil && *review.Result > 0 {
			stats.Reviewed++
		}
	}

	stats.Percentage = roundPercentage(stats.Reviewed, totalHomeworkCount)
	return stats
}

// StatsService computes dashboard aggregates. Everything here is derived from
// fresh reads on each call; no aggregate is cached.
type StatsService interface {
	HomeworkStats(ctx context.Context) ([]*models.HomeworkStats, error)
	StudentHomeworkStats(ctx context.Context) ([]*models.StudentHomeworkStats, error)
	StudentStandings(ctx context.Context) ([]*models.StudentStats, error)
	TeacherStats(ctx context.Context, teacherID uint) (*models.TeacherStats, error)
}

type statsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger) StatsService {
	return &statsService{
		repo:   repo,
		logger: logger,
	}
}

func (s *statsService) HomeworkStats(ctx context.Context) ([]*models.HomeworkStats, error) {
	homeworkList, err := s.repo.Homework().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list homework: %w", err)
	}
	reviews, err := s.repo.Review().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	stats := make([]*models.HomeworkStats, 0, len(homeworkList))
	for _, hw := range homeworkList {
		hwStats := PerHomeworkStats(hw, reviews)
		stats = append(stats, &hwStats)
	}
	return stats, nil
}

func (s *statsService) StudentHomeworkStats(ctx context.Context) ([]*models.StudentHomeworkStats, error) {
	students, err := s.repo.Student().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	reviews, err := s.repo.Review().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	totalHomework, err := s.repo.Homework().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count homework: %w", err)
	}

	stats := make([]*models.StudentHomeworkStats, 0, len(students))
	for _, student := range students {
		studentStats := PerStudentStats(student, reviews, totalHomework)
		stats = append(stats, &studentStats)
	}
	return stats, nil
}

func (s *statsService) StudentStandings(ctx context.Context) ([]*models.StudentStats, error) {
	students, err := s.repo.Student().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	standings := make([]*models.StudentStats, 0, len(students))
	for _, student := range students {
		totalScore, err := s.repo.Review().SumResultByStudent(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum results for student %d: %w", student.ID, err)
		}
		avgAI, err := s.repo.Review().AvgAIPercentageByStudent(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to average ai percentage for student %d: %w", student.ID, err)
		}
		attended, err := s.repo.Attendance().CountPresentByStudent(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count attendance for student %d: %w", student.ID, err)
		}

		standings = append(standings, &models.StudentStats{
			Student:            *student,
			TotalHomeworkScore: totalScore,
			AIPercentage:       avgAI,
			AttendanceCount:    attended,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		return standings[i].Student.FullName < standings[j].Student.FullName
	})
	return standings, nil
}

// TeacherStats counts the deduplicated review workload over the students in
// the teacher's groups.
func (s *statsService) TeacherStats(ctx context.Context, teacherID uint) (*models.TeacherStats, error) {
	if _, err := s.repo.Teacher().GetActiveByID(ctx, teacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to resolve teacher: %w", err)
	}

	groups, err := s.repo.Teacher().ListGroupsByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher groups: %w", err)
	}

	stats := &models.TeacherStats{TeacherID: teacherID}
	if len(groups) == 0 {
		return stats, nil
	}

	groupNumbers := make([]string, 0, len(groups))
	for _, g := range groups {
		groupNumbers = append(groupNumbers, g.GroupNumber)
	}

	students, err := s.repo.Student().ListActiveByGroups(ctx, groupNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to list group students: %w", err)
	}
	if len(students) == 0 {
		return stats, nil
	}

	studentIDs := make([]uint, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}

	reviews, err := s.repo.Review().ListByStudents(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list group reviews: %w", err)
	}

	deduplicated := DeduplicateReviews(reviews)
	stats.TotalReviews = len(deduplicated)
	for _, review := range deduplicated {
		if review.Result == nil || *review.Result == 0 {
			stats.PendingReviews++
		}
	}
	return stats, nil
}
