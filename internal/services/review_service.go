package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

// ReviewService manages homework submissions and their grading lifecycle.
// List-style reads return one row per (student, homework number) after
// deduplication; ListByStudent is the only read exposing raw history.
type ReviewService interface {
	Create(ctx context.Context, req *CreateReviewRequest) (*models.HomeworkReview, error)
	GetByID(ctx context.Context, id uint) (*models.HomeworkReview, error)
	List(ctx context.Context) ([]*models.ReviewRecord, error)
	ListPending(ctx context.Context) ([]*models.ReviewRecord, error)
	ListPendingByTeacher(ctx context.Context, teacherID uint) ([]*models.ReviewRecord, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.HomeworkReview, error)
	ListByTelegram(ctx context.Context, telegram string) ([]*models.ReviewRecord, error)
	Update(ctx context.Context, id uint, req *UpdateReviewRequest) (*models.HomeworkReview, error)
	Delete(ctx context.Context, id uint) error
}

type CreateReviewRequest struct {
	StudentID    uint     `json:"student_id" validate:"required"`
	Number       int      `json:"number" validate:"required,min=1"`
	SendDate     *string  `json:"send_date" validate:"omitempty,datetime=2006-01-02"`
	URL          string   `json:"url" validate:"omitempty,url,max=500"`
	Result       *int     `json:"result" validate:"omitempty,min=0,max=100"`
	Comments     string   `json:"comments"`
	AIPercentage *float64 `json:"ai_percentage" validate:"omitempty,min=0,max=100"`
}

// UpdateReviewRequest carries partial updates; nil fields are left untouched.
type UpdateReviewRequest struct {
	SendDate     *string  `json:"send_date" validate:"omitempty,datetime=2006-01-02"`
	ReviewDate   *string  `json:"review_date" validate:"omitempty,datetime=2006-01-02"`
	URL          *string  `json:"url" validate:"omitempty,url,max=500"`
	Result       *int     `json:"result" validate:"omitempty,min=0,max=100"`
	Comments     *string  `json:"comments"`
	AIPercentage *float64 `json:"ai_percentage" validate:"omitempty,min=0,max=100"`
}

type reviewService struct {
	repo          repositories.Repository
	notifications NotificationEventService
	logger        *slog.Logger
	validator     *utils.Validator
}

func NewReviewService(
	repo repositories.Repository,
	notifications NotificationEventService,
	logger *slog.Logger,
	validator *utils.Validator,
) ReviewService {
	return &reviewService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		validator:     validator,
	}
}

// ===== WRITES =====

func (s *reviewService) Create(ctx context.Context, req *CreateReviewRequest) (*models.HomeworkReview, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Student().GetActiveByID(ctx, req.StudentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}
	if _, err := s.repo.Homework().GetByNumber(ctx, req.Number); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrHomeworkNotFound
		}
		return nil, fmt.Errorf("failed to resolve homework: %w", err)
	}

	review := &models.HomeworkReview{
		StudentID:    req.StudentID,
		Number:       req.Number,
		SendDate:     req.SendDate,
		URL:          req.URL,
		Result:       req.Result,
		Comments:     req.Comments,
		AIPercentage: req.AIPercentage,
	}
	if review.SendDate == nil {
		today := todayISO()
		review.SendDate = &today
	}
	if review.Result != nil {
		today := todayISO()
		review.ReviewDate = &today
	}

	if err := s.repo.Review().Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.notifications.NotifyReviewSubmitted(ctx, review); err != nil {
		s.logger.Warn("Failed to publish review submitted event",
			"review_id", review.ID, "error", err)
	}

	return review, nil
}

func (s *reviewService) Update(ctx context.Context, id uint, req *UpdateReviewRequest) (*models.HomeworkReview, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	review, err := s.repo.Review().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	gradedNow := req.Result != nil && review.Result == nil

	if req.SendDate != nil {
		review.SendDate = req.SendDate
	}
	if req.ReviewDate != nil {
		review.ReviewDate = req.ReviewDate
	}
	if req.URL != nil {
		review.URL = *req.URL
	}
	if req.Result != nil {
		review.Result = req.Result
	}
	if req.Comments != nil {
		review.Comments = *req.Comments
	}
	if req.AIPercentage != nil {
		review.AIPercentage = req.AIPercentage
	}

	// The review date marks when the grade was first recorded. It is set
	// automatically and never moved by later edits to the same grade.
	if gradedNow && review.ReviewDate == nil {
		today := todayISO()
		review.ReviewDate = &today
	}

	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if gradedNow {
		if err := s.notifications.NotifyReviewGraded(ctx, review); err != nil {
			s.logger.Warn("Failed to publish review graded event",
				"review_id", review.ID, "error", err)
		}
	}

	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id uint) error {
	review, err := s.repo.Review().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to load review: %w", err)
	}

	if review.LocalDirectory != nil && *review.LocalDirectory != "" {
		if err := os.RemoveAll(*review.LocalDirectory); err != nil {
			s.logger.Warn("Failed to remove local clone",
				"review_id", id, "directory", *review.LocalDirectory, "error", err)
		}
	}

	if err := s.repo.Review().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// ===== READS =====

func (s *reviewService) GetByID(ctx context.Context, id uint) (*models.HomeworkReview, error) {
	review, err := s.repo.Review().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return review, nil
}

func (s *reviewService) List(ctx context.Context) ([]*models.ReviewRecord, error) {
	reviews, err := s.repo.Review().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return s.buildRecords(ctx, DeduplicateReviews(reviews))
}

func (s *reviewService) ListPending(ctx context.Context) ([]*models.ReviewRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterPending(records), nil
}

func (s *reviewService) ListPendingByTeacher(ctx context.Context, teacherID uint) ([]*models.ReviewRecord, error) {
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
	if len(groups) == 0 {
		return []*models.ReviewRecord{}, nil
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
		return []*models.ReviewRecord{}, nil
	}

	studentIDs := make([]uint, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}

	reviews, err := s.repo.Review().ListByStudents(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list group reviews: %w", err)
	}

	records, err := s.buildRecords(ctx, DeduplicateReviews(reviews))
	if err != nil {
		return nil, err
	}
	return filterPending(records), nil
}

func (s *reviewService) ListByStudent(ctx context.Context, studentID uint) ([]*models.HomeworkReview, error) {
	if _, err := s.repo.Student().GetActiveByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}

	reviews, err := s.repo.Review().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list student reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) ListByTelegram(ctx context.Context, telegram string) ([]*models.ReviewRecord, error) {
	student, err := s.repo.Student().GetActiveByTelegram(ctx, telegram)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to resolve student by telegram: %w", err)
	}

	reviews, err := s.repo.Review().ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list student reviews: %w", err)
	}
	return s.buildRecords(ctx, DeduplicateReviews(reviews))
}

// buildRecords joins deduplicated reviews with their student, assigned
// variant number, and overdue flag. Reviews of soft-deleted students are
// dropped from the view.
func (s *reviewService) buildRecords(ctx context.Context, reviews []*models.HomeworkReview) ([]*models.ReviewRecord, error) {
	students, err := s.repo.Student().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	studentsByID := make(map[uint]*models.Student, len(students))
	for _, st := range students {
		studentsByID[st.ID] = st
	}

	homeworkList, err := s.repo.Homework().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list homework: %w", err)
	}
	homeworkByNumber := make(map[int]*models.Homework, len(homeworkList))
	for _, hw := range homeworkList {
		homeworkByNumber[hw.Number] = hw
	}

	variants, err := s.repo.Variant().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	type pairKey struct {
		studentID  uint
		homeworkID uint
	}
	variantByPair := make(map[pairKey]int, len(variants))
	for _, v := range variants {
		variantByPair[pairKey{v.StudentID, v.HomeworkID}] = v.VariantNumber
	}

	records := make([]*models.ReviewRecord, 0, len(reviews))
	for _, review := range reviews {
		student, ok := studentsByID[review.StudentID]
		if !ok || student.IsDeleted {
			continue
		}

		record := &models.ReviewRecord{
			ID:             review.ID,
			Number:         review.Number,
			SendDate:       review.SendDate,
			ReviewDate:     review.ReviewDate,
			URL:            review.URL,
			Result:         review.Result,
			Comments:       review.Comments,
			LocalDirectory: review.LocalDirectory,
			AIPercentage:   review.AIPercentage,
			Student:        *student,
		}

		if hw, ok := homeworkByNumber[review.Number]; ok {
			record.Overdue = IsOverdue(review, hw)
			if variantNumber, ok := variantByPair[pairKey{review.StudentID, hw.ID}]; ok {
				record.VariantNumber = &variantNumber
			}
		}

		records = append(records, record)
	}
	return records, nil
}

// filterPending keeps deduplicated rows still waiting for a meaningful grade.
// A recorded 0 stays pending here, matching the per-homework statistic.
func filterPending(records []*models.ReviewRecord) []*models.ReviewRecord {
	pending := make([]*models.ReviewRecord, 0, len(records))
	for _, record := range records {
		if record.Result == nil || *record.Result == 0 {
			pending = append(pending, record)
		}
	}
	return pending
}
