package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DVDemon/frieren/internal/cache"
	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
	"github.com/DVDemon/frieren/internal/utils"
)

const (
	secretCodeCachePrefix = "lecture:secret:"
	secretCodeCacheTTL    = 5 * time.Minute
)

// CapacityOf derives the fill state of a lecture from its limit and the
// current present-count. A nil MaxStudent means unlimited capacity. The
// remaining-slot count is clamped at 0 even when attendance already exceeds
// the limit.
func CapacityOf(lecture *models.Lecture, currentAttendance int) models.LectureCapacity {
	capacity := models.LectureCapacity{
		CurrentAttendance: currentAttendance,
		CanAttend:         true,
	}
	if lecture == nil {
		return capacity
	}

	capacity.LectureID = lecture.ID
	capacity.LectureNumber = lecture.Number
	capacity.LectureTopic = lecture.Topic
	capacity.MaxStudent = lecture.MaxStudent
	capacity.GithubExample = lecture.GithubExample
	capacity.StartTime = lecture.StartTime

	if lecture.MaxStudent == nil {
		return capacity
	}

	remaining := *lecture.MaxStudent - currentAttendance
	if remaining < 0 {
		remaining = 0
	}
	capacity.RemainingSlots = &remaining
	capacity.IsFull = currentAttendance >= *lecture.MaxStudent
	capacity.CanAttend = !capacity.IsFull
	return capacity
}

// LectureService manages the lecture catalog. Secret-code lookups go through
// the redis cache; every mutation invalidates the cached codes.
type LectureService interface {
	Create(ctx context.Context, req *CreateLectureRequest) (*models.Lecture, error)
	GetByID(ctx context.Context, id uint) (*models.Lecture, error)
	GetBySecretCode(ctx context.Context, code string) (*models.Lecture, error)
	List(ctx context.Context) ([]*models.Lecture, error)
	Update(ctx context.Context, id uint, req *UpdateLectureRequest) (*models.Lecture, error)
	Delete(ctx context.Context, id uint) error

	Capacity(ctx context.Context, number int) (*models.LectureCapacity, error)
	UpdateCapacity(ctx context.Context, number int, maxStudent *int) (*models.LectureCapacity, error)
}

type CreateLectureRequest struct {
	Number        int     `json:"number" validate:"required,min=1"`
	Topic         string  `json:"topic" validate:"required,min=1,max=300"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	SecretCode    *string `json:"secret_code" validate:"omitempty,min=1,max=100"`
	MaxStudent    *int    `json:"max_student" validate:"omitempty,min=1"`
	GithubExample *string `json:"github_example" validate:"omitempty,url,max=500"`
}

type UpdateLectureRequest struct {
	Number        *int    `json:"number" validate:"omitempty,min=1"`
	Topic         *string `json:"topic" validate:"omitempty,min=1,max=300"`
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime     *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	SecretCode    *string `json:"secret_code" validate:"omitempty,min=1,max=100"`
	MaxStudent    *int    `json:"max_student" validate:"omitempty,min=1"`
	GithubExample *string `json:"github_example" validate:"omitempty,url,max=500"`
}

type lectureService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewLectureService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) LectureService {
	return &lectureService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *lectureService) Create(ctx context.Context, req *CreateLectureRequest) (*models.Lecture, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	lecture := &models.Lecture{
		Number:        req.Number,
		Topic:         req.Topic,
		Date:          req.Date,
		StartTime:     req.StartTime,
		SecretCode:    req.SecretCode,
		MaxStudent:    req.MaxStudent,
		GithubExample: req.GithubExample,
	}
	if err := s.repo.Lecture().Create(ctx, lecture); err != nil {
		return nil, fmt.Errorf("failed to create lecture: %w", err)
	}
	return lecture, nil
}

func (s *lectureService) GetByID(ctx context.Context, id uint) (*models.Lecture, error) {
	lecture, err := s.repo.Lecture().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLectureNotFound
		}
		return nil, fmt.Errorf("failed to load lecture: %w", err)
	}
	return lecture, nil
}

func (s *lectureService) GetBySecretCode(ctx context.Context, code string) (*models.Lecture, error) {
	cacheKey := secretCodeCachePrefix + code

	var cached models.Lecture
	err := s.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Secret code cache read failed", "error", err)
	}

	lecture, err := s.repo.Lecture().GetBySecretCode(ctx, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidSecretCode
		}
		return nil, fmt.Errorf("failed to look up secret code: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, lecture, secretCodeCacheTTL); err != nil {
		s.logger.Warn("Secret code cache write failed", "error", err)
	}
	return lecture, nil
}

func (s *lectureService) List(ctx context.Context) ([]*models.Lecture, error) {
	lectures, err := s.repo.Lecture().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	return lectures, nil
}

func (s *lectureService) Update(ctx context.Context, id uint, req *UpdateLectureRequest) (*models.Lecture, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	lecture, err := s.repo.Lecture().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLectureNotFound
		}
		return nil, fmt.Errorf("failed to load lecture: %w", err)
	}

	if req.Number != nil {
		lecture.Number = *req.Number
	}
	if req.Topic != nil {
		lecture.Topic = *req.Topic
	}
	if req.Date != nil {
		lecture.Date = *req.Date
	}
	if req.StartTime != nil {
		lecture.StartTime = req.StartTime
	}
	if req.SecretCode != nil {
		lecture.SecretCode = req.SecretCode
	}
	if req.MaxStudent != nil {
		lecture.MaxStudent = req.MaxStudent
	}
	if req.GithubExample != nil {
		lecture.GithubExample = req.GithubExample
	}

	if err := s.repo.Lecture().Update(ctx, lecture); err != nil {
		return nil, fmt.Errorf("failed to update lecture: %w", err)
	}
	s.invalidateSecretCodes(ctx)
	return lecture, nil
}

// Delete removes a lecture and its attendance rows.
func (s *lectureService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Lecture().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLectureNotFound
		}
		return fmt.Errorf("failed to load lecture: %w", err)
	}

	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		removed, err := tx.Attendance().DeleteByLecture(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete lecture attendance: %w", err)
		}
		if removed > 0 {
			s.logger.Info("Removed attendance with lecture", "lecture_id", id, "rows", removed)
		}
		return tx.Lecture().Delete(ctx, id)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLectureNotFound
		}
		return fmt.Errorf("failed to delete lecture: %w", err)
	}
	s.invalidateSecretCodes(ctx)
	return nil
}

func (s *lectureService) Capacity(ctx context.Context, number int) (*models.LectureCapacity, error) {
	lecture, err := s.repo.Lecture().GetByNumber(ctx, number)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLectureNotFound
		}
		return nil, fmt.Errorf("failed to load lecture: %w", err)
	}

	current, err := s.repo.Attendance().CountPresentByLecture(ctx, lecture.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	capacity := CapacityOf(lecture, current)
	return &capacity, nil
}

// UpdateCapacity sets or clears max_student for the lecture with the given
// number and returns the freshly derived fill state.
func (s *lectureService) UpdateCapacity(ctx context.Context, number int, maxStudent *int) (*models.LectureCapacity, error) {
	if maxStudent != nil && *maxStudent < 1 {
		return nil, NewValidationError("max_student", "must be at least 1", *maxStudent)
	}

	lecture, err := s.repo.Lecture().GetByNumber(ctx, number)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLectureNotFound
		}
		return nil, fmt.Errorf("failed to load lecture: %w", err)
	}

	lecture.MaxStudent = maxStudent
	if err := s.repo.Lecture().Update(ctx, lecture); err != nil {
		return nil, fmt.Errorf("failed to update lecture capacity: %w", err)
	}
	s.invalidateSecretCodes(ctx)

	current, err := s.repo.Attendance().CountPresentByLecture(ctx, lecture.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}
	capacity := CapacityOf(lecture, current)
	return &capacity, nil
}

func (s *lectureService) invalidateSecretCodes(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, secretCodeCachePrefix+"*"); err != nil {
		s.logger.Warn("Secret code cache invalidation failed", "error", err)
	}
}
