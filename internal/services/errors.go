package services

import (
	"errors"
	"fmt"

	apperrors "github.com/DVDemon/frieren/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Student specific errors
	ErrStudentNotFound  = errors.New("student not found")
	ErrStudentDeleted   = errors.New("student is deleted")
	ErrDuplicateStudent = errors.New("student with this telegram already exists")

	// Teacher specific errors
	ErrTeacherNotFound      = errors.New("teacher not found")
	ErrTeacherGroupNotFound = errors.New("teacher group assignment not found")

	// Lecture specific errors
	ErrLectureNotFound    = errors.New("lecture not found")
	ErrLectureFull        = errors.New("lecture has reached its attendance limit")
	ErrInvalidSecretCode  = errors.New("invalid lecture secret code")
	ErrAttendanceNotOpen  = errors.New("attendance window is not open for this lecture")
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// Homework specific errors
	ErrHomeworkNotFound = errors.New("homework not found")
	ErrReviewNotFound   = errors.New("homework review not found")

	// Variant specific errors
	ErrVariantNotFound   = errors.New("variant assignment not found")
	ErrVariantOutOfRange = errors.New("variant number is out of range for this homework")

	// Exam specific errors
	ErrExamGradeNotFound = errors.New("exam grade not found")
	ErrDocumentNotFound  = errors.New("exam document not found")

	// AI review errors
	ErrRepositoryNotCloned  = errors.New("repository has not been downloaded for this review")
	ErrAIServiceUnavailable = errors.New("AI review service is unavailable")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrTeacherNotFound) ||
		errors.Is(err, ErrTeacherGroupNotFound) ||
		errors.Is(err, ErrLectureNotFound) ||
		errors.Is(err, ErrAttendanceNotFound) ||
		errors.Is(err, ErrHomeworkNotFound) ||
		errors.Is(err, ErrReviewNotFound) ||
		errors.Is(err, ErrVariantNotFound) ||
		errors.Is(err, ErrExamGradeNotFound) ||
		errors.Is(err, ErrDocumentNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrVariantOutOfRange) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDuplicateStudent) ||
		errors.Is(err, ErrLectureFull)
}
