package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/DVDemon/frieren/internal/errors"
)

// Validator wraps the struct validator with the custom rules registered.
type Validator struct {
	structValidator *validator.Validate
}

// NewValidator creates the shared validator instance
func NewValidator() *Validator {
	structValidator := validator.New()
	RegisterCustomValidators(structValidator)
	return &Validator{structValidator: structValidator}
}

// ValidateStruct validates struct tags, converting failures into the shared
// field-level error type.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}
	if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
		return converted
	}
	return err
}

var groupNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]{2,16}$`)

// Custom validation functions

// ValidateGroupNumber accepts short alphanumeric group codes such as "M8O-213B".
func ValidateGroupNumber(fl validator.FieldLevel) bool {
	return groupNumberPattern.MatchString(fl.Field().String())
}

// ValidateTelegramHandle accepts Telegram usernames with or without a leading @.
func ValidateTelegramHandle(fl validator.FieldLevel) bool {
	value := strings.TrimPrefix(fl.Field().String(), "@")
	if len(value) < 2 || len(value) > 64 {
		return false
	}
	for _, r := range value {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("group_number", ValidateGroupNumber)
	validate.RegisterValidation("telegram_handle", ValidateTelegramHandle)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
