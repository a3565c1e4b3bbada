package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("variant_number", "must not exceed the homework's variant count", 7)

	if err.Field != "variant_number" {
		t.Errorf("Expected field to be 'variant_number', got '%s'", err.Field)
	}

	if err.Message != "must not exceed the homework's variant count" {
		t.Errorf("Unexpected message: '%s'", err.Message)
	}

	if err.Value != 7 {
		t.Errorf("Expected value to be 7, got '%v'", err.Value)
	}

	expected := "validation error on field 'variant_number': must not exceed the homework's variant count"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("due_date", "is required", nil))
	expected := "validation failed: due_date is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("number", "must be at least 1", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("telegram", "is required", "required", "")

	if err.Rule != "required" {
		t.Errorf("Expected rule to be 'required', got '%s'", err.Rule)
	}

	if err.Field != "telegram" {
		t.Errorf("Expected field to be 'telegram', got '%s'", err.Field)
	}
}
