package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("participant_code", "is required", nil)

	if err.Field != "participant_code" {
		t.Errorf("Expected field to be 'participant_code', got '%s'", err.Field)
	}

	expected := "validation error on field 'participant_code': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("name", "is required", nil))
	expected := "validation failed: name is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("email", "must be a valid email address", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("task_type", "must be fill_form or reminder", "task_type", "foo")

	if err.Rule != "task_type" {
		t.Errorf("Expected rule to be 'task_type', got '%s'", err.Rule)
	}
	if err.Value != "foo" {
		t.Errorf("Expected value to be 'foo', got '%v'", err.Value)
	}
}
