package services

import (
	"errors"

	apperrors "github.com/trialworks/ediary-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Domain specific errors
	ErrProjectNotFound       = errors.New("project not found")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrInvalidAdminKey       = errors.New("invalid admin key")
	ErrProjectScopeDenied    = errors.New("project not accessible with this admin key")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func newFieldError(field, message string) *apperrors.ValidationError {
	return apperrors.NewValidationError(field, message, nil)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrQuestionnaireNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrTaskNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidAdminKey) ||
		errors.Is(err, ErrProjectScopeDenied)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}
