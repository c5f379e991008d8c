package validator

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/trialworks/ediary-service/internal/errors"
	"github.com/trialworks/ediary-service/internal/utils"
)

// Validator combines struct-tag validation with the questionnaire payload
// validator used by the provisioning endpoints.
type Validator struct {
	structValidator        *validator.Validate
	questionnaireValidator *QuestionnaireValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	utils.RegisterCustomValidators(structValidator)

	return &Validator{
		structValidator:        structValidator,
		questionnaireValidator: NewQuestionnaireValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate runs struct validation and converts the result to the shared
// validation error type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

// Questionnaire returns the questionnaire payload validator
func (v *Validator) Questionnaire() *QuestionnaireValidator {
	return v.questionnaireValidator
}
