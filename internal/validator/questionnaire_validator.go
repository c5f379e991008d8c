package validator

import (
	"fmt"

	apperrors "github.com/trialworks/ediary-service/internal/errors"
	"github.com/trialworks/ediary-service/internal/models"
)

// QuestionPayload is one question inside a questionnaire create/update
// request, matching the admin API questions array schema.
type QuestionPayload struct {
	Text     string              `json:"text"`
	Type     models.QuestionType `json:"type"`
	Required *bool               `json:"required"`
	Order    *int                `json:"order"`
	Choices  []ChoicePayload     `json:"choices"`
}

type ChoicePayload struct {
	Text  string `json:"text"`
	Value string `json:"value"`
	Order *int   `json:"order"`
}

// QuestionnaireValidator checks a provisioning payload before anything is
// written: a malformed questions array is a client-side validation failure
// and never reaches the store.
type QuestionnaireValidator struct{}

func NewQuestionnaireValidator() *QuestionnaireValidator {
	return &QuestionnaireValidator{}
}

// ValidateQuestions validates the questions array of a create/update
// request. Empty payloads are allowed; a questionnaire may be provisioned
// first and populated question by question.
func (v *QuestionnaireValidator) ValidateQuestions(questions []QuestionPayload) error {
	var errs apperrors.ValidationErrors

	for i, q := range questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.Text == "" {
			errs = append(errs, *apperrors.NewValidationError(field+".text", "is required", nil))
		}
		if q.Type != "" && !q.Type.Valid() {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(
				field+".type", "must be a valid question type (text, number, date, time, single_choice, multi_choice, likert)",
				"question_type", string(q.Type)))
		}
		if q.Type.IsChoice() && len(q.Choices) == 0 {
			errs = append(errs, *apperrors.NewValidationError(
				field+".choices", "choice-typed questions need at least one choice", nil))
		}
		for j, c := range q.Choices {
			cf := fmt.Sprintf("%s.choices[%d]", field, j)
			if c.Text == "" {
				errs = append(errs, *apperrors.NewValidationError(cf+".text", "is required", nil))
			}
			if c.Value == "" {
				errs = append(errs, *apperrors.NewValidationError(cf+".value", "is required", nil))
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
