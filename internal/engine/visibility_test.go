package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialworks/ediary-service/internal/models"
)

func ringQuestionnaire() Questionnaire {
	return Questionnaire{
		ID:      7,
		Name:    "Daily ring diary",
		Version: "1.0",
		Questions: []Question{
			{
				ID: 1, Text: "Did you insert the vaginal ring today?",
				Type: models.QuestionSingleChoice, Required: true, Order: 1,
				Choices: []Choice{
					{Value: "yes_continuous", Text: "Yes, continuously", Order: 1},
					{Value: "yes_interrupted", Text: "Yes, with interruptions", Order: 2},
					{Value: "no", Text: "No", Order: 3},
				},
			},
			{
				ID: 2, Text: "Why was the ring not inserted?",
				Type: models.QuestionText, Required: true, Order: 2,
			},
			{
				ID: 3, Text: "Which symptoms did you experience today?",
				Type: models.QuestionMultiChoice, Required: false, Order: 3,
				Choices: []Choice{
					{Value: "headache", Text: "Headache", Order: 1},
					{Value: "nausea", Text: "Nausea", Order: 2},
					{Value: "other", Text: "Other", Order: 3},
				},
			},
			{
				ID: 4, Text: "Please describe the other symptoms",
				Type: models.QuestionText, Required: true, Order: 4,
			},
		},
	}
}

func ringDefinition(t *testing.T) *Definition {
	t.Helper()
	return NewDefinition(ringQuestionnaire(), DefaultRules())
}

func TestVisible_DependentHiddenWithoutTriggerAnswer(t *testing.T) {
	def := ringDefinition(t)
	answers := NewAnswerStore()

	assert.Equal(t, []QuestionID{1, 3}, def.Visible(answers))
}

func TestVisible_TriggerReveals(t *testing.T) {
	def := ringDefinition(t)
	answers := NewAnswerStore()

	answers.Set(1, "no")
	assert.Equal(t, []QuestionID{1, 2, 3}, def.Visible(answers))

	answers.Set(1, "yes_continuous")
	assert.Equal(t, []QuestionID{1, 3}, def.Visible(answers))
}

func TestVisible_Idempotent(t *testing.T) {
	def := ringDefinition(t)
	answers := NewAnswerStore()
	answers.Set(1, "no")
	answers.Set(3, []string{"other"})

	first := def.Visible(answers)
	second := def.Visible(answers)
	assert.Equal(t, first, second)
	assert.Equal(t, []QuestionID{1, 2, 3, 4}, first)
}

func TestVisible_IncludesPredicate(t *testing.T) {
	def := ringDefinition(t)
	answers := NewAnswerStore()

	// Explicitly empty selection is present but reveals nothing.
	answers.Set(3, []string{})
	assert.NotContains(t, def.Visible(answers), QuestionID(4))

	answers.Set(3, []string{"headache"})
	assert.NotContains(t, def.Visible(answers), QuestionID(4))

	answers.Set(3, []string{"headache", "other"})
	assert.Contains(t, def.Visible(answers), QuestionID(4))

	// Values decoded from JSON arrive as []any.
	answers.Set(3, []any{"other"})
	assert.Contains(t, def.Visible(answers), QuestionID(4))
}

func TestVisible_OrphanedTriggerFailsClosed(t *testing.T) {
	q := ringQuestionnaire()
	// Reword the trigger so the rule table no longer finds it.
	q.Questions[0].Text = "Ring inserted?"
	def := NewDefinition(q, DefaultRules())

	answers := NewAnswerStore()
	answers.Set(1, "no")

	assert.NotContains(t, def.Visible(answers), QuestionID(2),
		"dependent of a missing trigger must stay hidden")
}

func TestNewDefinition_SortsByOrderStable(t *testing.T) {
	q := Questionnaire{
		ID: 1,
		Questions: []Question{
			{ID: 10, Text: "b", Order: 2},
			{ID: 11, Text: "a", Order: 1},
			{ID: 12, Text: "c", Order: 2},
			{ID: 13, Text: "d", Order: 0},
		},
	}
	def := NewDefinition(q, nil)

	require.Equal(t, 4, def.Len())
	assert.Equal(t, []QuestionID{13, 11, 10, 12}, def.Visible(NewAnswerStore()))
}
