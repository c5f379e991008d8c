package engine

import (
	"sort"

	"github.com/trialworks/ediary-service/internal/models"
)

// QuestionID identifies a question within one questionnaire.
type QuestionID = uint

// Question is the engine-facing view of a provisioned question. JSON tags
// match the participant API wire shape so clients can decode directly.
type Question struct {
	ID       QuestionID          `json:"id"`
	Text     string              `json:"text"`
	Type     models.QuestionType `json:"type"`
	Required bool                `json:"required"`
	Order    int                 `json:"order"`
	Choices  []Choice            `json:"choices,omitempty"`
}

type Choice struct {
	Value string `json:"value"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// Questionnaire is the resolved, immutable definition a fill session runs
// against.
type Questionnaire struct {
	ID          uint       `json:"questionnaire_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Version     string     `json:"version"`
	Questions   []Question `json:"questions"`
}

type dependency struct {
	trigger  QuestionID
	pred     Predicate
	orphaned bool
}

// Definition is a questionnaire with its skip-logic rules resolved into an
// id-keyed dependency graph (one trigger per dependent). It is immutable
// after construction; visibility resolution is a pure function of it and an
// answer snapshot.
type Definition struct {
	questionnaireID uint
	questions       []Question
	byID            map[QuestionID]int
	deps            map[QuestionID]dependency
}

// NewDefinition sorts the questions into their base sequence (Order
// ascending, definition order for ties) and resolves the text-keyed rule
// table into id→id dependencies. A rule whose trigger text matches no
// question is kept as an orphaned dependency so the dependent stays hidden
// rather than leaking an unconditional question out of malformed data.
func NewDefinition(q Questionnaire, rules []Rule) *Definition {
	questions := make([]Question, len(q.Questions))
	copy(questions, q.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	byText := make(map[string]QuestionID, len(questions))
	byID := make(map[QuestionID]int, len(questions))
	for i, qu := range questions {
		byID[qu.ID] = i
		if _, seen := byText[qu.Text]; !seen {
			byText[qu.Text] = qu.ID
		}
	}

	deps := make(map[QuestionID]dependency)
	for _, rule := range rules {
		depID, ok := byText[rule.DependentText]
		if !ok {
			continue
		}
		trigID, ok := byText[rule.TriggerText]
		deps[depID] = dependency{trigger: trigID, pred: rule.Predicate, orphaned: !ok}
	}

	return &Definition{
		questionnaireID: q.ID,
		questions:       questions,
		byID:            byID,
		deps:            deps,
	}
}

// DefinitionFromModel adapts an admin-provisioned questionnaire into a
// Definition.
func DefinitionFromModel(m *models.Questionnaire, rules []Rule) *Definition {
	return NewDefinition(QuestionnaireFromModel(m), rules)
}

// QuestionnaireFromModel converts a stored questionnaire into the wire/engine
// shape, ordering choices by their display order.
func QuestionnaireFromModel(m *models.Questionnaire) Questionnaire {
	q := Questionnaire{
		ID:      m.ID,
		Name:    m.Name,
		Version: m.Version,
	}
	if m.Description != nil {
		q.Description = *m.Description
	}
	q.Questions = make([]Question, 0, len(m.Questions))
	for _, mq := range m.Questions {
		choices := make([]Choice, 0, len(mq.Choices))
		for _, c := range mq.Choices {
			choices = append(choices, Choice{Value: c.Value, Text: c.Text, Order: c.Order})
		}
		sort.SliceStable(choices, func(i, j int) bool { return choices[i].Order < choices[j].Order })
		q.Questions = append(q.Questions, Question{
			ID:       mq.ID,
			Text:     mq.Text,
			Type:     mq.Type,
			Required: mq.Required,
			Order:    mq.Order,
			Choices:  choices,
		})
	}
	return q
}

// QuestionnaireID returns the id of the questionnaire this definition was
// built from.
func (d *Definition) QuestionnaireID() uint {
	return d.questionnaireID
}

// Question looks up a question by id.
func (d *Definition) Question(id QuestionID) (Question, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Question{}, false
	}
	return d.questions[i], true
}

// Len returns the number of questions in the base sequence.
func (d *Definition) Len() int {
	return len(d.questions)
}
