package engine

import (
	"time"

	"github.com/trialworks/ediary-service/internal/models"
)

// Assignment is the participant-facing binding between a user and a resolved
// questionnaire version, as served by the participant API.
type Assignment struct {
	ID              uint          `json:"id"`
	Key             string        `json:"key"`
	QuestionnaireID uint          `json:"questionnaire_id"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Active          bool          `json:"active"`
	Questionnaire   Questionnaire `json:"questionnaire"`
}

// Task is the participant-facing view of a scheduled item. A fill_form task
// points at a questionnaire; a reminder is a terminal display item with no
// navigation behaviour.
type Task struct {
	ID                    uint            `json:"id"`
	Title                 string          `json:"title"`
	Description           string          `json:"description,omitempty"`
	Type                  models.TaskType `json:"task_type"`
	QuestionnaireID       *uint           `json:"questionnaire_id,omitempty"`
	QuestionnaireName     string          `json:"questionnaire_name,omitempty"`
	DueAt                 *time.Time      `json:"due_at,omitempty"`
	ReminderMinutesBefore *int            `json:"reminder_minutes_before,omitempty"`
	AutoCompleted         bool            `json:"auto_completed,omitempty"`
}

// ResolveActiveAssignment finds the assignment a fill_form task should open:
// the one whose questionnaire id matches the task's. Reminder tasks and tasks
// without a matching assignment resolve to nothing, and the caller must not
// start a fill flow for them.
func ResolveActiveAssignment(task Task, assignments []Assignment) (Assignment, bool) {
	if task.Type != models.TaskFillForm || task.QuestionnaireID == nil {
		return Assignment{}, false
	}
	for _, a := range assignments {
		if a.QuestionnaireID == *task.QuestionnaireID {
			return a, true
		}
	}
	return Assignment{}, false
}

// ActiveTracker remembers which task is currently driving the open fill
// session. Tracking by task identity rather than assignment lets the caller
// distinguish "continue this form" from "start this form" even when two
// tasks reference the same questionnaire.
type ActiveTracker struct {
	taskID *uint
}

func NewActiveTracker() *ActiveTracker {
	return &ActiveTracker{}
}

// Start marks the task as the one driving the open session.
func (t *ActiveTracker) Start(taskID uint) {
	id := taskID
	t.taskID = &id
}

// Clear forgets the active task, after submission or navigation away.
func (t *ActiveTracker) Clear() {
	t.taskID = nil
}

// InProgress reports whether the given task is the one currently being
// filled.
func (t *ActiveTracker) InProgress(taskID uint) bool {
	return t.taskID != nil && *t.taskID == taskID
}
