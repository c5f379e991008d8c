package models

import (
	"time"
)

type TaskType string

const (
	TaskFillForm TaskType = "fill_form"
	TaskReminder TaskType = "reminder"
)

func (t TaskType) Valid() bool {
	return t == TaskFillForm || t == TaskReminder
}

// Task is a scheduled item for a participant: either a pointer to a fill-form
// action (QuestionnaireID set) or a plain reminder. Reminder tasks are
// auto-completed the first time the participant fetches them.
type Task struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	UserID                uint       `json:"user_id" gorm:"not null;index" validate:"required"`
	Title                 string     `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description           *string    `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	TaskType              TaskType   `json:"task_type" gorm:"not null;size:20;index" validate:"required,oneof=fill_form reminder"`
	QuestionnaireID       *uint      `json:"questionnaire_id" gorm:"index"`
	DueAt                 *time.Time `json:"due_at" gorm:"index"`
	ReminderMinutesBefore *int       `json:"reminder_minutes_before"`
	IsCompleted           bool       `json:"is_completed" gorm:"default:false;index"`
	CompletedAt           *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TaskView is the participant-facing shape of a task. QuestionnaireName and
// AutoCompleted are computed at fetch time and never stored.
type TaskView struct {
	ID                    uint       `json:"id"`
	Title                 string     `json:"title"`
	Description           *string    `json:"description"`
	TaskType              TaskType   `json:"task_type"`
	QuestionnaireID       *uint      `json:"questionnaire_id,omitempty"`
	QuestionnaireName     string     `json:"questionnaire_name,omitempty"`
	DueAt                 *time.Time `json:"due_at,omitempty"`
	ReminderMinutesBefore *int       `json:"reminder_minutes_before,omitempty"`
	AutoCompleted         bool       `json:"auto_completed,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
