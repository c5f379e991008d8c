package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventEntrySubmitted EventType = "entry.submitted"
	EventTaskCompleted  EventType = "task.completed"
)

// DiaryEvent is the envelope every published event shares.
type DiaryEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// EntrySubmittedEvent is emitted when a participant's diary entry is stored.
type EntrySubmittedEvent struct {
	EntryID         uint      `json:"entry_id"`
	UserID          uint      `json:"user_id"`
	QuestionnaireID uint      `json:"questionnaire_id"`
	ProjectID       *uint     `json:"project_id,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// TaskCompletedEvent is emitted when a task is closed, either by submission
// or by reminder auto-completion.
type TaskCompletedEvent struct {
	TaskID        uint   `json:"task_id"`
	UserID        uint   `json:"user_id"`
	TaskType      string `json:"task_type"`
	AutoCompleted bool   `json:"auto_completed"`
}

// NewDiaryEvent wraps payload data in the shared envelope.
func NewDiaryEvent(eventType EventType, data any) *DiaryEvent {
	return &DiaryEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "ediary-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
