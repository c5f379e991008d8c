package models

import (
	"time"

	"gorm.io/datatypes"
)

// DiaryEntry is one submitted questionnaire instance. Answers is a JSON map
// keyed by question id; value shape depends on the question type (scalar or
// array for multi_choice).
type DiaryEntry struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	QuestionnaireID uint           `json:"questionnaire_id" gorm:"not null;index"`
	ProjectID       *uint          `json:"project_id" gorm:"index"`
	SubmittedAt     time.Time      `json:"submitted_at" gorm:"index;autoCreateTime"`
	Answers         datatypes.JSON `json:"answers" gorm:"not null"`

	User          User          `json:"-" gorm:"foreignKey:UserID"`
	Questionnaire Questionnaire `json:"-" gorm:"foreignKey:QuestionnaireID"`
}

func (DiaryEntry) TableName() string {
	return "diary_entries"
}
