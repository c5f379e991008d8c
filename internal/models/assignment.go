package models

import (
	"time"
)

// Assignment binds one questionnaire version to one participant. Key is the
// admin-visible identifier used to reference the binding externally, distinct
// from the numeric id.
type Assignment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Key             string     `json:"key" gorm:"uniqueIndex;size:64"`
	UserID          uint       `json:"user_id" gorm:"not null;index" validate:"required"`
	QuestionnaireID uint       `json:"questionnaire_id" gorm:"not null;index" validate:"required"`
	DueAt           *time.Time `json:"due_at"`
	Active          bool       `json:"active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User          User          `json:"-" gorm:"foreignKey:UserID"`
	Questionnaire Questionnaire `json:"-" gorm:"foreignKey:QuestionnaireID"`
}

func (Assignment) TableName() string {
	return "assignments"
}
