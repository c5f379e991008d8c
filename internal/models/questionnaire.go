package models

import (
	"time"
)

type QuestionType string

const (
	QuestionText         QuestionType = "text"
	QuestionNumber       QuestionType = "number"
	QuestionDate         QuestionType = "date"
	QuestionTime         QuestionType = "time"
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionLikert       QuestionType = "likert"
)

// IsChoice reports whether the type carries a choice list.
func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultiChoice || t == QuestionLikert
}

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionNumber, QuestionDate, QuestionTime,
		QuestionSingleChoice, QuestionMultiChoice, QuestionLikert:
		return true
	}
	return false
}

// Questionnaire is immutable for the duration of a fill session; admins may
// version it by bumping Version and re-assigning.
type Questionnaire struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Version     string  `json:"version" gorm:"default:1.0;size:20"`
	IsActive    bool    `json:"is_active" gorm:"default:true;index"`
	ProjectID   *uint   `json:"project_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Questions []Question `json:"questions" gorm:"foreignKey:QuestionnaireID"`
}

type Question struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	QuestionnaireID uint         `json:"questionnaire_id" gorm:"not null;index"`
	Text            string       `json:"text" gorm:"not null;type:text" validate:"required"`
	Type            QuestionType `json:"type" gorm:"default:text;size:20" validate:"omitempty,oneof=text number date time single_choice multi_choice likert"`
	Required        bool         `json:"required" gorm:"default:true"`
	Order           int          `json:"order" gorm:"column:display_order;default:0"`

	Choices []Choice `json:"choices" gorm:"foreignKey:QuestionID"`
}

type Choice struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null;size:500" validate:"required"`
	Value      string `json:"value" gorm:"not null;size:200" validate:"required"`
	Order      int    `json:"order" gorm:"column:display_order;default:0"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}

func (Question) TableName() string {
	return "questions"
}

func (Choice) TableName() string {
	return "choices"
}
