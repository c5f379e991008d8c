package models

import (
	"time"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleParticipant Role = "participant"
)

// Project scopes users, questionnaires and entries for one clinical study.
// Each project carries its own admin key; the super admin key configured on
// the server sees every project.
type Project struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	AdminKey    string  `json:"admin_key" gorm:"not null;uniqueIndex;size:64" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:ProjectID"`
}

type User struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	Email           string  `json:"email" gorm:"not null;uniqueIndex;size:255" validate:"required,email"`
	Name            string  `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	ParticipantCode *string `json:"participant_code" gorm:"uniqueIndex;size:64"`
	Role            Role    `json:"role" gorm:"default:participant;index" validate:"omitempty,oneof=admin participant"`
	IsActive        bool    `json:"is_active" gorm:"default:true"`
	ProjectID       *uint   `json:"project_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:UserID"`
	Entries     []DiaryEntry `json:"entries,omitempty" gorm:"foreignKey:UserID"`
}

func (Project) TableName() string {
	return "projects"
}

func (User) TableName() string {
	return "users"
}
