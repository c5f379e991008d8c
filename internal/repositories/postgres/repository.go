package postgres

import (
	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/repositories"
)

type repository struct {
	project       repositories.ProjectRepository
	user          repositories.UserRepository
	questionnaire repositories.QuestionnaireRepository
	assignment    repositories.AssignmentRepository
	task          repositories.TaskRepository
	entry         repositories.EntryRepository
}

// NewRepository wires all PostgreSQL-backed stores.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		project:       NewProjectPostgreSQL(db),
		user:          NewUserPostgreSQL(db),
		questionnaire: NewQuestionnairePostgreSQL(db),
		assignment:    NewAssignmentPostgreSQL(db),
		task:          NewTaskPostgreSQL(db),
		entry:         NewEntryPostgreSQL(db),
	}
}

func (r *repository) Project() repositories.ProjectRepository             { return r.project }
func (r *repository) User() repositories.UserRepository                   { return r.user }
func (r *repository) Questionnaire() repositories.QuestionnaireRepository { return r.questionnaire }
func (r *repository) Assignment() repositories.AssignmentRepository       { return r.assignment }
func (r *repository) Task() repositories.TaskRepository                   { return r.task }
func (r *repository) Entry() repositories.EntryRepository                 { return r.entry }
