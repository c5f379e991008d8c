package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
)

// IsNotFoundError reports whether the error is the store's missing-row error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetByAdminKey(ctx context.Context, key string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByParticipantCode(ctx context.Context, code string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, projectID *uint) ([]*models.User, error)
}

type QuestionnaireRepository interface {
	Create(ctx context.Context, questionnaire *models.Questionnaire) error
	// GetByID loads the questionnaire with its questions and choices.
	GetByID(ctx context.Context, id uint) (*models.Questionnaire, error)
	Update(ctx context.Context, questionnaire *models.Questionnaire) error
	// Delete removes the questionnaire together with its questions and
	// choices.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, projectID *uint) ([]*models.Questionnaire, error)

	AddQuestion(ctx context.Context, question *models.Question) error
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	UpdateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error
	// ReplaceChoices swaps the full choice list of a question.
	ReplaceChoices(ctx context.Context, questionID uint, choices []models.Choice) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, projectID *uint) ([]*models.Assignment, error)
	// ListActiveByUser returns the user's active assignments.
	ListActiveByUser(ctx context.Context, userID uint) ([]*models.Assignment, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, projectID *uint) ([]*models.Task, error)
	// ListOpenByUser returns incomplete tasks, due ones first, undated last.
	ListOpenByUser(ctx context.Context, userID uint) ([]*models.Task, error)
	// ListOpenFillForm returns incomplete fill_form tasks for one user and
	// questionnaire, to be closed on submission.
	ListOpenFillForm(ctx context.Context, userID, questionnaireID uint) ([]*models.Task, error)
}

type EntryRepository interface {
	Create(ctx context.Context, entry *models.DiaryEntry) error
	List(ctx context.Context, projectID *uint) ([]*models.DiaryEntry, error)
}

// Repository aggregates all stores behind one constructor-injected handle.
type Repository interface {
	Project() ProjectRepository
	User() UserRepository
	Questionnaire() QuestionnaireRepository
	Assignment() AssignmentRepository
	Task() TaskRepository
	Entry() EntryRepository
}
