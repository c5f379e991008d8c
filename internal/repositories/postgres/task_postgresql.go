package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

type TaskPostgreSQL struct {
	db *gorm.DB
}

func NewTaskPostgreSQL(db *gorm.DB) repositories.TaskRepository {
	return &TaskPostgreSQL{db: db}
}

func (t TaskPostgreSQL) Create(ctx context.Context, task *models.Task) error {
	return t.db.WithContext(ctx).Create(task).Error
}

func (t TaskPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := t.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (t TaskPostgreSQL) Update(ctx context.Context, task *models.Task) error {
	return t.db.WithContext(ctx).Save(task).Error
}

func (t TaskPostgreSQL) Delete(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

func (t TaskPostgreSQL) List(ctx context.Context, projectID *uint) ([]*models.Task, error) {
	var tasks []*models.Task
	query := t.db.WithContext(ctx).Model(&models.Task{})
	if projectID != nil {
		query = query.
			Joins("JOIN users ON users.id = tasks.user_id").
			Where("users.project_id = ?", *projectID)
	}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t TaskPostgreSQL) ListOpenByUser(ctx context.Context, userID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	if err := t.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ?", userID, false).
		Order("due_at IS NULL, due_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t TaskPostgreSQL) ListOpenFillForm(ctx context.Context, userID, questionnaireID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	if err := t.db.WithContext(ctx).
		Where("user_id = ? AND questionnaire_id = ? AND task_type = ? AND is_completed = ?",
			userID, questionnaireID, models.TaskFillForm, false).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
