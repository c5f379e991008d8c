package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
	"github.com/trialworks/ediary-service/internal/validator"
)

type CreateTaskRequest struct {
	UserID                uint            `json:"user_id" validate:"required"`
	Title                 string          `json:"title" validate:"required,min=1,max=200"`
	Description           *string         `json:"description" validate:"omitempty,max=1000"`
	TaskType              models.TaskType `json:"task_type" validate:"required,task_type"`
	QuestionnaireID       *uint           `json:"questionnaire_id"`
	DueAt                 *time.Time      `json:"due_at"`
	ReminderMinutesBefore *int            `json:"reminder_minutes_before" validate:"omitempty,min=0"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	DueAt       *time.Time `json:"due_at"`
	IsCompleted *bool      `json:"is_completed"`
}

// TaskService manages scheduled participant tasks. fill_form tasks must point
// at a questionnaire; reminder tasks must not.
type TaskService interface {
	Create(ctx context.Context, projectScope *uint, req *CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, projectScope *uint, id uint, req *UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, projectScope *uint, id uint) error
	List(ctx context.Context, projectScope *uint) ([]*models.Task, error)
}

type taskService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewTaskService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) TaskService {
	return &taskService{repo: repo, validator: v, logger: logger}
}

func (s *taskService) Create(ctx context.Context, projectScope *uint, req *CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	switch req.TaskType {
	case models.TaskFillForm:
		if req.QuestionnaireID == nil {
			return nil, ValidationErrors{*newFieldError("questionnaire_id", "is required for fill_form tasks")}
		}
	case models.TaskReminder:
		if req.QuestionnaireID != nil {
			return nil, ValidationErrors{*newFieldError("questionnaire_id", "must be empty for reminder tasks")}
		}
	}

	user, err := s.repo.User().GetByID(ctx, req.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := checkScope(projectScope, user.ProjectID); err != nil {
		return nil, err
	}

	if req.QuestionnaireID != nil {
		if _, err := s.repo.Questionnaire().GetByID(ctx, *req.QuestionnaireID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrQuestionnaireNotFound
			}
			return nil, fmt.Errorf("failed to get questionnaire: %w", err)
		}
	}

	task := &models.Task{
		UserID:                user.ID,
		Title:                 req.Title,
		Description:           req.Description,
		TaskType:              req.TaskType,
		QuestionnaireID:       req.QuestionnaireID,
		DueAt:                 req.DueAt,
		ReminderMinutesBefore: req.ReminderMinutesBefore,
	}
	if err := s.repo.Task().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "task_type", task.TaskType)
	return task, nil
}

func (s *taskService) Update(ctx context.Context, projectScope *uint, id uint, req *UpdateTaskRequest) (*models.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	task, err := s.getScoped(ctx, projectScope, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
		if *req.IsCompleted && task.CompletedAt == nil {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
		if !*req.IsCompleted {
			task.CompletedAt = nil
		}
	}

	if err := s.repo.Task().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, projectScope *uint, id uint) error {
	if _, err := s.getScoped(ctx, projectScope, id); err != nil {
		return err
	}
	if err := s.repo.Task().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Info("task deleted", "task_id", id)
	return nil
}

func (s *taskService) List(ctx context.Context, projectScope *uint) ([]*models.Task, error) {
	tasks, err := s.repo.Task().List(ctx, projectScope)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) getScoped(ctx context.Context, projectScope *uint, id uint) (*models.Task, error) {
	task, err := s.repo.Task().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if projectScope != nil {
		user, err := s.repo.User().GetByID(ctx, task.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get task user: %w", err)
		}
		if err := checkScope(projectScope, user.ProjectID); err != nil {
			return nil, err
		}
	}
	return task, nil
}
