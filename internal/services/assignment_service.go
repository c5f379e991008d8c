package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
	"github.com/trialworks/ediary-service/internal/validator"
)

type CreateAssignmentRequest struct {
	UserID          uint       `json:"user_id" validate:"required"`
	QuestionnaireID uint       `json:"questionnaire_id" validate:"required"`
	DueAt           *time.Time `json:"due_at"`
}

// AssignmentService binds questionnaires to participants.
type AssignmentService interface {
	Create(ctx context.Context, projectScope *uint, req *CreateAssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, projectScope *uint, id uint) error
	List(ctx context.Context, projectScope *uint) ([]*models.Assignment, error)
}

type assignmentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewAssignmentService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) AssignmentService {
	return &assignmentService{repo: repo, validator: v, logger: logger}
}

func (s *assignmentService) Create(ctx context.Context, projectScope *uint, req *CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
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

	questionnaire, err := s.repo.Questionnaire().GetByID(ctx, req.QuestionnaireID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}
	if err := checkScope(projectScope, questionnaire.ProjectID); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		Key:             newAssignmentKey(),
		UserID:          user.ID,
		QuestionnaireID: questionnaire.ID,
		DueAt:           req.DueAt,
		Active:          true,
	}
	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("assignment created",
		"assignment_id", assignment.ID,
		"user_id", user.ID,
		"questionnaire_id", questionnaire.ID)
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, projectScope *uint, id uint) error {
	assignment, err := s.repo.Assignment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if projectScope != nil {
		user, err := s.repo.User().GetByID(ctx, assignment.UserID)
		if err != nil {
			return fmt.Errorf("failed to get assignment user: %w", err)
		}
		if err := checkScope(projectScope, user.ProjectID); err != nil {
			return err
		}
	}
	if err := s.repo.Assignment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	s.logger.Info("assignment deleted", "assignment_id", id)
	return nil
}

func (s *assignmentService) List(ctx context.Context, projectScope *uint) ([]*models.Assignment, error) {
	assignments, err := s.repo.Assignment().List(ctx, projectScope)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func newAssignmentKey() string {
	return "asg_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
