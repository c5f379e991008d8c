package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
	"github.com/trialworks/ediary-service/internal/validator"
)

type CreateUserRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Name      string      `json:"name" validate:"required,min=1,max=200"`
	Role      models.Role `json:"role" validate:"omitempty,user_role"`
	ProjectID *uint       `json:"project_id"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	IsActive *bool   `json:"is_active"`
}

// UserService manages study users. Participants get a generated participant
// code at creation; the code is the only credential the participant API uses.
type UserService interface {
	Create(ctx context.Context, projectScope *uint, req *CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, projectScope *uint, id uint) (*models.User, error)
	Update(ctx context.Context, projectScope *uint, id uint, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, projectScope *uint, id uint) error
	List(ctx context.Context, projectScope *uint) ([]*models.User, error)
}

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewUserService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) UserService {
	return &userService{repo: repo, validator: v, logger: logger}
}

func (s *userService) Create(ctx context.Context, projectScope *uint, req *CreateUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleParticipant
	}

	projectID := req.ProjectID
	if projectScope != nil {
		// A project-scoped key can only create users inside its own project.
		if projectID != nil && *projectID != *projectScope {
			return nil, ErrProjectScopeDenied
		}
		projectID = projectScope
	}

	user := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		Role:      role,
		IsActive:  true,
		ProjectID: projectID,
	}
	if role == models.RoleParticipant {
		code := newParticipantCode()
		user.ParticipantCode = &code
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) Get(ctx context.Context, projectScope *uint, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := checkScope(projectScope, user.ProjectID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, projectScope *uint, id uint, req *UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, projectScope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, projectScope *uint, id uint) error {
	if _, err := s.Get(ctx, projectScope, id); err != nil {
		return err
	}
	if err := s.repo.User().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *userService) List(ctx context.Context, projectScope *uint) ([]*models.User, error) {
	users, err := s.repo.User().List(ctx, projectScope)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// checkScope denies access when a project-scoped key touches a resource
// outside its project. A nil scope is the super key and passes everything.
func checkScope(projectScope, resourceProject *uint) error {
	if projectScope == nil {
		return nil
	}
	if resourceProject == nil || *resourceProject != *projectScope {
		return ErrProjectScopeDenied
	}
	return nil
}

func newParticipantCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
