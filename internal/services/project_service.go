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

type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// ProjectService manages study projects and their admin keys.
type ProjectService interface {
	Create(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)
	Get(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
}

// AuthService resolves an admin key into a project scope. A nil project id
// means super scope: the key sees every project.
type AuthService interface {
	ResolveAdminKey(ctx context.Context, key string) (*uint, error)
}

type projectService struct {
	repo        repositories.Repository
	validator   *validator.Validator
	superAPIKey string
	logger      *slog.Logger
}

func NewProjectService(
	repo repositories.Repository,
	v *validator.Validator,
	superAPIKey string,
	logger *slog.Logger,
) interface {
	ProjectService
	AuthService
} {
	return &projectService{
		repo:        repo,
		validator:   v,
		superAPIKey: superAPIKey,
		logger:      logger,
	}
}

func (s *projectService) Create(ctx context.Context, req *CreateProjectRequest) (*models.Project, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		AdminKey:    newAdminKey(),
	}
	if err := s.repo.Project().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", "project_id", project.ID, "name", project.Name)
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Project().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.repo.Project().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) ResolveAdminKey(ctx context.Context, key string) (*uint, error) {
	if key == "" {
		return nil, ErrInvalidAdminKey
	}
	if key == s.superAPIKey {
		return nil, nil
	}
	project, err := s.repo.Project().GetByAdminKey(ctx, key)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidAdminKey
		}
		return nil, fmt.Errorf("failed to resolve admin key: %w", err)
	}
	return &project.ID, nil
}

func newAdminKey() string {
	return "pk_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
