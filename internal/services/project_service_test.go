package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/validator"
)

const testSuperKey = "super-secret"

func TestProjectService_Create_GeneratesAdminKey(t *testing.T) {
	repo := newMockRepository()
	svc := NewProjectService(repo, validator.New(), testSuperKey, testLogger())

	repo.project.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
		return strings.HasPrefix(p.AdminKey, "pk_") && len(p.AdminKey) > 10
	})).Return(nil)

	project, err := svc.Create(context.Background(), &CreateProjectRequest{Name: "Ring Study"})
	require.NoError(t, err)
	assert.Equal(t, "Ring Study", project.Name)
	repo.project.AssertExpectations(t)
}

func TestProjectService_Create_RequiresName(t *testing.T) {
	repo := newMockRepository()
	svc := NewProjectService(repo, validator.New(), testSuperKey, testLogger())

	_, err := svc.Create(context.Background(), &CreateProjectRequest{})
	assert.True(t, IsValidation(err))
}

func TestProjectService_ResolveAdminKey(t *testing.T) {
	t.Run("super key resolves to nil scope", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewProjectService(repo, validator.New(), testSuperKey, testLogger())

		scope, err := svc.ResolveAdminKey(context.Background(), testSuperKey)
		require.NoError(t, err)
		assert.Nil(t, scope)
	})

	t.Run("project key resolves to its project", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewProjectService(repo, validator.New(), testSuperKey, testLogger())

		repo.project.On("GetByAdminKey", mock.Anything, "pk_abc").Return(&models.Project{ID: 7, AdminKey: "pk_abc"}, nil)

		scope, err := svc.ResolveAdminKey(context.Background(), "pk_abc")
		require.NoError(t, err)
		require.NotNil(t, scope)
		assert.Equal(t, uint(7), *scope)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewProjectService(repo, validator.New(), testSuperKey, testLogger())

		repo.project.On("GetByAdminKey", mock.Anything, "pk_bogus").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ResolveAdminKey(context.Background(), "pk_bogus")
		assert.ErrorIs(t, err, ErrInvalidAdminKey)
	})

	t.Run("empty key is rejected without a store lookup", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewProjectService(repo, validator.New(), testSuperKey, testLogger())

		_, err := svc.ResolveAdminKey(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidAdminKey)
	})
}

func TestUserService_Create_ParticipantGetsCode(t *testing.T) {
	repo := newMockRepository()
	svc := NewUserService(repo, validator.New(), testLogger())

	repo.user.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ParticipantCode != nil && len(*u.ParticipantCode) == 8
	})).Return(nil)

	user, err := svc.Create(context.Background(), nil, &CreateUserRequest{
		Email: "p2@example.org",
		Name:  "Participant Two",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleParticipant, user.Role)
	require.NotNil(t, user.ParticipantCode)
	repo.user.AssertExpectations(t)
}

func TestUserService_Create_ScopedKeyPinsProject(t *testing.T) {
	repo := newMockRepository()
	svc := NewUserService(repo, validator.New(), testLogger())

	repo.user.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ProjectID != nil && *u.ProjectID == 7
	})).Return(nil)

	user, err := svc.Create(context.Background(), uintp(7), &CreateUserRequest{
		Email: "p3@example.org",
		Name:  "Participant Three",
	})
	require.NoError(t, err)
	require.NotNil(t, user.ProjectID)
	assert.Equal(t, uint(7), *user.ProjectID)

	_, err = svc.Create(context.Background(), uintp(7), &CreateUserRequest{
		Email:     "p4@example.org",
		Name:      "Participant Four",
		ProjectID: uintp(8),
	})
	assert.ErrorIs(t, err, ErrProjectScopeDenied)
}
