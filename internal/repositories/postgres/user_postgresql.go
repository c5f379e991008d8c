package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

type ProjectPostgreSQL struct {
	db *gorm.DB
}

func NewProjectPostgreSQL(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectPostgreSQL{db: db}
}

func (p ProjectPostgreSQL) Create(ctx context.Context, project *models.Project) error {
	return p.db.WithContext(ctx).Create(project).Error
}

func (p ProjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := p.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (p ProjectPostgreSQL) GetByAdminKey(ctx context.Context, key string) (*models.Project, error) {
	var project models.Project
	if err := p.db.WithContext(ctx).Where("admin_key = ?", key).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (p ProjectPostgreSQL) List(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	if err := p.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u UserPostgreSQL) GetByParticipantCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("participant_code = ?", code).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}

func (u UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	return u.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (u UserPostgreSQL) List(ctx context.Context, projectID *uint) ([]*models.User, error) {
	var users []*models.User
	query := u.db.WithContext(ctx).Model(&models.User{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
