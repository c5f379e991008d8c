package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (a AssignmentPostgreSQL) Create(ctx context.Context, assignment *models.Assignment) error {
	return a.db.WithContext(ctx).Create(assignment).Error
}

func (a AssignmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := a.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a AssignmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Assignment{}, id).Error
}

func (a AssignmentPostgreSQL) List(ctx context.Context, projectID *uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	query := a.db.WithContext(ctx).Model(&models.Assignment{})
	if projectID != nil {
		query = query.
			Joins("JOIN users ON users.id = assignments.user_id").
			Where("users.project_id = ?", *projectID)
	}
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (a AssignmentPostgreSQL) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	if err := a.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
