package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

type EntryPostgreSQL struct {
	db *gorm.DB
}

func NewEntryPostgreSQL(db *gorm.DB) repositories.EntryRepository {
	return &EntryPostgreSQL{db: db}
}

func (e EntryPostgreSQL) Create(ctx context.Context, entry *models.DiaryEntry) error {
	return e.db.WithContext(ctx).Create(entry).Error
}

func (e EntryPostgreSQL) List(ctx context.Context, projectID *uint) ([]*models.DiaryEntry, error) {
	var entries []*models.DiaryEntry
	query := e.db.WithContext(ctx).Model(&models.DiaryEntry{}).Order("submitted_at DESC")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
