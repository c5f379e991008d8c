package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

type QuestionnairePostgreSQL struct {
	db *gorm.DB
}

func NewQuestionnairePostgreSQL(db *gorm.DB) repositories.QuestionnaireRepository {
	return &QuestionnairePostgreSQL{db: db}
}

func (q QuestionnairePostgreSQL) Create(ctx context.Context, questionnaire *models.Questionnaire) error {
	return q.db.WithContext(ctx).Create(questionnaire).Error
}

func (q QuestionnairePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Questionnaire, error) {
	var questionnaire models.Questionnaire
	if err := q.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.display_order ASC, questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.display_order ASC, choices.id ASC")
		}).
		First(&questionnaire, id).Error; err != nil {
		return nil, err
	}
	return &questionnaire, nil
}

func (q QuestionnairePostgreSQL) Update(ctx context.Context, questionnaire *models.Questionnaire) error {
	return q.db.WithContext(ctx).Save(questionnaire).Error
}

func (q QuestionnairePostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&models.Question{}).
			Where("questionnaire_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Choice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("questionnaire_id = ?", id).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Questionnaire{}, id).Error
	})
}

func (q QuestionnairePostgreSQL) List(ctx context.Context, projectID *uint) ([]*models.Questionnaire, error) {
	var questionnaires []*models.Questionnaire
	query := q.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.display_order ASC, questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.display_order ASC, choices.id ASC")
		})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if err := query.Find(&questionnaires).Error; err != nil {
		return nil, err
	}
	return questionnaires, nil
}

func (q QuestionnairePostgreSQL) AddQuestion(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Create(question).Error
}

func (q QuestionnairePostgreSQL) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.display_order ASC, choices.id ASC")
		}).
		First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (q QuestionnairePostgreSQL) UpdateQuestion(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Save(question).Error
}

func (q QuestionnairePostgreSQL) DeleteQuestion(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, id).Error
	})
}

func (q QuestionnairePostgreSQL) ReplaceChoices(ctx context.Context, questionID uint, choices []models.Choice) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Choice{}).Error; err != nil {
			return err
		}
		for i := range choices {
			choices[i].ID = 0
			choices[i].QuestionID = questionID
		}
		if len(choices) == 0 {
			return nil
		}
		return tx.Create(&choices).Error
	})
}
