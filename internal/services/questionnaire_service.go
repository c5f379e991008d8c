package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trialworks/ediary-service/internal/cache"
	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
	"github.com/trialworks/ediary-service/internal/validator"
)

type CreateQuestionnaireRequest struct {
	Name        string                      `json:"name" validate:"required,min=1,max=200"`
	Description *string                     `json:"description" validate:"omitempty,max=1000"`
	Version     string                      `json:"version" validate:"omitempty,max=20"`
	ProjectID   *uint                       `json:"project_id"`
	Questions   []validator.QuestionPayload `json:"questions"`
}

type UpdateQuestionnaireRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Version     *string `json:"version" validate:"omitempty,max=20"`
	IsActive    *bool   `json:"is_active"`
}

type QuestionRequest struct {
	Text     string                    `json:"text" validate:"required"`
	Type     models.QuestionType       `json:"type" validate:"omitempty,question_type"`
	Required *bool                     `json:"required"`
	Order    *int                      `json:"order"`
	Choices  []validator.ChoicePayload `json:"choices"`
}

// QuestionnaireService manages questionnaire definitions, their questions and
// choices. Every mutation drops the participant-side cache entry so fill
// sessions never start from a stale definition.
type QuestionnaireService interface {
	Create(ctx context.Context, projectScope *uint, req *CreateQuestionnaireRequest) (*models.Questionnaire, error)
	Get(ctx context.Context, projectScope *uint, id uint) (*models.Questionnaire, error)
	Update(ctx context.Context, projectScope *uint, id uint, req *UpdateQuestionnaireRequest) (*models.Questionnaire, error)
	Delete(ctx context.Context, projectScope *uint, id uint) error
	List(ctx context.Context, projectScope *uint) ([]*models.Questionnaire, error)

	AddQuestion(ctx context.Context, projectScope *uint, questionnaireID uint, req *QuestionRequest) (*models.Question, error)
	UpdateQuestion(ctx context.Context, projectScope *uint, questionnaireID, questionID uint, req *QuestionRequest) (*models.Question, error)
	DeleteQuestion(ctx context.Context, projectScope *uint, questionnaireID, questionID uint) error
}

type questionnaireService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	validator *validator.Validator
	logger    *slog.Logger
}

func NewQuestionnaireService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	v *validator.Validator,
	logger *slog.Logger,
) QuestionnaireService {
	return &questionnaireService{
		repo:      repo,
		cache:     cacheService,
		validator: v,
		logger:    logger,
	}
}

func (s *questionnaireService) Create(ctx context.Context, projectScope *uint, req *CreateQuestionnaireRequest) (*models.Questionnaire, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.validator.Questionnaire().ValidateQuestions(req.Questions); err != nil {
		return nil, err
	}

	projectID := req.ProjectID
	if projectScope != nil {
		if projectID != nil && *projectID != *projectScope {
			return nil, ErrProjectScopeDenied
		}
		projectID = projectScope
	}

	version := req.Version
	if version == "" {
		version = "1.0"
	}

	questionnaire := &models.Questionnaire{
		Name:        req.Name,
		Description: req.Description,
		Version:     version,
		IsActive:    true,
		ProjectID:   projectID,
		Questions:   buildQuestions(req.Questions),
	}

	if err := s.repo.Questionnaire().Create(ctx, questionnaire); err != nil {
		return nil, fmt.Errorf("failed to create questionnaire: %w", err)
	}

	s.logger.Info("questionnaire created",
		"questionnaire_id", questionnaire.ID,
		"questions", len(questionnaire.Questions))
	return questionnaire, nil
}

func (s *questionnaireService) Get(ctx context.Context, projectScope *uint, id uint) (*models.Questionnaire, error) {
	questionnaire, err := s.repo.Questionnaire().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}
	if err := checkScope(projectScope, questionnaire.ProjectID); err != nil {
		return nil, err
	}
	return questionnaire, nil
}

func (s *questionnaireService) Update(ctx context.Context, projectScope *uint, id uint, req *UpdateQuestionnaireRequest) (*models.Questionnaire, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	questionnaire, err := s.Get(ctx, projectScope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		questionnaire.Name = *req.Name
	}
	if req.Description != nil {
		questionnaire.Description = req.Description
	}
	if req.Version != nil {
		questionnaire.Version = *req.Version
	}
	if req.IsActive != nil {
		questionnaire.IsActive = *req.IsActive
	}

	if err := s.repo.Questionnaire().Update(ctx, questionnaire); err != nil {
		return nil, fmt.Errorf("failed to update questionnaire: %w", err)
	}
	s.invalidate(ctx, id)
	return questionnaire, nil
}

func (s *questionnaireService) Delete(ctx context.Context, projectScope *uint, id uint) error {
	if _, err := s.Get(ctx, projectScope, id); err != nil {
		return err
	}
	if err := s.repo.Questionnaire().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete questionnaire: %w", err)
	}
	s.invalidate(ctx, id)
	s.logger.Info("questionnaire deleted", "questionnaire_id", id)
	return nil
}

func (s *questionnaireService) List(ctx context.Context, projectScope *uint) ([]*models.Questionnaire, error) {
	questionnaires, err := s.repo.Questionnaire().List(ctx, projectScope)
	if err != nil {
		return nil, fmt.Errorf("failed to list questionnaires: %w", err)
	}
	return questionnaires, nil
}

func (s *questionnaireService) AddQuestion(ctx context.Context, projectScope *uint, questionnaireID uint, req *QuestionRequest) (*models.Question, error) {
	if err := s.validateQuestionRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, projectScope, questionnaireID); err != nil {
		return nil, err
	}

	question := buildQuestion(validator.QuestionPayload{
		Text:     req.Text,
		Type:     req.Type,
		Required: req.Required,
		Order:    req.Order,
		Choices:  req.Choices,
	})
	question.QuestionnaireID = questionnaireID

	if err := s.repo.Questionnaire().AddQuestion(ctx, &question); err != nil {
		return nil, fmt.Errorf("failed to add question: %w", err)
	}
	s.invalidate(ctx, questionnaireID)
	return &question, nil
}

func (s *questionnaireService) UpdateQuestion(ctx context.Context, projectScope *uint, questionnaireID, questionID uint, req *QuestionRequest) (*models.Question, error) {
	if err := s.validateQuestionRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, projectScope, questionnaireID); err != nil {
		return nil, err
	}

	question, err := s.repo.Questionnaire().GetQuestion(ctx, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if question.QuestionnaireID != questionnaireID {
		return nil, ErrQuestionNotFound
	}

	question.Text = req.Text
	if req.Type != "" {
		question.Type = req.Type
	}
	if req.Required != nil {
		question.Required = *req.Required
	}
	if req.Order != nil {
		question.Order = *req.Order
	}

	if err := s.repo.Questionnaire().UpdateQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	if req.Choices != nil {
		choices := buildChoices(req.Choices)
		if err := s.repo.Questionnaire().ReplaceChoices(ctx, questionID, choices); err != nil {
			return nil, fmt.Errorf("failed to replace choices: %w", err)
		}
		question.Choices = choices
	}
	s.invalidate(ctx, questionnaireID)
	return question, nil
}

func (s *questionnaireService) DeleteQuestion(ctx context.Context, projectScope *uint, questionnaireID, questionID uint) error {
	if _, err := s.Get(ctx, projectScope, questionnaireID); err != nil {
		return err
	}
	question, err := s.repo.Questionnaire().GetQuestion(ctx, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to get question: %w", err)
	}
	if question.QuestionnaireID != questionnaireID {
		return ErrQuestionNotFound
	}
	if err := s.repo.Questionnaire().DeleteQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	s.invalidate(ctx, questionnaireID)
	return nil
}

func (s *questionnaireService) validateQuestionRequest(req *QuestionRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	return s.validator.Questionnaire().ValidateQuestions([]validator.QuestionPayload{{
		Text:     req.Text,
		Type:     req.Type,
		Required: req.Required,
		Order:    req.Order,
		Choices:  req.Choices,
	}})
}

func (s *questionnaireService) invalidate(ctx context.Context, questionnaireID uint) {
	if err := s.cache.Delete(ctx, questionnaireCacheKey(questionnaireID)); err != nil && err != cache.ErrCacheMiss {
		s.logger.Warn("failed to invalidate questionnaire cache",
			"questionnaire_id", questionnaireID, "error", err)
	}
}

func buildQuestions(payloads []validator.QuestionPayload) []models.Question {
	questions := make([]models.Question, 0, len(payloads))
	for i, p := range payloads {
		q := buildQuestion(p)
		if p.Order == nil {
			q.Order = i
		}
		questions = append(questions, q)
	}
	return questions
}

func buildQuestion(p validator.QuestionPayload) models.Question {
	q := models.Question{
		Text:     p.Text,
		Type:     p.Type,
		Required: true,
		Choices:  buildChoices(p.Choices),
	}
	if q.Type == "" {
		q.Type = models.QuestionText
	}
	if p.Required != nil {
		q.Required = *p.Required
	}
	if p.Order != nil {
		q.Order = *p.Order
	}
	return q
}

func buildChoices(payloads []validator.ChoicePayload) []models.Choice {
	choices := make([]models.Choice, 0, len(payloads))
	for i, p := range payloads {
		c := models.Choice{Text: p.Text, Value: p.Value, Order: i}
		if p.Order != nil {
			c.Order = *p.Order
		}
		choices = append(choices, c)
	}
	return choices
}
