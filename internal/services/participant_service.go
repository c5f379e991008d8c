package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/trialworks/ediary-service/internal/cache"
	"github.com/trialworks/ediary-service/internal/engine"
	"github.com/trialworks/ediary-service/internal/events"
	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

const questionnaireCacheTTL = 5 * time.Minute

// UserSummary is the participant identity echoed with their assignments.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AssignmentListResponse struct {
	User        UserSummary         `json:"user"`
	Assignments []engine.Assignment `json:"assignments"`
}

type TaskListResponse struct {
	Tasks []models.TaskView `json:"tasks"`
}

type SubmitEntryRequest struct {
	ParticipantCode string         `json:"participant_code" validate:"required"`
	QuestionnaireID uint           `json:"questionnaire_id" validate:"required"`
	Answers         map[string]any `json:"answers" validate:"required"`
}

type SubmitEntryResponse struct {
	OK      bool `json:"ok"`
	EntryID uint `json:"entry_id"`
}

// ParticipantService backs the user-facing API: the assignment and task
// feeds the fill engine loads, and the submit endpoint the coordinator posts
// to.
type ParticipantService interface {
	Assignments(ctx context.Context, participantCode string) (*AssignmentListResponse, error)
	Tasks(ctx context.Context, participantCode string) (*TaskListResponse, error)
	Submit(ctx context.Context, req *SubmitEntryRequest) (*SubmitEntryResponse, error)
}

type participantService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewParticipantService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ParticipantService {
	return &participantService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *participantService) Assignments(ctx context.Context, participantCode string) (*AssignmentListResponse, error) {
	user, err := s.repo.User().GetByParticipantCode(ctx, participantCode)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	assignments, err := s.repo.Assignment().ListActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	resp := &AssignmentListResponse{
		User:        UserSummary{ID: user.ID, Name: user.Name},
		Assignments: make([]engine.Assignment, 0, len(assignments)),
	}

	for _, a := range assignments {
		q, err := s.resolvedQuestionnaire(ctx, a.QuestionnaireID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				// Assignment pointing at a deleted questionnaire is skipped,
				// not fatal.
				s.logger.Warn("assignment references missing questionnaire",
					"assignment_id", a.ID,
					"questionnaire_id", a.QuestionnaireID)
				continue
			}
			return nil, err
		}
		if q == nil {
			continue // inactive questionnaire
		}
		resp.Assignments = append(resp.Assignments, engine.Assignment{
			ID:              a.ID,
			Key:             a.Key,
			QuestionnaireID: a.QuestionnaireID,
			Name:            q.Name,
			Description:     q.Description,
			Active:          a.Active,
			Questionnaire:   *q,
		})
	}

	return resp, nil
}

// resolvedQuestionnaire returns the engine-shaped questionnaire, read through
// the cache. Inactive questionnaires resolve to nil.
func (s *participantService) resolvedQuestionnaire(ctx context.Context, id uint) (*engine.Questionnaire, error) {
	key := questionnaireCacheKey(id)

	var cached engine.Questionnaire
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrCacheMiss {
		s.logger.Warn("questionnaire cache read failed", "questionnaire_id", id, "error", err)
	}

	q, err := s.repo.Questionnaire().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.IsActive {
		return nil, nil
	}

	resolved := engine.QuestionnaireFromModel(q)
	if err := s.cache.Set(ctx, key, resolved, questionnaireCacheTTL); err != nil {
		s.logger.Warn("questionnaire cache write failed", "questionnaire_id", id, "error", err)
	}
	return &resolved, nil
}

func questionnaireCacheKey(id uint) string {
	return fmt.Sprintf("questionnaire:%d", id)
}

func (s *participantService) Tasks(ctx context.Context, participantCode string) (*TaskListResponse, error) {
	user, err := s.repo.User().GetByParticipantCode(ctx, participantCode)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	tasks, err := s.repo.Task().ListOpenByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	resp := &TaskListResponse{Tasks: make([]models.TaskView, 0, len(tasks))}
	now := time.Now().UTC()

	for _, task := range tasks {
		view := models.TaskView{
			ID:                    task.ID,
			Title:                 task.Title,
			Description:           task.Description,
			TaskType:              task.TaskType,
			QuestionnaireID:       task.QuestionnaireID,
			DueAt:                 task.DueAt,
			ReminderMinutesBefore: task.ReminderMinutesBefore,
		}

		if task.QuestionnaireID != nil {
			if q, err := s.repo.Questionnaire().GetByID(ctx, *task.QuestionnaireID); err == nil {
				view.QuestionnaireName = q.Name
			}
		}

		// Reminders are terminal display items: completed the moment the
		// participant has seen them once.
		if task.TaskType == models.TaskReminder {
			task.IsCompleted = true
			completedAt := now
			task.CompletedAt = &completedAt
			if err := s.repo.Task().Update(ctx, task); err != nil {
				s.logger.Warn("failed to auto-complete reminder", "task_id", task.ID, "error", err)
			} else {
				view.AutoCompleted = true
				s.publishTaskCompleted(ctx, task, true)
			}
		}

		resp.Tasks = append(resp.Tasks, view)
	}

	return resp, nil
}

func (s *participantService) Submit(ctx context.Context, req *SubmitEntryRequest) (*SubmitEntryResponse, error) {
	user, err := s.repo.User().GetByParticipantCode(ctx, req.ParticipantCode)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	questionnaire, err := s.repo.Questionnaire().GetByID(ctx, req.QuestionnaireID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	entry := &models.DiaryEntry{
		UserID:          user.ID,
		QuestionnaireID: questionnaire.ID,
		ProjectID:       user.ProjectID,
		SubmittedAt:     time.Now().UTC(),
		Answers:         datatypes.JSON(answersJSON),
	}
	if err := s.repo.Entry().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to store entry: %w", err)
	}

	// Close every open fill_form task for this questionnaire; the submission
	// fulfils all of them.
	openTasks, err := s.repo.Task().ListOpenFillForm(ctx, user.ID, questionnaire.ID)
	if err != nil {
		s.logger.Warn("failed to list open fill_form tasks", "user_id", user.ID, "error", err)
	}
	now := time.Now().UTC()
	for _, task := range openTasks {
		task.IsCompleted = true
		completedAt := now
		task.CompletedAt = &completedAt
		if err := s.repo.Task().Update(ctx, task); err != nil {
			s.logger.Warn("failed to complete task after submission", "task_id", task.ID, "error", err)
			continue
		}
		s.publishTaskCompleted(ctx, task, false)
	}

	s.publishEntrySubmitted(ctx, entry)

	s.logger.Info("diary entry submitted",
		"entry_id", entry.ID,
		"user_id", user.ID,
		"questionnaire_id", questionnaire.ID)

	return &SubmitEntryResponse{OK: true, EntryID: entry.ID}, nil
}

func (s *participantService) publishEntrySubmitted(ctx context.Context, entry *models.DiaryEntry) {
	event := events.NewDiaryEvent(events.EventEntrySubmitted, events.EntrySubmittedEvent{
		EntryID:         entry.ID,
		UserID:          entry.UserID,
		QuestionnaireID: entry.QuestionnaireID,
		ProjectID:       entry.ProjectID,
		SubmittedAt:     entry.SubmittedAt,
	})
	if err := s.publisher.PublishDiaryEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish entry event", "entry_id", entry.ID, "error", err)
	}
}

func (s *participantService) publishTaskCompleted(ctx context.Context, task *models.Task, auto bool) {
	event := events.NewDiaryEvent(events.EventTaskCompleted, events.TaskCompletedEvent{
		TaskID:        task.ID,
		UserID:        task.UserID,
		TaskType:      string(task.TaskType),
		AutoCompleted: auto,
	})
	if err := s.publisher.PublishDiaryEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish task event", "task_id", task.ID, "error", err)
	}
}
