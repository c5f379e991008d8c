package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

const demoParticipantCode = "DEMO0001"

// SeedService provisions a demo project with the daily ring diary so a fresh
// deployment has something to fill out. Seeding is idempotent: the demo
// participant code is the marker.
type SeedService interface {
	SeedDemo(ctx context.Context) error
}

type seedService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewSeedService(repo repositories.Repository, logger *slog.Logger) SeedService {
	return &seedService{repo: repo, logger: logger}
}

func (s *seedService) SeedDemo(ctx context.Context) error {
	if _, err := s.repo.User().GetByParticipantCode(ctx, demoParticipantCode); err == nil {
		s.logger.Info("demo data already seeded")
		return nil
	} else if !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to check seed marker: %w", err)
	}

	description := "Demo study seeded at first start"
	project := &models.Project{
		Name:        "Ring Study Demo",
		Description: &description,
		AdminKey:    newAdminKey(),
	}
	if err := s.repo.Project().Create(ctx, project); err != nil {
		return fmt.Errorf("failed to seed project: %w", err)
	}

	code := demoParticipantCode
	user := &models.User{
		Email:           "demo.participant@example.org",
		Name:            "Demo Participant",
		ParticipantCode: &code,
		Role:            models.RoleParticipant,
		IsActive:        true,
		ProjectID:       &project.ID,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return fmt.Errorf("failed to seed participant: %w", err)
	}

	questionnaire := demoQuestionnaire(project.ID)
	if err := s.repo.Questionnaire().Create(ctx, questionnaire); err != nil {
		return fmt.Errorf("failed to seed questionnaire: %w", err)
	}

	assignment := &models.Assignment{
		Key:             newAssignmentKey(),
		UserID:          user.ID,
		QuestionnaireID: questionnaire.ID,
		Active:          true,
	}
	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return fmt.Errorf("failed to seed assignment: %w", err)
	}

	due := time.Now().UTC().Add(24 * time.Hour)
	fillDesc := "Complete today's ring diary before midnight"
	fillTask := &models.Task{
		UserID:          user.ID,
		Title:           "Fill in your daily ring diary",
		Description:     &fillDesc,
		TaskType:        models.TaskFillForm,
		QuestionnaireID: &questionnaire.ID,
		DueAt:           &due,
	}
	if err := s.repo.Task().Create(ctx, fillTask); err != nil {
		return fmt.Errorf("failed to seed fill task: %w", err)
	}

	minutes := 60
	reminder := &models.Task{
		UserID:                user.ID,
		Title:                 "Diary reminder",
		TaskType:              models.TaskReminder,
		DueAt:                 &due,
		ReminderMinutesBefore: &minutes,
	}
	if err := s.repo.Task().Create(ctx, reminder); err != nil {
		return fmt.Errorf("failed to seed reminder task: %w", err)
	}

	s.logger.Info("demo data seeded",
		"project_id", project.ID,
		"participant_code", demoParticipantCode,
		"questionnaire_id", questionnaire.ID)
	return nil
}

func demoQuestionnaire(projectID uint) *models.Questionnaire {
	yesNo := func() []models.Choice {
		return []models.Choice{
			{Text: "Yes", Value: "yes", Order: 0},
			{Text: "No", Value: "no", Order: 1},
		}
	}
	description := "Daily diary for the vaginal ring study"
	return &models.Questionnaire{
		Name:        "Daily Ring Diary",
		Description: &description,
		Version:     "1.0",
		IsActive:    true,
		ProjectID:   &projectID,
		Questions: []models.Question{
			{
				Text:     "Did you insert the vaginal ring today?",
				Type:     models.QuestionSingleChoice,
				Required: true,
				Order:    1,
				Choices:  yesNo(),
			},
			{
				Text:     "Why was the ring not inserted?",
				Type:     models.QuestionText,
				Required: true,
				Order:    2,
			},
			{
				Text:     "Did you remove the ring at any point today?",
				Type:     models.QuestionSingleChoice,
				Required: true,
				Order:    3,
				Choices:  yesNo(),
			},
			{
				Text:     "For how long was the ring out (minutes)?",
				Type:     models.QuestionNumber,
				Required: true,
				Order:    4,
			},
			{
				Text:     "Which symptoms did you experience today?",
				Type:     models.QuestionMultiChoice,
				Required: false,
				Order:    5,
				Choices: []models.Choice{
					{Text: "Headache", Value: "headache", Order: 0},
					{Text: "Nausea", Value: "nausea", Order: 1},
					{Text: "Cramps", Value: "cramps", Order: 2},
					{Text: "Other", Value: "other", Order: 3},
				},
			},
			{
				Text:     "Please describe the other symptoms",
				Type:     models.QuestionText,
				Required: true,
				Order:    6,
			},
		},
	}
}
