package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/validator"
)

func TestTaskService_Create(t *testing.T) {
	t.Run("fill_form requires questionnaire id", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewTaskService(repo, validator.New(), testLogger())

		_, err := svc.Create(context.Background(), nil, &CreateTaskRequest{
			UserID:   4,
			Title:    "Fill the diary",
			TaskType: models.TaskFillForm,
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("reminder rejects questionnaire id", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewTaskService(repo, validator.New(), testLogger())

		_, err := svc.Create(context.Background(), nil, &CreateTaskRequest{
			UserID:          4,
			Title:           "Diary reminder",
			TaskType:        models.TaskReminder,
			QuestionnaireID: uintp(9),
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("invalid task type fails struct validation", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewTaskService(repo, validator.New(), testLogger())

		_, err := svc.Create(context.Background(), nil, &CreateTaskRequest{
			UserID:   4,
			Title:    "Whatever",
			TaskType: "escalation",
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("creates fill_form task", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewTaskService(repo, validator.New(), testLogger())

		repo.user.On("GetByID", mock.Anything, uint(4)).Return(testParticipant(), nil)
		repo.questionnaire.On("GetByID", mock.Anything, uint(9)).Return(testRingQuestionnaire(), nil)
		repo.task.On("Create", mock.Anything, mock.MatchedBy(func(task *models.Task) bool {
			return task.TaskType == models.TaskFillForm && *task.QuestionnaireID == 9
		})).Return(nil)

		task, err := svc.Create(context.Background(), nil, &CreateTaskRequest{
			UserID:          4,
			Title:           "Fill the diary",
			TaskType:        models.TaskFillForm,
			QuestionnaireID: uintp(9),
		})
		require.NoError(t, err)
		assert.Equal(t, models.TaskFillForm, task.TaskType)
		repo.task.AssertExpectations(t)
	})

	t.Run("scoped key cannot target another project's user", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewTaskService(repo, validator.New(), testLogger())

		repo.user.On("GetByID", mock.Anything, uint(4)).Return(testParticipant(), nil)

		_, err := svc.Create(context.Background(), uintp(99), &CreateTaskRequest{
			UserID:   4,
			Title:    "Diary reminder",
			TaskType: models.TaskReminder,
		})
		assert.ErrorIs(t, err, ErrProjectScopeDenied)
	})
}

func TestTaskService_Update_CompletionTimestamps(t *testing.T) {
	repo := newMockRepository()
	svc := NewTaskService(repo, validator.New(), testLogger())

	task := &models.Task{ID: 21, UserID: 4, Title: "Fill the diary", TaskType: models.TaskFillForm, QuestionnaireID: uintp(9)}
	repo.task.On("GetByID", mock.Anything, uint(21)).Return(task, nil)
	repo.task.On("Update", mock.Anything, mock.Anything).Return(nil)

	done := true
	updated, err := svc.Update(context.Background(), nil, 21, &UpdateTaskRequest{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.NotNil(t, updated.CompletedAt)
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewTaskService(repo, validator.New(), testLogger())

	repo.task.On("GetByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), nil, 404)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
