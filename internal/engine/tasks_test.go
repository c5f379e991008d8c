package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialworks/ediary-service/internal/models"
)

func TestResolveActiveAssignment(t *testing.T) {
	qid7 := uint(7)
	qid9 := uint(9)
	assignments := []Assignment{
		{ID: 1, QuestionnaireID: 3, Name: "baseline"},
		{ID: 2, QuestionnaireID: 7, Name: "daily ring diary"},
	}

	t.Run("fill_form task resolves by questionnaire id", func(t *testing.T) {
		task := Task{ID: 10, Type: models.TaskFillForm, QuestionnaireID: &qid7}
		a, ok := ResolveActiveAssignment(task, assignments)
		require.True(t, ok)
		assert.Equal(t, uint(2), a.ID)
	})

	t.Run("no matching assignment leaves task unavailable", func(t *testing.T) {
		task := Task{ID: 11, Type: models.TaskFillForm, QuestionnaireID: &qid9}
		_, ok := ResolveActiveAssignment(task, assignments)
		assert.False(t, ok)
	})

	t.Run("reminder tasks never resolve", func(t *testing.T) {
		task := Task{ID: 12, Type: models.TaskReminder, QuestionnaireID: &qid7}
		_, ok := ResolveActiveAssignment(task, assignments)
		assert.False(t, ok)
	})

	t.Run("fill_form without questionnaire never resolves", func(t *testing.T) {
		task := Task{ID: 13, Type: models.TaskFillForm}
		_, ok := ResolveActiveAssignment(task, assignments)
		assert.False(t, ok)
	})
}

func TestActiveTracker(t *testing.T) {
	tr := NewActiveTracker()
	assert.False(t, tr.InProgress(1))

	tr.Start(1)
	assert.True(t, tr.InProgress(1))
	// Two tasks may point at the same questionnaire; tracking is by task id.
	assert.False(t, tr.InProgress(2))

	tr.Start(2)
	assert.True(t, tr.InProgress(2))
	assert.False(t, tr.InProgress(1))

	tr.Clear()
	assert.False(t, tr.InProgress(2))
}
