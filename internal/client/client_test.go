package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	"github.com/trialworks/ediary-service/internal/engine"
)

const testBase = "http://ediary.test"

func newTestClient() *Client {
	hc := &http.Client{}
	gock.InterceptClient(hc)
	return New(testBase, WithHTTPClient(hc))
}

func TestFetchAssignments(t *testing.T) {
	defer gock.Off()
	gock.New(testBase).
		Get("/api/user/questionnaires").
		MatchParam("participant_code", "P001").
		Reply(200).
		JSON(map[string]any{
			"assignments": []map[string]any{
				{
					"id":               5,
					"key":              "ring-daily",
					"questionnaire_id": 7,
					"name":             "Daily ring diary",
					"active":           true,
					"questionnaire": map[string]any{
						"questionnaire_id": 7,
						"name":             "Daily ring diary",
						"version":          "1.0",
						"questions": []map[string]any{
							{"id": 1, "text": "Did you insert the vaginal ring today?", "type": "single_choice", "required": true, "order": 1},
						},
					},
				},
			},
		})

	c := newTestClient()
	assignments, err := c.FetchAssignments(context.Background(), "P001")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, uint(7), assignments[0].QuestionnaireID)
	assert.Equal(t, "ring-daily", assignments[0].Key)
	require.Len(t, assignments[0].Questionnaire.Questions, 1)
	assert.Equal(t, engine.QuestionID(1), assignments[0].Questionnaire.Questions[0].ID)
}

func TestFetchAssignments_NotFound(t *testing.T) {
	defer gock.Off()
	gock.New(testBase).
		Get("/api/user/questionnaires").
		Reply(404).
		JSON(map[string]string{"message": "Participant not found"})

	c := newTestClient()
	_, err := c.FetchAssignments(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Participant not found")
}

func TestFetchTasks(t *testing.T) {
	defer gock.Off()
	gock.New(testBase).
		Get("/api/user/tasks").
		MatchParam("participant_code", "P001").
		Reply(200).
		JSON(map[string]any{
			"tasks": []map[string]any{
				{"id": 42, "title": "Fill your diary", "task_type": "fill_form", "questionnaire_id": 7},
				{"id": 43, "title": "Visit reminder", "task_type": "reminder", "auto_completed": true},
			},
		})

	c := newTestClient()
	tasks, err := c.FetchTasks(context.Background(), "P001")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "fill_form", string(tasks[0].Type))
	require.NotNil(t, tasks[0].QuestionnaireID)
	assert.Equal(t, uint(7), *tasks[0].QuestionnaireID)
	assert.True(t, tasks[1].AutoCompleted)
}

func TestSubmitEntry_Success(t *testing.T) {
	defer gock.Off()
	gock.New(testBase).
		Post("/api/user/submit").
		JSON(map[string]any{
			"participant_code": "P001",
			"questionnaire_id": 7,
			"answers":          map[string]any{"1": "no", "2": "traveling"},
		}).
		Reply(200).
		JSON(map[string]any{"ok": true})

	c := newTestClient()
	err := c.SubmitEntry(context.Background(), "P001", 7, map[string]engine.Value{"1": "no", "2": "traveling"})
	assert.NoError(t, err)
}

func TestSubmitEntry_RejectionBecomesRejectedError(t *testing.T) {
	defer gock.Off()
	gock.New(testBase).
		Post("/api/user/submit").
		Reply(404).
		JSON(map[string]string{"message": "Questionnaire not found"})

	c := newTestClient()
	err := c.SubmitEntry(context.Background(), "P001", 99, map[string]engine.Value{})
	require.Error(t, err)

	var rejected *engine.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, 404, rejected.StatusCode)
	assert.Equal(t, "Questionnaire not found", rejected.Message)
}
