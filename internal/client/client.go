// Package client is the participant-side API client: typed calls to the
// user-facing endpoints plus a generation-tagged loader that keeps the local
// assignment/task snapshot coherent under concurrent loads.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trialworks/ediary-service/internal/engine"
)

const defaultTimeout = 15 * time.Second

// Client calls the participant API. It implements engine.Submitter so the
// submission coordinator can be wired to it directly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, mainly for tests and for
// hosts that need custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type assignmentsResponse struct {
	Assignments []engine.Assignment `json:"assignments"`
}

type tasksResponse struct {
	Tasks []engine.Task `json:"tasks"`
}

type submitRequest struct {
	ParticipantCode string                  `json:"participant_code"`
	QuestionnaireID uint                    `json:"questionnaire_id"`
	Answers         map[string]engine.Value `json:"answers"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// FetchAssignments loads the participant's active questionnaire assignments.
func (c *Client) FetchAssignments(ctx context.Context, participantCode string) ([]engine.Assignment, error) {
	var out assignmentsResponse
	if err := c.get(ctx, "/api/user/questionnaires", participantCode, &out); err != nil {
		return nil, err
	}
	return out.Assignments, nil
}

// FetchTasks loads the participant's open tasks. Callers treat a failure here
// as non-fatal: assignments can still be shown without a task list.
func (c *Client) FetchTasks(ctx context.Context, participantCode string) ([]engine.Task, error) {
	var out tasksResponse
	if err := c.get(ctx, "/api/user/tasks", participantCode, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// SubmitEntry posts a completed answer set. A non-2xx status becomes an
// *engine.RejectedError carrying the server's message when it sent one;
// transport errors are returned as-is.
func (c *Client) SubmitEntry(ctx context.Context, participantCode string, questionnaireID uint, answers map[string]engine.Value) error {
	body, err := json.Marshal(submitRequest{
		ParticipantCode: participantCode,
		QuestionnaireID: questionnaireID,
		Answers:         answers,
	})
	if err != nil {
		return fmt.Errorf("encoding submit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user/submit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitting entry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &engine.RejectedError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, participantCode string, out any) error {
	u := c.baseURL + path + "?participant_code=" + url.QueryEscape(participantCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := readErrorMessage(resp.Body)
		if msg == "" {
			msg = "request failed"
		}
		return fmt.Errorf("%s: %s (status %d)", path, msg, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	var e errorResponse
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return ""
	}
	return e.Message
}
