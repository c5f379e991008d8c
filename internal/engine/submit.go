package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrSubmitInFlight is returned when a second submission is attempted for an
// assignment that already has one pending. Submission is a mutual-exclusion
// region keyed by assignment id; callers must wait for the outcome instead of
// interleaving.
var ErrSubmitInFlight = errors.New("submission already in flight for this assignment")

// RejectedError is a backend rejection of a submission (non-2xx). It is
// distinguished from transport failure only in the message surfaced to the
// participant; the state-machine effect is identical.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("submission rejected (status %d)", e.StatusCode)
}

// Submitter delivers a completed answer set to the backend.
type Submitter interface {
	SubmitEntry(ctx context.Context, participantCode string, questionnaireID uint, answers map[string]Value) error
}

// SubmitState is the coordinator's per-assignment state machine:
// Idle → Submitting → {Succeeded, Failed}; Failed may re-enter Submitting on
// retry.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitSubmitting
	SubmitSucceeded
	SubmitFailed
)

// OutcomeKind classifies what a submission attempt produced.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRejected
	OutcomeTransportFailure
)

// Outcome is the typed result of a submission attempt. Failures carry a
// user-displayable message and imply no data loss: the answer store is left
// untouched so the participant can retry without re-entering anything.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// SubmitRequest identifies one submission: the assignment being fulfilled and
// the payload for the backend.
type SubmitRequest struct {
	AssignmentID    uint
	ParticipantCode string
	QuestionnaireID uint
	Answers         map[string]Value
}

// Coordinator serialises submissions per assignment and turns every failure
// mode into a typed outcome rather than a fault.
type Coordinator struct {
	submitter Submitter
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[uint]bool
	states   map[uint]SubmitState
}

func NewCoordinator(submitter Submitter, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		submitter: submitter,
		logger:    logger,
		inFlight:  make(map[uint]bool),
		states:    make(map[uint]SubmitState),
	}
}

// State reports the per-assignment state machine position.
func (c *Coordinator) State(assignmentID uint) SubmitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[assignmentID]
}

// Submit runs one submission attempt. It rejects a concurrent attempt for the
// same assignment with ErrSubmitInFlight and never mutates the answers it was
// given.
func (c *Coordinator) Submit(ctx context.Context, req SubmitRequest) (Outcome, error) {
	c.mu.Lock()
	if c.inFlight[req.AssignmentID] {
		c.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}
	c.inFlight[req.AssignmentID] = true
	c.states[req.AssignmentID] = SubmitSubmitting
	c.mu.Unlock()

	err := c.submitter.SubmitEntry(ctx, req.ParticipantCode, req.QuestionnaireID, req.Answers)

	c.mu.Lock()
	delete(c.inFlight, req.AssignmentID)
	if err != nil {
		c.states[req.AssignmentID] = SubmitFailed
	} else {
		c.states[req.AssignmentID] = SubmitSucceeded
	}
	c.mu.Unlock()

	if err == nil {
		c.logger.Info("entry submitted",
			"assignment_id", req.AssignmentID,
			"questionnaire_id", req.QuestionnaireID)
		return Outcome{Kind: OutcomeSuccess}, nil
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		c.logger.Warn("submission rejected",
			"assignment_id", req.AssignmentID,
			"status", rejected.StatusCode,
			"error", rejected.Message)
		return Outcome{Kind: OutcomeRejected, Message: rejected.Error()}, nil
	}

	c.logger.Warn("submission failed",
		"assignment_id", req.AssignmentID,
		"error", err)
	return Outcome{Kind: OutcomeTransportFailure, Message: "request failed, please try again"}, nil
}
