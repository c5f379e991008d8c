package engine

import (
	"context"
)

// Refresher is asked for a task-list reload after a successful submission.
// The loader in internal/client implements it.
type Refresher interface {
	Refresh(ctx context.Context)
}

// FillOutcome is what one forward-navigation step of a fill produced.
type FillOutcome struct {
	Result AdvanceResult
	// Submitted is set when Result is AdvanceSubmit and an attempt ran.
	Submitted *Outcome
}

// FillController owns the whole state of one participant fill: the session,
// the submission coordinator and the in-progress tracker. It is the single
// place answers, cursor and task state are mutated, so the flow can be
// exercised without any rendering environment.
type FillController struct {
	session    *Session
	coord      *Coordinator
	tracker    *ActiveTracker
	refresher  Refresher
	assignment Assignment
	code       string
}

// NewFillController starts a fill for the task against its resolved
// assignment and marks the task in progress.
func NewFillController(
	assignment Assignment,
	task Task,
	participantCode string,
	coord *Coordinator,
	tracker *ActiveTracker,
	refresher Refresher,
	rules []Rule,
) *FillController {
	def := NewDefinition(assignment.Questionnaire, rules)
	tracker.Start(task.ID)
	return &FillController{
		session:    NewSession(def, task.ID),
		coord:      coord,
		tracker:    tracker,
		refresher:  refresher,
		assignment: assignment,
		code:       participantCode,
	}
}

func (f *FillController) Session() *Session {
	return f.session
}

// Advance runs one forward step. At the end of the visible sequence it
// submits; on success the answer store and in-progress marker are cleared
// and a task-list refresh is requested. On failure everything is preserved
// so the participant can retry.
func (f *FillController) Advance(ctx context.Context) (FillOutcome, error) {
	result := f.session.Advance()
	if result != AdvanceSubmit {
		return FillOutcome{Result: result}, nil
	}

	outcome, err := f.coord.Submit(ctx, SubmitRequest{
		AssignmentID:    f.assignment.ID,
		ParticipantCode: f.code,
		QuestionnaireID: f.assignment.QuestionnaireID,
		Answers:         f.session.Answers().Payload(),
	})
	if err != nil {
		return FillOutcome{Result: result}, err
	}

	if outcome.Success() {
		f.session.Reset()
		f.tracker.Clear()
		if f.refresher != nil {
			f.refresher.Refresh(ctx)
		}
	}
	return FillOutcome{Result: result, Submitted: &outcome}, nil
}

// Abandon discards the fill without submitting.
func (f *FillController) Abandon() {
	f.session.Reset()
	f.tracker.Clear()
}
