package client

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialworks/ediary-service/internal/engine"
)

type stubAPI struct {
	mu              sync.Mutex
	assignments     []engine.Assignment
	tasks           []engine.Task
	assignmentsErr  error
	tasksErr        error
	blockAssignment chan struct{}
	entered         chan struct{}
}

func (s *stubAPI) FetchAssignments(ctx context.Context, code string) ([]engine.Assignment, error) {
	s.mu.Lock()
	block := s.blockAssignment
	s.blockAssignment = nil
	if s.entered != nil {
		close(s.entered)
		s.entered = nil
	}
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return s.assignments, s.assignmentsErr
}

func (s *stubAPI) FetchTasks(ctx context.Context, code string) ([]engine.Task, error) {
	return s.tasks, s.tasksErr
}

func loaderLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestLoader_Load(t *testing.T) {
	api := &stubAPI{
		assignments: []engine.Assignment{{ID: 1, QuestionnaireID: 7}},
		tasks:       []engine.Task{{ID: 42, Type: "fill_form"}},
	}
	l := NewLoader(api, "P001", loaderLogger())

	snap, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Assignments, 1)
	assert.Len(t, snap.Tasks, 1)
	assert.False(t, snap.TasksDegraded)
	assert.Same(t, snap, l.Current())
}

func TestLoader_TaskFetchFailureDegrades(t *testing.T) {
	api := &stubAPI{
		assignments: []engine.Assignment{{ID: 1, QuestionnaireID: 7}},
		tasksErr:    errors.New("boom"),
	}
	l := NewLoader(api, "P001", loaderLogger())

	snap, err := l.Load(context.Background())
	require.NoError(t, err, "task failure must not block assignment loading")
	assert.Len(t, snap.Assignments, 1)
	assert.Empty(t, snap.Tasks)
	assert.True(t, snap.TasksDegraded)
}

func TestLoader_AssignmentFetchFailureFailsLoad(t *testing.T) {
	api := &stubAPI{assignmentsErr: errors.New("unreachable")}
	l := NewLoader(api, "P001", loaderLogger())

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, l.Current())
}

func TestLoader_StaleResponseDiscarded(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{})
	api := &stubAPI{
		assignments:     []engine.Assignment{{ID: 1}},
		blockAssignment: block,
		entered:         entered,
	}
	l := NewLoader(api, "P001", loaderLogger())

	type result struct {
		snap *Snapshot
		err  error
	}
	firstDone := make(chan result, 1)
	go func() {
		snap, err := l.Load(context.Background())
		firstDone <- result{snap, err}
	}()

	// Wait until the first load is in flight, then let a newer load win.
	<-entered
	snap2, err := l.Load(context.Background())
	require.NoError(t, err)

	close(block)
	first := <-firstDone
	assert.ErrorIs(t, first.err, ErrStaleLoad)
	assert.Same(t, snap2, l.Current(), "the newer snapshot stays applied")
}
