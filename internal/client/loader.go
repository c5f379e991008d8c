package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/trialworks/ediary-service/internal/engine"
)

// ErrStaleLoad is returned when a load finished after a newer load had
// already been applied; its response was discarded.
var ErrStaleLoad = errors.New("stale load response discarded")

// API is the subset of the participant client the loader needs.
type API interface {
	FetchAssignments(ctx context.Context, participantCode string) ([]engine.Assignment, error)
	FetchTasks(ctx context.Context, participantCode string) ([]engine.Task, error)
}

// Snapshot is one coherent view of the participant's assignments and tasks.
type Snapshot struct {
	Generation  uint64
	Assignments []engine.Assignment
	Tasks       []engine.Task
	// TasksDegraded marks a snapshot whose task fetch failed; assignments are
	// still valid and the task list is empty rather than the whole load
	// failing.
	TasksDegraded bool
}

// Loader serialises snapshot application. Every load is tagged with a
// monotonically increasing generation; a response that arrives after a newer
// one has been applied is discarded, so no stale recomputation reaches the
// caller.
type Loader struct {
	api             API
	logger          *slog.Logger
	participantCode string

	mu      sync.Mutex
	nextGen uint64
	applied uint64
	current *Snapshot
}

func NewLoader(api API, participantCode string, logger *slog.Logger) *Loader {
	return &Loader{
		api:             api,
		logger:          logger,
		participantCode: participantCode,
	}
}

// Load fetches assignments and tasks and applies the result unless a newer
// load won the race. Assignment failure fails the load; task failure degrades
// to an empty task list.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	l.nextGen++
	gen := l.nextGen
	l.mu.Unlock()

	assignments, err := l.api.FetchAssignments(ctx, l.participantCode)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Generation: gen, Assignments: assignments}
	tasks, err := l.api.FetchTasks(ctx, l.participantCode)
	if err != nil {
		l.logger.Warn("task fetch failed, continuing with empty task list", "error", err)
		snap.TasksDegraded = true
	} else {
		snap.Tasks = tasks
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen < l.applied {
		return nil, ErrStaleLoad
	}
	l.applied = gen
	l.current = snap
	return snap, nil
}

// Refresh implements engine.Refresher: a best-effort reload after a
// successful submission.
func (l *Loader) Refresh(ctx context.Context) {
	if _, err := l.Load(ctx); err != nil && !errors.Is(err, ErrStaleLoad) {
		l.logger.Warn("task list refresh failed", "error", err)
	}
}

// Current returns the most recently applied snapshot, or nil before the
// first successful load.
func (l *Loader) Current() *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
