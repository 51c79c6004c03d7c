package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/warden/pkg/adapters/memory"
	"github.com/aretw0/warden/pkg/config"
	"github.com/aretw0/warden/pkg/domain"
	"github.com/aretw0/warden/pkg/engine"
	"github.com/aretw0/warden/pkg/ports"
)

// testProject builds the canonical cyclic fixture:
// idle -> test-dev -> feature-dev -> idle, plus a terminal "done" mode
// reachable only by force.
func testProject() *config.Project {
	return &config.Project{
		Workflow: &domain.Workflow{
			Name:    "dev-loop",
			Default: "idle",
			Modes: map[string]domain.Mode{
				"idle": {Transitions: []domain.Transition{
					{To: "test-dev", Constraint: "Describe the bug and write a failing test."},
				}},
				"test-dev": {Transitions: []domain.Transition{
					{To: "feature-dev", Constraint: "The failing test is committed."},
				}},
				"feature-dev": {Transitions: []domain.Transition{
					{To: "idle", Constraint: "All tests pass."},
				}},
				"done": {},
			},
		},
		Overlays: map[string]domain.Overlay{},
	}
}

func newTestEngine(t *testing.T, opts ...engine.Option) (*engine.Engine, ports.StateStore) {
	t.Helper()
	store := memory.NewStore()
	return engine.New(testProject(), store, opts...), store
}

func TestTransition_HappyPath(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	state, err := eng.Transition(ctx, "test-dev", "bug described")
	require.NoError(t, err)
	assert.Equal(t, "test-dev", state.CurrentMode)
	require.Len(t, state.History, 1)
	assert.Equal(t, "idle", state.History[0].From)
	assert.Equal(t, "test-dev", state.History[0].To)
	assert.Equal(t, "bug described", state.History[0].Explanation)
	assert.False(t, state.History[0].Forced())
}

func TestTransition_BlankArguments(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Transition(ctx, "", "why")
	assert.ErrorIs(t, err, domain.ErrBlankArgument)

	_, err = eng.Transition(ctx, "test-dev", "   ")
	assert.ErrorIs(t, err, domain.ErrBlankArgument)
}

func TestTransition_UnknownTarget(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.Transition(context.Background(), "shipping", "because")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	var rejected *domain.TransitionError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "shipping", rejected.Target)
}

func TestTransition_AlreadyInMode(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Transition(ctx, "test-dev", "first")
	require.NoError(t, err)

	// Repeating the identical successful call fails rather than no-ops.
	_, err = eng.Transition(ctx, "test-dev", "second")
	assert.ErrorIs(t, err, domain.ErrAlreadyInMode)
}

func TestTransition_UndeclaredEdge(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.Transition(context.Background(), "feature-dev", "skipping tests")
	assert.ErrorIs(t, err, domain.ErrEdgeNotDeclared)
}

func TestTransition_RejectionDoesNotPersist(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Transition(ctx, "feature-dev", "skipping tests")
	require.Error(t, err)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStateNotFound, "rejected transition must not create state")
}

func TestForce_BypassesEdges(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	// No declared edge idle -> done, force reaches it anyway.
	state, err := eng.Force(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, "done", state.CurrentMode)
	require.Len(t, state.History, 1)
	assert.Equal(t, domain.ForcedExplanation, state.History[0].Explanation)
	assert.True(t, state.History[0].Forced())
}

func TestForce_StillChecksExistenceAndIdentity(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Force(ctx, "nowhere")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	_, err = eng.Force(ctx, "idle")
	assert.ErrorIs(t, err, domain.ErrAlreadyInMode)
}

func TestStatus_FreshProject(t *testing.T) {
	eng, _ := newTestEngine(t)

	status, err := eng.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "idle", status.CurrentMode)
	assert.Empty(t, status.Recent)
	assert.Equal(t, 0, status.HistoryTotal)
	require.Len(t, status.Transitions, 1)
	assert.Equal(t, "test-dev", status.Transitions[0].To)
}

func TestStatus_TerminalModeHasEmptyTransitions(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Force(ctx, "done")
	require.NoError(t, err)

	status, err := eng.Status(ctx)
	require.NoError(t, err)
	assert.NotNil(t, status.Transitions)
	assert.Empty(t, status.Transitions)
}

func TestStatus_CapsRecentHistory(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	// Walk the declared cycle enough times to exceed the cap.
	cycle := []string{"test-dev", "feature-dev", "idle"}
	for i := 0; i < 5; i++ {
		for _, target := range cycle {
			_, err := eng.Transition(ctx, target, "lap")
			require.NoError(t, err)
		}
	}

	status, err := eng.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, status.HistoryTotal)
	require.Len(t, status.Recent, engine.RecentHistoryLimit)

	// Most recent entries, original order: the window ends at the last lap.
	assert.Equal(t, "idle", status.Recent[len(status.Recent)-1].To)
	for i := 1; i < len(status.Recent); i++ {
		assert.False(t, status.Recent[i].Timestamp.Before(status.Recent[i-1].Timestamp))
	}
}

func TestStatus_CorruptStateIsNotMasked(t *testing.T) {
	store := corruptStore{}
	eng := engine.New(testProject(), store)

	_, err := eng.Status(context.Background())
	var corrupt *domain.CorruptStateError
	assert.ErrorAs(t, err, &corrupt)
}

func TestTransition_FailsClosedOnCorruptState(t *testing.T) {
	store := corruptStore{}
	eng := engine.New(testProject(), store)

	_, err := eng.Transition(context.Background(), "test-dev", "why")
	var corrupt *domain.CorruptStateError
	assert.ErrorAs(t, err, &corrupt)
}

func TestReset_DiscardsPriorState(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Transition(ctx, "test-dev", "bug described")
	require.NoError(t, err)

	state, err := eng.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "idle", state.CurrentMode)
	assert.Empty(t, state.History)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "idle", loaded.CurrentMode)
	assert.Empty(t, loaded.History)
}

func TestHooks_FireAfterCommit(t *testing.T) {
	var events []*domain.TransitionEvent
	hooks := domain.Hooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			events = append(events, e)
		},
	}

	eng, _ := newTestEngine(t, engine.WithHooks(hooks))
	ctx := context.Background()

	_, err := eng.Transition(ctx, "test-dev", "bug described")
	require.NoError(t, err)
	_, err = eng.Force(ctx, "done")
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "test-dev", events[0].To)
	assert.False(t, events[0].Forced)
	assert.Equal(t, "done", events[1].To)
	assert.True(t, events[1].Forced)
}

func TestClockInjection(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	eng, _ := newTestEngine(t, engine.WithClock(func() time.Time { return fixed }))

	state, err := eng.Transition(context.Background(), "test-dev", "bug described")
	require.NoError(t, err)
	assert.Equal(t, fixed, state.History[0].Timestamp)
}

// corruptStore always reports unparsable persisted state.
type corruptStore struct{}

func (corruptStore) Load(ctx context.Context) (*domain.State, error) {
	return nil, &domain.CorruptStateError{Path: "state.json", Err: errors.New("unexpected end of JSON input")}
}

func (corruptStore) Save(ctx context.Context, state *domain.State) error { return nil }

func (corruptStore) Reset(ctx context.Context, initialMode string) error { return nil }
