// Package engine executes constrained and forced mode changes against a
// validated workflow definition and an injected state store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/warden/internal/logging"
	"github.com/aretw0/warden/pkg/config"
	"github.com/aretw0/warden/pkg/domain"
	"github.com/aretw0/warden/pkg/ports"
)

// RecentHistoryLimit caps how many history entries Status reports.
const RecentHistoryLimit = 10

// Engine validates and executes mode changes. Every operation loads the
// persisted state, works on it to completion, then persists once; there
// are no partial commits.
type Engine struct {
	project *config.Project
	store   ports.StateStore
	logger  *slog.Logger
	hooks   domain.Hooks
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. Default is a no-op logger so
// library embedders stay silent unless they opt in.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks attaches lifecycle hooks fired after a committed transition.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the timestamp source. Tests use this for
// deterministic history entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine over a loaded project and a state store.
func New(project *config.Project, store ports.StateStore, opts ...Option) *Engine {
	e := &Engine{
		project: project,
		store:   store,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Status is the non-mutating view of the machine.
type Status struct {
	CurrentMode  string                `json:"currentMode"`
	Transitions  []domain.Transition   `json:"transitions"`
	Recent       []domain.HistoryEntry `json:"recent"`
	HistoryTotal int                   `json:"historyTotal"`
}

// Transition executes a constrained mode change: the target must be a
// configured mode, differ from the current one, and be among the current
// mode's declared outgoing edges. On success the history entry is
// appended and the state persisted atomically.
func (e *Engine) Transition(ctx context.Context, target, explanation string) (*domain.State, error) {
	if strings.TrimSpace(target) == "" {
		return nil, &domain.TransitionError{Target: target, Err: fmt.Errorf("%w: target mode", domain.ErrBlankArgument)}
	}
	if strings.TrimSpace(explanation) == "" {
		return nil, &domain.TransitionError{Target: target, Err: fmt.Errorf("%w: explanation", domain.ErrBlankArgument)}
	}

	state, err := e.loadOrDefault(ctx)
	if err != nil {
		// Fail closed: never transition on top of corrupt state.
		return nil, err
	}

	if err := e.checkTarget(state, target); err != nil {
		return nil, err
	}
	if !e.project.Workflow.Allows(state.CurrentMode, target) {
		return nil, &domain.TransitionError{
			Target: target,
			Err: fmt.Errorf("%w: no declared edge %s -> %s",
				domain.ErrEdgeNotDeclared, state.CurrentMode, target),
		}
	}

	return e.commit(ctx, state, target, explanation, false)
}

// Force executes an edge-bypassing mode change for manual override. The
// target must still exist and differ from the current mode; declared
// edges are ignored and the explanation is the fixed forced marker.
func (e *Engine) Force(ctx context.Context, target string) (*domain.State, error) {
	if strings.TrimSpace(target) == "" {
		return nil, &domain.TransitionError{Target: target, Err: fmt.Errorf("%w: target mode", domain.ErrBlankArgument)}
	}

	state, err := e.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	if err := e.checkTarget(state, target); err != nil {
		return nil, err
	}

	return e.commit(ctx, state, target, domain.ForcedExplanation, true)
}

// Status reports the current mode, its declared outgoing transitions and
// the most recent history. A corrupt state file is propagated as a
// *domain.CorruptStateError, never silently replaced by default state.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	state, err := e.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	transitions := e.project.Workflow.TransitionsFrom(state.CurrentMode)
	if transitions == nil {
		// Terminal modes report an empty list, not an error.
		transitions = []domain.Transition{}
	}

	return &Status{
		CurrentMode:  state.CurrentMode,
		Transitions:  transitions,
		Recent:       state.Recent(RecentHistoryLimit),
		HistoryTotal: len(state.History),
	}, nil
}

// Reset replaces the persisted state with a fresh one at the configured
// initial mode, regardless of prior content.
func (e *Engine) Reset(ctx context.Context) (*domain.State, error) {
	initial := e.project.Workflow.Default
	if err := e.store.Reset(ctx, initial); err != nil {
		return nil, err
	}
	e.logger.Info("workflow state reset", "mode", initial)
	return domain.NewState(initial), nil
}

// loadOrDefault reads the persisted state, substituting a fresh state at
// the configured initial mode when nothing was ever persisted. Corrupt
// state is propagated to the caller untouched.
func (e *Engine) loadOrDefault(ctx context.Context) (*domain.State, error) {
	state, err := e.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			return domain.NewState(e.project.Workflow.Default), nil
		}
		return nil, err
	}
	return state, nil
}

// checkTarget enforces the checks shared by both transition paths:
// the target must be configured and differ from the current mode.
func (e *Engine) checkTarget(state *domain.State, target string) error {
	if !e.project.Workflow.HasMode(target) {
		return &domain.TransitionError{Target: target, Err: domain.ErrUnknownMode}
	}
	if state.CurrentMode == target {
		// Intentional hard failure: duplicate calls should surface, not no-op.
		return &domain.TransitionError{Target: target, Err: domain.ErrAlreadyInMode}
	}
	return nil
}

// commit appends the history entry, persists atomically and fires hooks.
func (e *Engine) commit(ctx context.Context, state *domain.State, target, explanation string, forced bool) (*domain.State, error) {
	from := state.CurrentMode
	state.Append(domain.HistoryEntry{
		From:        from,
		To:          target,
		Timestamp:   e.now().UTC(),
		Explanation: explanation,
	})

	if err := e.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("persist transition %s -> %s: %w", from, target, err)
	}

	e.logger.Info("mode changed", "from", from, "to", target, "forced", forced)
	if e.hooks.OnTransition != nil {
		e.hooks.OnTransition(ctx, &domain.TransitionEvent{From: from, To: target, Forced: forced})
	}
	return state, nil
}
