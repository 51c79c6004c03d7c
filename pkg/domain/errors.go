package domain

import (
	"errors"
	"fmt"
)

// ErrStateNotFound is returned by a state store when no state has ever
// been persisted. Callers substitute the configured default mode.
var ErrStateNotFound = errors.New("workflow state not found")

// Sentinel causes for transition rejections. Wrapped by TransitionError
// so callers can branch with errors.Is.
var (
	ErrBlankArgument   = errors.New("blank argument")
	ErrUnknownMode     = errors.New("unknown mode")
	ErrAlreadyInMode   = errors.New("already in mode")
	ErrEdgeNotDeclared = errors.New("transition not declared")
)

// ValidationError reports a structural or referential defect in the
// workflow definition. Always fatal at load time.
type ValidationError struct {
	Field  string // offending field, e.g. "default" or "modes.idle.transitions[0].to"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid workflow: %s: %s", e.Field, e.Reason)
}

// CorruptStateError reports that persisted state exists but cannot be
// parsed. The store never defaults past it; callers choose between
// fail-closed (mutating paths) and degraded-but-reportable (status).
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt workflow state at %s: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

// TransitionError reports a rejected mode change. It is a normal,
// expected outcome surfaced verbatim to the requester.
type TransitionError struct {
	Target string
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition to %q rejected: %v", e.Target, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
