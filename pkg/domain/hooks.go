package domain

import "context"

// TransitionEvent describes one committed mode change.
type TransitionEvent struct {
	From   string
	To     string
	Forced bool
}

// Hooks are optional lifecycle callbacks fired by the engine after a
// transition has been persisted. Hosts use them for logging or metrics;
// hook panics are not recovered, keep them cheap.
type Hooks struct {
	OnTransition func(ctx context.Context, e *TransitionEvent)
}
