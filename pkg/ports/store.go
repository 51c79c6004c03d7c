package ports

import (
	"context"

	"github.com/aretw0/warden/pkg/domain"
)

// StateStore persists the workflow state. The persisted resource may be
// shared with independent concurrent processes; implementations must
// guarantee that a reader never observes a partial write, but offer no
// cross-process locking beyond that (last writer wins).
type StateStore interface {
	// Load retrieves the persisted state.
	// Returns domain.ErrStateNotFound if nothing was ever persisted, and
	// *domain.CorruptStateError if persisted content cannot be parsed.
	Load(ctx context.Context) (*domain.State, error)

	// Save persists the state atomically.
	Save(ctx context.Context, state *domain.State) error

	// Reset replaces any persisted state with a fresh one at initialMode.
	Reset(ctx context.Context, initialMode string) error
}
