// Package file implements ports.StateStore on the local filesystem.
// This is the production store: one JSON file per project, shared with
// other processes operating on the same checkout.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/warden/pkg/domain"
)

// DefaultPath is the state file location relative to a project root.
var DefaultPath = filepath.Join(".warden", "state.json")

// Store persists the workflow state as a single JSON file.
type Store struct {
	Path string
}

// NewStore creates a file store at the given path. An empty path
// defaults to DefaultPath in the working directory.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Load reads the persisted state. A missing file yields
// domain.ErrStateNotFound; unparsable content yields a
// *domain.CorruptStateError and leaves the file untouched.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, &domain.CorruptStateError{Path: s.Path, Err: err}
	}
	if state.CurrentMode == "" {
		return nil, &domain.CorruptStateError{Path: s.Path, Err: fmt.Errorf("missing currentMode")}
	}
	if state.History == nil {
		state.History = []domain.HistoryEntry{}
	}
	return &state, nil
}

// Save writes the state atomically: marshal to a temp file in the same
// directory, then rename over the target. A concurrent reader observes
// either the previous or the new content, never a partial file.
func (s *Store) Save(ctx context.Context, state *domain.State) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ensure state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commit state file: %w", err)
	}
	return nil
}

// Reset replaces any persisted state with a fresh one at initialMode.
func (s *Store) Reset(ctx context.Context, initialMode string) error {
	return s.Save(ctx, domain.NewState(initialMode))
}
