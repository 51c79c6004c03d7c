package warden

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/warden/pkg/adapters/file"
	"github.com/aretw0/warden/pkg/config"
	"github.com/aretw0/warden/pkg/domain"
	"github.com/aretw0/warden/pkg/engine"
	"github.com/aretw0/warden/pkg/policy"
	"github.com/aretw0/warden/pkg/ports"
)

// Version is the library version, overridable at build time.
var Version = "dev"

// Warden bundles a loaded project with a ready engine.
type Warden struct {
	Project *config.Project
	Engine  *engine.Engine
}

type options struct {
	store      ports.StateStore
	engineOpts []engine.Option
}

// Option configures Open.
type Option func(*options)

// WithStore injects a state store, replacing the default file store
// under the project root. Tests typically inject the memory adapter.
func WithStore(store ports.StateStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger attaches a structured logger to the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, engine.WithLogger(logger))
	}
}

// WithHooks attaches lifecycle hooks to the engine.
func WithHooks(hooks domain.Hooks) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, engine.WithHooks(hooks))
	}
}

// Open loads and validates the project at root and wires the engine.
// By default state persists to <root>/.warden/state.json.
func Open(root string, opts ...Option) (*Warden, error) {
	project, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = file.NewStore(filepath.Join(root, file.DefaultPath))
	}

	return &Warden{
		Project: project,
		Engine:  engine.New(project, o.store, o.engineOpts...),
	}, nil
}

// Decide resolves a tool invocation against the current mode's
// permission rules. A corrupt state file is propagated as a typed error
// so the shell can choose to fail closed.
func (w *Warden) Decide(ctx context.Context, tool string, args map[string]any) (policy.Decision, error) {
	status, err := w.Engine.Status(ctx)
	if err != nil {
		return policy.Pass, err
	}
	return policy.Decide(tool, args, w.Project.Permissions(status.CurrentMode)), nil
}

// Instructions returns the current mode's instructions, or nil when the
// mode has none configured.
func (w *Warden) Instructions(ctx context.Context) (*string, error) {
	status, err := w.Engine.Status(ctx)
	if err != nil {
		return nil, err
	}
	return w.Project.Overlay(status.CurrentMode).Instructions, nil
}
