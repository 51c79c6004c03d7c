// Package redis implements ports.StateStore on Redis, for hosts that
// already run their agent fleet against a shared Redis instance.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/warden/pkg/domain"
)

// Store implements ports.StateStore using a single Redis key. SET is
// atomic, which gives the same reader guarantee as the file store's
// rename: full previous value or full new value, never a partial one.
type Store struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Store)

// WithKey overrides the Redis key holding the state.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithTTL sets an expiration on the state key. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    "warden:state",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Load retrieves the state from Redis.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var state domain.State
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, &domain.CorruptStateError{Path: s.key, Err: err}
	}
	if state.History == nil {
		state.History = []domain.HistoryEntry{}
	}
	return &state, nil
}

// Save persists the state under the configured key.
func (s *Store) Save(ctx context.Context, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Reset replaces any persisted state with a fresh one at initialMode.
func (s *Store) Reset(ctx context.Context, initialMode string) error {
	return s.Save(ctx, domain.NewState(initialMode))
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
