// Package redissource loads a Context layer from a JSON document stored
// in Redis, for configuration that is managed centrally and read by many
// pipeline processes.
package redissource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// ErrDocumentNotFound is returned when the configured key does not exist.
var ErrDocumentNotFound = errors.New("config document not found")

// Source implements ports.ContextSource over a Redis key holding a JSON
// object.
type Source struct {
	client   *backend.Client
	key      string
	optional bool
}

// Option configures the source.
type Option func(*Source)

// WithOptional makes a missing key load as an empty layer instead of
// failing.
func WithOptional() Option {
	return func(s *Source) { s.optional = true }
}

// New creates a Redis-backed context source from connection settings.
func New(address, password string, db int, key string, opts ...Option) *Source {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, key, opts...)
}

// NewFromClient creates a Redis-backed context source from an existing
// client. The caller keeps ownership of the client.
func NewFromClient(client *backend.Client, key string, opts ...Option) *Source {
	s := &Source{client: client, key: key}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string { return "redis:" + s.key }

// Load fetches and decodes the JSON document at the configured key.
func (s *Source) Load(ctx context.Context) (map[string]any, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == backend.Nil {
			if s.optional {
				return map[string]any{}, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, s.key)
		}
		return nil, fmt.Errorf("failed to get config from redis: %w", err)
	}

	values := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode config document %s: %w", s.key, err)
	}
	return values, nil
}

// Close closes the underlying redis client.
func (s *Source) Close() error {
	return s.client.Close()
}
