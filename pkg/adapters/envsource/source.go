// Package envsource derives a Context layer from environment variables.
//
// Variables are scoped by prefix and nested with double underscores:
//
//	KOHEESIO_DB__HOST=localhost  ->  {db: {host: "localhost"}}
//	KOHEESIO_DB__PORT=5432       ->  {db: {port: 5432}}
//
// Values are YAML-parsed, so numbers and booleans arrive typed.
package envsource

import (
	"context"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source implements ports.ContextSource over the process environment.
type Source struct {
	prefix  string
	environ func() []string
}

// Option configures the source.
type Option func(*Source)

// WithEnviron overrides the environment snapshot function, for tests.
func WithEnviron(environ func() []string) Option {
	return func(s *Source) { s.environ = environ }
}

// New creates an environment-backed context source scoped to prefix
// (matched as "PREFIX_", case-sensitive).
func New(prefix string, opts ...Option) *Source {
	s := &Source{prefix: prefix, environ: os.Environ}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string { return "env:" + s.prefix }

// Load snapshots the matching environment variables into a namespace tree.
func (s *Source) Load(ctx context.Context) (map[string]any, error) {
	values := map[string]any{}
	scope := s.prefix + "_"
	for _, entry := range s.environ() {
		key, raw, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, scope) {
			continue
		}
		segments := strings.Split(strings.TrimPrefix(key, scope), "__")
		for i, segment := range segments {
			segments[i] = strings.ToLower(segment)
		}
		insert(values, segments, parseScalar(raw))
	}
	return values, nil
}

// insert walks/creates namespaces for all but the last segment. A scalar
// already stored where a namespace is needed is replaced; the environment
// has no ordering to honor, so deeper keys win.
func insert(tree map[string]any, segments []string, value any) {
	for _, segment := range segments[:len(segments)-1] {
		child, ok := tree[segment].(map[string]any)
		if !ok {
			child = map[string]any{}
			tree[segment] = child
		}
		tree = child
	}
	tree[segments[len(segments)-1]] = value
}

// parseScalar YAML-decodes a raw value so "5432" becomes an int and
// "true" a bool; anything unparsable stays a string.
func parseScalar(raw string) any {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
		return raw
	}
	return value
}
