// Package yamlsource loads a Context layer from a YAML or JSON file.
package yamlsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source implements ports.ContextSource for a single configuration file.
type Source struct {
	path     string
	optional bool
}

// Option configures the source.
type Option func(*Source)

// WithOptional makes a missing file load as an empty layer instead of
// failing, for optional override files (e.g. local.yaml).
func WithOptional() Option {
	return func(s *Source) { s.optional = true }
}

// New creates a file-backed context source. The extension decides the
// parser: ".json" uses JSON, everything else defaults to YAML.
func New(path string, opts ...Option) *Source {
	s := &Source{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string { return "yaml:" + s.path }

// Load reads and parses the file into a namespace tree.
func (s *Source) Load(ctx context.Context) (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) && s.optional {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	values := map[string]any{}
	ext := strings.ToLower(filepath.Ext(s.path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	}

	return values, nil
}
