package ports

import "context"

// ContextSource supplies one layer of configuration for building a
// config.Context. Sources are loaded in caller-declared order; later
// sources take precedence during the merge.
type ContextSource interface {
	// Name identifies the source in diagnostics (e.g. "yaml:conf/base.yaml").
	Name() string

	// Load materializes the source into a namespace tree. Nested
	// map[string]any values are treated as namespaces. Load must not
	// retain the returned map.
	Load(ctx context.Context) (map[string]any, error)
}
