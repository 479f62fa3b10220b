package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/BrendBraeckmans/koheesio/pkg/ports"
)

// Context is a hierarchical configuration container. Nested map[string]any
// values form namespaces addressed by dotted paths ("db.primary.host").
//
// A Context is a snapshot: its keys never change after construction.
// Deriving a variant (Merge, WithOverrides) always produces a new value,
// so a Context handed to a running pipeline can be read concurrently and
// shared between sibling steps without synchronization.
type Context struct {
	values map[string]any
}

// New builds a Context from an ordered list of sources. Later sources take
// precedence key-by-key, per the merge rules documented on Merge.
func New(ctx context.Context, sources ...ports.ContextSource) (*Context, error) {
	merged := map[string]any{}
	for _, src := range sources {
		layer, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load context source %s: %w", src.Name(), err)
		}
		merged = mergeMaps(merged, layer)
	}
	return &Context{values: merged}, nil
}

// FromMap builds a Context from a literal namespace tree.
// The input is deep-copied; the caller keeps ownership of m.
func FromMap(m map[string]any) *Context {
	return &Context{values: deepCopyMap(m)}
}

// Empty returns a Context with no keys.
func Empty() *Context {
	return &Context{values: map[string]any{}}
}

// Resolve looks up a dotted path and returns the value stored there.
// It fails with a *NotFoundError naming the deepest namespace reached
// when any segment is absent or a non-namespace value is traversed.
func (c *Context) Resolve(path string) (any, error) {
	segments := strings.Split(path, ".")
	var current any = c.values
	for i, segment := range segments {
		ns, ok := current.(map[string]any)
		if !ok {
			return nil, &NotFoundError{Path: path, StoppedAt: strings.Join(segments[:i], ".")}
		}
		value, ok := ns[segment]
		if !ok {
			return nil, &NotFoundError{Path: path, StoppedAt: strings.Join(segments[:i], ".")}
		}
		current = value
	}
	return current, nil
}

// Has reports whether the dotted path resolves.
func (c *Context) Has(path string) bool {
	_, err := c.Resolve(path)
	return err == nil
}

// String resolves a path and asserts it holds a string.
func (c *Context) String(path string) (string, error) {
	value, err := c.Resolve(path)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &WrongTypeError{Path: path, Want: "string", Got: value}
	}
	return s, nil
}

// Int resolves a path and asserts it holds an integer. Whole-number
// floats are accepted because JSON decoding produces float64.
func (c *Context) Int(path string) (int, error) {
	value, err := c.Resolve(path)
	if err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int64(v)) {
			return int(v), nil
		}
	}
	return 0, &WrongTypeError{Path: path, Want: "int", Got: value}
}

// Bool resolves a path and asserts it holds a bool.
func (c *Context) Bool(path string) (bool, error) {
	value, err := c.Resolve(path)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, &WrongTypeError{Path: path, Want: "bool", Got: value}
	}
	return b, nil
}

// Decode binds the namespace at path onto out using mapstructure.
// An empty path decodes the whole tree.
func (c *Context) Decode(path string, out any) error {
	var source any = c.values
	if path != "" {
		value, err := c.Resolve(path)
		if err != nil {
			return err
		}
		source = value
	}
	ns, ok := source.(map[string]any)
	if !ok {
		return &WrongTypeError{Path: path, Want: "namespace", Got: source}
	}
	if err := mapstructure.Decode(ns, out); err != nil {
		return fmt.Errorf("decode config at %q: %w", path, err)
	}
	return nil
}

// Values returns a deep copy of the full namespace tree.
func (c *Context) Values() map[string]any {
	return deepCopyMap(c.values)
}

// Keys returns the top-level keys of the Context.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}
