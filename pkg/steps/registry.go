package steps

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
)

// Errors of the step registry.
var (
	// ErrUnknownKind — the step kind is not registered.
	ErrUnknownKind = errors.New("unknown step kind")

	// ErrInvalidParams — the params block could not be bound to the
	// step's parameter struct.
	ErrInvalidParams = errors.New("invalid step params")
)

// Factory builds a concrete step from a name and a declarative params
// block (as parsed from a pipeline definition).
type Factory func(name string, params map[string]any) (pipeline.Step, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a factory for a step kind. A kind registered twice is
// overwritten; the built-in kinds register themselves at init time.
func Register(kind string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = factory
}

// New builds a step of the given kind.
func New(kind, name string, params map[string]any) (pipeline.Step, error) {
	mu.RLock()
	factory, ok := factories[kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return factory(name, params)
}

// Kinds returns all registered step kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// decodeParams binds a params block onto a parameter struct.
func decodeParams(kind string, params map[string]any, out any) error {
	if params == nil {
		params = map[string]any{}
	}
	if err := mapstructure.Decode(params, out); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrInvalidParams, kind, err)
	}
	return nil
}
