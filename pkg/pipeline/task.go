package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/BrendBraeckmans/koheesio/internal/logging"
	"github.com/BrendBraeckmans/koheesio/pkg/config"
)

// TraceEntry records one completed child inside a task execution.
type TraceEntry struct {
	Position int           `json:"position"` // 1-based
	Step     string        `json:"step"`
	Output   *Output       `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Task is an ordered composition of Steps that itself satisfies the Step
// contract. Children run strictly sequentially in declared order; the
// working artifact threads from one child's Output into the next child's
// input. The first failing child aborts the whole task — later children
// never run and side effects of completed children are not rolled back.
type Task struct {
	name       string
	children   []Step
	chainField string
	trace      bool
	logger     *slog.Logger
	hooks      LifecycleHooks
}

// TaskOption configures a Task at construction.
type TaskOption func(*Task)

// WithTrace records every child's Output in the task-level result
// (fields "trace" and "run_id") and inside composition errors.
func WithTrace() TaskOption {
	return func(t *Task) { t.trace = true }
}

// WithChainField narrows the working artifact to a single named Output
// field: after each child, the artifact becomes that field's value when
// present instead of the whole Output.
func WithChainField(name string) TaskOption {
	return func(t *Task) { t.chainField = name }
}

// WithTaskLogger sets the structured logger for this task's executions.
func WithTaskLogger(logger *slog.Logger) TaskOption {
	return func(t *Task) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithTaskHooks registers lifecycle hooks applied to every child run.
func WithTaskHooks(hooks LifecycleHooks) TaskOption {
	return func(t *Task) { t.hooks = hooks }
}

// NewTask builds a task over an ordered list of children. The order is
// fixed at construction and defines execution order.
func NewTask(name string, children []Step, opts ...TaskOption) *Task {
	t := &Task{
		name:     name,
		children: slices.Clone(children),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Task) Name() string { return t.name }

// Children returns the ordered child list.
func (t *Task) Children() []Step { return slices.Clone(t.children) }

// Requirements aggregates the children's contracts: the union of their
// config paths (first declaration of a path wins) and the last child's
// Output schema, which is what the task-level Output carries.
func (t *Task) Requirements() Requirements {
	var reqs Requirements
	seen := map[string]bool{}
	for _, child := range t.children {
		for _, req := range child.Requirements().Config {
			if seen[req.Path] {
				continue
			}
			seen[req.Path] = true
			reqs.Config = append(reqs.Config, req)
		}
	}
	if len(t.children) > 0 {
		reqs.Outputs = t.children[len(t.children)-1].Requirements().Outputs
	}
	return reqs
}

// Validate checks every child against cfg, in order, wrapping the first
// failure with the child's identity.
func (t *Task) Validate(cfg *config.Context) error {
	for i, child := range t.children {
		if err := child.Validate(cfg); err != nil {
			return &CompositionError{
				Task:     t.name,
				Child:    child.Name(),
				Position: i + 1,
				Err:      err,
			}
		}
	}
	return nil
}

// Execute runs the children in declared order. Each child is validated
// immediately before it executes; any failure aborts the task with a
// CompositionError naming the child and listing the children already
// completed. Cancellation is checked between children and surfaces as a
// CancelledError distinct from domain failures.
//
// On success the task Output carries the last child's fields, plus the
// execution trace when tracing is enabled.
func (t *Task) Execute(ctx context.Context, cfg *config.Context, input any) (*Output, error) {
	runID := uuid.NewString()
	logger := t.logger.With("task", t.name, "run_id", runID)
	if cfg == nil {
		cfg = config.Empty()
	}

	artifact := input
	var (
		completed []string
		entries   []TraceEntry
		last      *Output
	)

	logger.Info("task started", "children", len(t.children))

	for i, child := range t.children {
		if err := ctx.Err(); err != nil {
			logger.Warn("task cancelled", "next_child", child.Name(), "error", err)
			return nil, &CancelledError{Step: t.name, Completed: slices.Clone(completed), Err: err}
		}

		position := i + 1
		start := time.Now()
		out, err := Run(ctx, child, cfg, artifact, WithLogger(logger), WithHooks(t.hooks))
		if err != nil {
			// Cancellation stays distinct from domain failure.
			var cancelled *CancelledError
			if errors.As(err, &cancelled) {
				return nil, err
			}
			return nil, &CompositionError{
				Task:      t.name,
				Child:     child.Name(),
				Position:  position,
				Completed: slices.Clone(completed),
				Trace:     slices.Clone(entries),
				Err:       err,
			}
		}

		completed = append(completed, child.Name())
		if t.trace {
			entries = append(entries, TraceEntry{
				Position: position,
				Step:     child.Name(),
				Output:   out,
				Duration: time.Since(start),
			})
		}

		last = out
		artifact = out
		if t.chainField != "" {
			if value, ok := out.Get(t.chainField); ok {
				artifact = value
			}
		}
	}

	result := NewOutput(t.name)
	if last != nil {
		for name, value := range last.Fields() {
			result.Set(name, value)
		}
	}
	if t.trace {
		result.Set("trace", entries)
		result.Set("run_id", runID)
	}

	logger.Info("task succeeded", "completed", len(completed))
	return result, nil
}
