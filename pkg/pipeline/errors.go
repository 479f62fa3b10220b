package pipeline

import (
	"errors"
	"fmt"
)

// ConfigResolutionError reports a required Context path that is absent or
// of the wrong type. It is raised during Validate, before any side effect.
type ConfigResolutionError struct {
	Step string
	Path string
	Err  error
}

func (e *ConfigResolutionError) Error() string {
	return fmt.Sprintf("step %q: required config %q: %v", e.Step, e.Path, e.Err)
}

func (e *ConfigResolutionError) Unwrap() error { return e.Err }

// ValidationError reports a step's own precondition failing on already
// resolved configuration or input.
type ValidationError struct {
	Step string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %q: precondition failed: %v", e.Step, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ExecutionError reports domain logic failing during Execute.
type ExecutionError struct {
	Step string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("step %q: execution failed: %v", e.Step, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// CompositionError wraps a child's failure with its identity inside the
// enclosing task: name, 1-based position, the children already completed,
// and (when tracing) their Outputs for diagnosis.
type CompositionError struct {
	Task      string
	Child     string
	Position  int
	Completed []string
	Trace     []TraceEntry
	Err       error
}

func (e *CompositionError) Error() string {
	if len(e.Completed) == 0 {
		return fmt.Sprintf("task %q: child %q at position %d failed: %v", e.Task, e.Child, e.Position, e.Err)
	}
	return fmt.Sprintf("task %q: child %q at position %d failed after %v: %v",
		e.Task, e.Child, e.Position, e.Completed, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

// CancelledError reports an execution aborted by an external cancellation
// signal between children. It wraps the context error, so
// errors.Is(err, context.Canceled) holds.
type CancelledError struct {
	Step      string
	Completed []string
	Err       error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("execution of %q cancelled: %v", e.Step, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// Origin walks an error chain and returns the name of the deepest unit
// that failed — the originating leaf step for nested compositions.
// Returns "" when the chain carries no step identity.
func Origin(err error) string {
	origin := ""
	for err != nil {
		switch e := err.(type) {
		case *CompositionError:
			origin = e.Child
		case *ConfigResolutionError:
			origin = e.Step
		case *ValidationError:
			origin = e.Step
		case *ExecutionError:
			origin = e.Step
		case *CancelledError:
			origin = e.Step
		}
		err = errors.Unwrap(err)
	}
	return origin
}
