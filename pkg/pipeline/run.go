package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BrendBraeckmans/koheesio/internal/logging"
	"github.com/BrendBraeckmans/koheesio/pkg/config"
)

type runOptions struct {
	logger *slog.Logger
	hooks  LifecycleHooks
}

// RunOption configures a single Run invocation.
type RunOption func(*runOptions)

// WithLogger sets the structured logger used for step events.
func WithLogger(logger *slog.Logger) RunOption {
	return func(o *runOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks for this invocation.
func WithHooks(hooks LifecycleHooks) RunOption {
	return func(o *runOptions) {
		o.hooks = hooks
	}
}

// Run drives one step through its lifecycle: cancellation check, Validate,
// Execute, Output schema check. All failures come back as the typed errors
// of this package; the step itself only returns its domain error.
//
// Run is the single execution path — Task uses it for every child, and
// callers use it for top-level units.
func Run(ctx context.Context, s Step, cfg *config.Context, input any, opts ...RunOption) (*Output, error) {
	options := runOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&options)
	}
	if cfg == nil {
		cfg = config.Empty()
	}

	name := s.Name()
	logger := options.logger.With("step", name)

	if err := ctx.Err(); err != nil {
		return nil, &CancelledError{Step: name, Err: err}
	}

	if err := s.Validate(cfg); err != nil {
		err = classifyValidation(name, err)
		logger.Warn("step validation failed", "error", err)
		options.hooks.emitError(ctx, name, 0, err)
		return nil, err
	}

	options.hooks.emitStart(ctx, name)
	logger.Debug("step started")
	start := time.Now()

	out, err := s.Execute(ctx, cfg, input)
	elapsed := time.Since(start)
	if err != nil {
		err = classifyExecution(name, err)
		logger.Error("step failed", "error", err, "duration", elapsed)
		options.hooks.emitError(ctx, name, elapsed, err)
		return nil, err
	}

	if out == nil {
		out = NewOutput(name)
	}
	if err := out.Validate(s.Requirements().Outputs); err != nil {
		err = &ExecutionError{Step: name, Err: fmt.Errorf("output schema violation: %w", err)}
		logger.Error("step produced invalid output", "error", err)
		options.hooks.emitError(ctx, name, elapsed, err)
		return nil, err
	}

	logger.Debug("step succeeded", "duration", elapsed)
	options.hooks.emitEnd(ctx, name, elapsed)
	return out, nil
}

// classifyValidation keeps already-typed validation failures intact and
// wraps anything else as the step's precondition failure.
func classifyValidation(step string, err error) error {
	var (
		configErr      *ConfigResolutionError
		validationErr  *ValidationError
		compositionErr *CompositionError
	)
	if errors.As(err, &configErr) || errors.As(err, &validationErr) || errors.As(err, &compositionErr) {
		return err
	}
	return &ValidationError{Step: step, Err: err}
}

// classifyExecution keeps already-typed failures intact and wraps plain
// domain errors as the step's execution failure.
func classifyExecution(step string, err error) error {
	var (
		execErr        *ExecutionError
		compositionErr *CompositionError
		cancelledErr   *CancelledError
		configErr      *ConfigResolutionError
		validationErr  *ValidationError
	)
	if errors.As(err, &execErr) || errors.As(err, &compositionErr) ||
		errors.As(err, &cancelledErr) || errors.As(err, &configErr) || errors.As(err, &validationErr) {
		return err
	}
	return &ExecutionError{Step: step, Err: err}
}
