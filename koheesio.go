package koheesio

import (
	"context"
	"log/slog"
	"sync"

	"github.com/BrendBraeckmans/koheesio/pkg/adapters/envsource"
	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/observability"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
)

// Version of the framework.
const Version = "0.1.0"

// EnvPrefix scopes the environment variables that feed the default Context.
const EnvPrefix = "KOHEESIO"

var (
	defaultOnce sync.Once
	defaultCtx  *config.Context
)

// DefaultContext returns the process-wide Context, built once from the
// KOHEESIO_* environment variables. Pipelines that need file- or
// redis-backed configuration build their own Context with config.New.
func DefaultContext() *config.Context {
	defaultOnce.Do(func() {
		cfg, err := config.New(context.Background(), envsource.New(EnvPrefix))
		if err != nil {
			// envsource cannot fail on a plain snapshot, but stay safe.
			cfg = config.Empty()
		}
		defaultCtx = cfg
	})
	return defaultCtx
}

// Option configures a top-level Run.
type Option func(*options)

type options struct {
	logger *slog.Logger
	hooks  []pipeline.LifecycleHooks
}

// WithLogger sets the structured logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHooks registers lifecycle hooks for the run. Repeated options fan
// out to every hook set.
func WithHooks(hooks pipeline.LifecycleHooks) Option {
	return func(o *options) { o.hooks = append(o.hooks, hooks) }
}

// WithMetrics registers the Prometheus collectors' hooks for the run.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.hooks = append(o.hooks, m.Hooks()) }
}

// Run executes a step (or task) against a Context. A nil cfg falls back to
// DefaultContext.
func Run(ctx context.Context, s pipeline.Step, cfg *config.Context, input any, opts ...Option) (*pipeline.Output, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if cfg == nil {
		cfg = DefaultContext()
	}
	runOpts := []pipeline.RunOption{}
	if o.logger != nil {
		runOpts = append(runOpts, pipeline.WithLogger(o.logger))
	}
	if len(o.hooks) > 0 {
		runOpts = append(runOpts, pipeline.WithHooks(pipeline.MergeHooks(o.hooks...)))
	}
	return pipeline.Run(ctx, s, cfg, input, runOpts...)
}
