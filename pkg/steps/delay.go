package steps

import (
	"context"
	"errors"
	"time"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/schema"
)

// KindDelay is the registry kind of Delay.
const KindDelay = "delay"

func init() {
	Register(KindDelay, func(name string, params map[string]any) (pipeline.Step, error) {
		var p struct {
			Duration string `mapstructure:"duration"`
		}
		if err := decodeParams(KindDelay, params, &p); err != nil {
			return nil, err
		}
		d, err := time.ParseDuration(p.Duration)
		if err != nil {
			return nil, err
		}
		return NewDelay(name, d), nil
	})
}

// Delay sleeps for a fixed duration, honoring context cancellation, and
// reports the waited time as "elapsed_ms". Useful for pacing pipelines
// against rate-limited systems.
type Delay struct {
	pipeline.Base
	Duration time.Duration
}

// NewDelay creates a delay step.
func NewDelay(name string, d time.Duration) *Delay {
	return &Delay{
		Base: pipeline.NewBase(name, pipeline.Requirements{
			Outputs: schema.Schema{"elapsed_ms": schema.Int()},
		}),
		Duration: d,
	}
}

func (s *Delay) Idempotent() bool { return true }

func (s *Delay) Validate(cfg *config.Context) error {
	if err := s.Base.Validate(cfg); err != nil {
		return err
	}
	if s.Duration < 0 {
		return &pipeline.ValidationError{Step: s.Name(), Err: errors.New("duration must not be negative")}
	}
	return nil
}

func (s *Delay) Execute(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
	started := time.Now()
	timer := time.NewTimer(s.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return pipeline.NewOutput(s.Name()).
		Set("elapsed_ms", int(time.Since(started).Milliseconds())), nil
}
