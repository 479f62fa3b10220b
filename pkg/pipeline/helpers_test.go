package pipeline_test

import (
	"context"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/schema"
)

// fakeStep is a configurable leaf step for exercising the composition core.
type fakeStep struct {
	pipeline.Base
	execute    func(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error)
	idempotent bool
}

func (f *fakeStep) Execute(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
	return f.execute(ctx, cfg, input)
}

func (f *fakeStep) Idempotent() bool { return f.idempotent }

// okStep returns a step that records its invocation and emits one field.
func okStep(name string, calls *[]string) *fakeStep {
	return &fakeStep{
		Base: pipeline.NewBase(name, pipeline.Requirements{
			Outputs: schema.Schema{"value": schema.String()},
		}),
		execute: func(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
			if calls != nil {
				*calls = append(*calls, name)
			}
			return pipeline.NewOutput(name).Set("value", name), nil
		},
	}
}

// failStep returns a step whose Execute always fails with cause.
func failStep(name string, cause error, calls *[]string) *fakeStep {
	return &fakeStep{
		Base: pipeline.NewBase(name, pipeline.Requirements{}),
		execute: func(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
			if calls != nil {
				*calls = append(*calls, name)
			}
			return nil, cause
		},
	}
}
