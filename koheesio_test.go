package koheesio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrendBraeckmans/koheesio"
	"github.com/BrendBraeckmans/koheesio/internal/logging"
	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/steps"
)

func TestRun_UsesGivenContext(t *testing.T) {
	transform, err := steps.NewTemplateTransform("greet", "hi {{.Config.user}}")
	require.NoError(t, err)

	cfg := config.FromMap(map[string]any{"user": "ada"})
	out, err := koheesio.Run(context.Background(), transform, cfg, nil,
		koheesio.WithLogger(logging.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, "hi ada", out.Field("result"))
}

func TestRun_NilContextFallsBackToDefault(t *testing.T) {
	transform, err := steps.NewTemplateTransform("noop", "ok")
	require.NoError(t, err)

	out, err := koheesio.Run(context.Background(), transform, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Field("result"))
}

func TestRun_MergesHookSets(t *testing.T) {
	var first, second []string
	record := func(into *[]string) pipeline.LifecycleHooks {
		return pipeline.LifecycleHooks{
			OnStepEnd: func(_ context.Context, e *pipeline.StepEvent) {
				*into = append(*into, e.Step)
			},
		}
	}

	transform, err := steps.NewTemplateTransform("noop", "ok")
	require.NoError(t, err)

	_, err = koheesio.Run(context.Background(), transform, config.Empty(), nil,
		koheesio.WithHooks(record(&first)),
		koheesio.WithHooks(record(&second)))
	require.NoError(t, err)

	assert.Equal(t, []string{"noop"}, first)
	assert.Equal(t, []string{"noop"}, second)
}

func TestDefaultContext_IsStable(t *testing.T) {
	assert.Same(t, koheesio.DefaultContext(), koheesio.DefaultContext())
}
