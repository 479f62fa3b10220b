package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
)

func TestMergeHooks_FansOut(t *testing.T) {
	var order []string
	first := pipeline.LifecycleHooks{
		OnStepStart: func(context.Context, *pipeline.StepEvent) { order = append(order, "first") },
	}
	second := pipeline.LifecycleHooks{
		OnStepStart: func(context.Context, *pipeline.StepEvent) { order = append(order, "second") },
		OnStepEnd:   func(context.Context, *pipeline.StepEvent) { order = append(order, "end") },
	}

	merged := pipeline.MergeHooks(first, second)

	_, err := pipeline.Run(context.Background(), okStep("s", nil), config.Empty(), nil, pipeline.WithHooks(merged))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "end"}, order)
}
