package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
)

type constantStep struct {
	pipeline.Base
	err error
}

func (s *constantStep) Execute(ctx context.Context, cfg *config.Context, input any) (*pipeline.Output, error) {
	if s.err != nil {
		return nil, s.err
	}
	return pipeline.NewOutput(s.Name()), nil
}

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	hooks := metrics.Hooks()

	good := &constantStep{Base: pipeline.NewBase("good", pipeline.Requirements{})}
	bad := &constantStep{Base: pipeline.NewBase("bad", pipeline.Requirements{}), err: errors.New("boom")}

	_, err := pipeline.Run(context.Background(), good, config.Empty(), nil, pipeline.WithHooks(hooks))
	require.NoError(t, err)
	_, err = pipeline.Run(context.Background(), good, config.Empty(), nil, pipeline.WithHooks(hooks))
	require.NoError(t, err)
	_, err = pipeline.Run(context.Background(), bad, config.Empty(), nil, pipeline.WithHooks(hooks))
	require.Error(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.runs.WithLabelValues("good", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.runs.WithLabelValues("bad", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration), "duration is observed for successful runs")
}

func TestMetrics_TaskChildrenAreLabelled(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	task := pipeline.NewTask("etl", []pipeline.Step{
		&constantStep{Base: pipeline.NewBase("extract", pipeline.Requirements{})},
		&constantStep{Base: pipeline.NewBase("load", pipeline.Requirements{})},
	}, pipeline.WithTaskHooks(metrics.Hooks()))

	_, err := pipeline.Run(context.Background(), task, config.Empty(), nil, pipeline.WithHooks(metrics.Hooks()))
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.runs.WithLabelValues("extract", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.runs.WithLabelValues("load", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.runs.WithLabelValues("etl", "success")))
}
