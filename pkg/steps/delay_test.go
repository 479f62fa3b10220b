package steps_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/steps"
)

func TestDelay(t *testing.T) {
	delay := steps.NewDelay("pause", 10*time.Millisecond)
	assert.True(t, pipeline.IsIdempotent(delay))

	started := time.Now()
	out, err := pipeline.Run(context.Background(), delay, config.Empty(), nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 10*time.Millisecond)
	assert.GreaterOrEqual(t, out.Field("elapsed_ms").(int), 10)
}

func TestDelay_Cancellation(t *testing.T) {
	delay := steps.NewDelay("pause", time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	started := time.Now()
	_, err := pipeline.Run(ctx, delay, config.Empty(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(started), time.Second, "cancellation interrupts the wait")
}

func TestDelay_NegativeDuration(t *testing.T) {
	delay := steps.NewDelay("pause", -time.Second)
	err := delay.Validate(config.Empty())

	var verr *pipeline.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDelay_FromRegistry(t *testing.T) {
	_, err := steps.New(steps.KindDelay, "pause", map[string]any{"duration": "not-a-duration"})
	assert.Error(t, err)
}
