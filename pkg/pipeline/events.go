package pipeline

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepStart EventType = "step_start"
	EventStepEnd   EventType = "step_end"
	EventStepError EventType = "step_error"
)

// StepEvent describes one lifecycle transition of a step execution.
type StepEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	Step      string        `json:"step"`
	Duration  time.Duration `json:"duration,omitempty"` // zero for start events
	Err       error         `json:"-"`                  // set on error events
}

// LifecycleHooks defines callbacks for execution observability.
// Nil callbacks are skipped. Hooks run synchronously on the execution
// path and should return quickly.
type LifecycleHooks struct {
	OnStepStart func(context.Context, *StepEvent)
	OnStepEnd   func(context.Context, *StepEvent)
	OnStepError func(context.Context, *StepEvent)
}

// MergeHooks combines hook sets; each callback fans out to every non-nil
// callback in declaration order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range hooks {
		merged = merge2(merged, h)
	}
	return merged
}

func merge2(a, b LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepStart: chain(a.OnStepStart, b.OnStepStart),
		OnStepEnd:   chain(a.OnStepEnd, b.OnStepEnd),
		OnStepError: chain(a.OnStepError, b.OnStepError),
	}
}

func chain(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func (h LifecycleHooks) emitStart(ctx context.Context, step string) {
	if h.OnStepStart == nil {
		return
	}
	h.OnStepStart(ctx, &StepEvent{
		Timestamp: time.Now(),
		Type:      EventStepStart,
		Step:      step,
	})
}

func (h LifecycleHooks) emitEnd(ctx context.Context, step string, duration time.Duration) {
	if h.OnStepEnd == nil {
		return
	}
	h.OnStepEnd(ctx, &StepEvent{
		Timestamp: time.Now(),
		Type:      EventStepEnd,
		Step:      step,
		Duration:  duration,
	})
}

func (h LifecycleHooks) emitError(ctx context.Context, step string, duration time.Duration, err error) {
	if h.OnStepError == nil {
		return
	}
	h.OnStepError(ctx, &StepEvent{
		Timestamp: time.Now(),
		Type:      EventStepError,
		Step:      step,
		Duration:  duration,
		Err:       err,
	})
}
