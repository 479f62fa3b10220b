package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNamed_Idempotent(t *testing.T) {
	a := Named("reader")
	b := Named("reader")
	if a != b {
		t.Error("Named should return the same instance for the same name")
	}

	c := Named("writer")
	if a == c {
		t.Error("Named should return distinct instances for distinct names")
	}
}

func TestNew_Levels(t *testing.T) {
	logger := New(slog.LevelWarn)
	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug should be disabled at warn level")
	}
	if !logger.Enabled(ctx, slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}
