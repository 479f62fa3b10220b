package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout free for pipeline results).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var named sync.Map // name -> *slog.Logger

// Named returns the logger handle for a component name. The first call
// derives a child of the process default logger tagged with the name;
// later calls with the same name return the same instance.
func Named(name string) *slog.Logger {
	if l, ok := named.Load(name); ok {
		return l.(*slog.Logger)
	}
	l := slog.Default().With("component", name)
	actual, _ := named.LoadOrStore(name, l)
	return actual.(*slog.Logger)
}
