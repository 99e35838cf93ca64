package checker

import (
	"context"
	"log/slog"
)

// promoteDebug raises debug records to info so they survive the default
// level when the user enables debugMode.
type promoteDebug struct {
	slog.Handler
}

func (h promoteDebug) Enabled(ctx context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		level = slog.LevelInfo
	}
	return h.Handler.Enabled(ctx, level)
}

func (h promoteDebug) Handle(ctx context.Context, r slog.Record) error {
	if r.Level == slog.LevelDebug {
		r.Level = slog.LevelInfo
	}
	return h.Handler.Handle(ctx, r)
}

func (h promoteDebug) WithAttrs(attrs []slog.Attr) slog.Handler {
	return promoteDebug{h.Handler.WithAttrs(attrs)}
}

func (h promoteDebug) WithGroup(name string) slog.Handler {
	return promoteDebug{h.Handler.WithGroup(name)}
}
