package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewNop_AcceptsEveryMethodQuietly(t *testing.T) {
	log := NewNop()

	log.Debug("d", "k", "v")
	log.Info("i")
	log.Warn("w")
	log.Error("e", "err", "boom")

	ctx := context.Background()
	log.DebugContext(ctx, "d")
	log.InfoContext(ctx, "i")
	log.WarnContext(ctx, "w")
	log.ErrorContext(ctx, "e")

	if log.ToSlog() == nil {
		t.Fatal("ToSlog must return a usable *slog.Logger")
	}
}

func TestNewNop_WithReturnsLogger(t *testing.T) {
	log := NewNop().With("component", "test")
	if log == nil {
		t.Fatal("With returned nil")
	}
	log.Info("still quiet", "k", "v")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo, // unknown values default to info
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q): got %v, want %v", in, got, want)
		}
	}
}
