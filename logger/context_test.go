package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/programme-lv/cfwatch/logger"
	"github.com/stretchr/testify/require"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.Equal(t, slog.Default(), logger.FromContext(context.Background()))
}

func TestWithTickIDTagsLines(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithLogger(context.Background(), logger.New(&buf, "debug"))

	ctx = logger.WithTickID(ctx)
	logger.FromContext(ctx).Debug("polled")

	require.Contains(t, buf.String(), "tick_id=")
	require.Contains(t, buf.String(), "msg=polled")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, logger.ParseLevel(tt.in), tt.in)
	}
}
