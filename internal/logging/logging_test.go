package logging_test

import (
	"bytes"
	"context"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
)

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	ctx := logging.WithAttrs(context.Background(), slog.String("session", "abc"))
	ctx = logging.WithAttrs(ctx, slog.String("room", "Library"))
	logger.With("source", "Test").LogAttrs(ctx, slog.LevelInfo, "clue found")

	out := buf.String()
	require.Contains(t, out, "session=abc")
	require.Contains(t, out, "room=Library")
	require.Contains(t, out, "source=Test")
}

func TestWithAttrs_siblingsDoNotShare(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	base := logging.WithAttrs(context.Background(), slog.String("session", "abc"), slog.String("pad", "x"))
	left := logging.WithAttrs(base, slog.String("room", "Left"))
	_ = logging.WithAttrs(base, slog.String("room", "Right"))

	logger.InfoContext(left, "moved")
	require.Contains(t, buf.String(), "room=Left")
	require.NotContains(t, buf.String(), "room=Right")
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		want    string
		wantErr bool
	}{
		{name: "text info", level: "info", format: "text", want: "level=INFO"},
		{name: "json warn", level: "warn", format: "json", want: `"level":"WARN"`},
		{name: "default format", level: "debug", format: "", want: "level=WARN"},
		{name: "bad level", level: "loud", format: "text", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger, err := logging.NewLogger(&buf, tt.level, tt.format)
			if tt.wantErr {
				require.ErrorIs(t, err, logging.ErrInvalidOption)
				return
			}
			require.NoError(t, err)
			logger.Warn("hello")
			require.Contains(t, buf.String(), tt.want)
		})
	}
}
