package logging

import (
	"github.com/myrjola/detectivequest/internal/errors"
	"io"
	"log/slog"
	"strings"
)

var ErrInvalidOption = errors.NewSentinel("invalid logging option")

// NewLogger builds a logger writing to w in the given format ("text" or "json") at the given level name
// ("debug", "info", "warn" or "error"). The handler is wrapped in a [ContextHandler].
func NewLogger(w io.Writer, level string, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrap(ErrInvalidOption, "parse log level", slog.String("level", level))
	}

	opts := &slog.HandlerOptions{
		AddSource:   false,
		Level:       lvl,
		ReplaceAttr: nil,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, errors.Wrap(ErrInvalidOption, "unknown log format", slog.String("format", format))
	}

	return slog.New(NewContextHandler(handler)), nil
}
