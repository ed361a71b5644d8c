package testhelpers

import (
	"bytes"
	"github.com/myrjola/detectivequest/internal/logging"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// NewLogger creates a new logger with the given log sink such as io.Discard.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}

// LogBuffer collects log output for assertions. It is safe for concurrent writes.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p) //nolint:wrapcheck // bytes.Buffer never fails
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewRecordingLogger returns a debug level logger and the buffer it writes to. The output is attached to the test log
// when the test fails.
func NewRecordingLogger(t *testing.T) (*slog.Logger, *LogBuffer) {
	t.Helper()
	sink := &LogBuffer{} //nolint:exhaustruct // zero value is ready to use
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("captured log output:\n%s", sink.String())
		}
	})
	return NewLogger(sink), sink
}
