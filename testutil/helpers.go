package testutil

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// LogBuffer collects log output from concurrent writers.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// NewLogger returns a debug-level JSON logger writing into a LogBuffer.
func NewLogger(t *testing.T) (zerolog.Logger, *LogBuffer) {
	t.Helper()

	buf := &LogBuffer{} //nolint:exhaustruct

	return zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger(), buf
}
