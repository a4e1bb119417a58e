package harness

import (
	"io"
	"log/slog"

	"github.com/probelab/uiprobe/harness/internal/sink"
)

// Sink is the output interface for verification reports.
type Sink = sink.Sink

// NewStdoutSink creates a JSON-lines sink. If w is nil, os.Stdout is used.
func NewStdoutSink(w io.Writer) Sink {
	return sink.NewStdout(w)
}

// NewStoreSink creates an SQLite-backed report store at path. The binary
// must register the "sqlite" driver (import _ "modernc.org/sqlite").
func NewStoreSink(path string, logger *slog.Logger) (Sink, error) {
	return sink.NewStore(path, logger)
}
