// Package sink defines output backends for verification reports.
package sink

import (
	"context"

	"github.com/probelab/uiprobe/report"
)

// Sink is the output interface. Implementations deliver reports to
// different backends (stdout JSON lines, SQLite, in-process callback).
type Sink interface {
	Send(ctx context.Context, rep report.Report) error
	SendSummary(ctx context.Context, sum report.Summary) error
	Close() error
}
