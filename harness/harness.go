// Package harness orchestrates end-to-end verification of a search UI.
// It drives a single browser session through the catalogue's test cases
// in declaration order, feeds the query field, collects autocompletion
// hints and example-query output, and compares both against the expected
// results, reporting partial failures without aborting the batch.
//
// Only page-load exhaustion is fatal: it shuts the session down and
// aborts the run. Every other failure becomes a report entry or a log
// line and execution proceeds to the next unit of work.
package harness

import (
	"context"
	"log/slog"
	"time"

	"github.com/probelab/uiprobe/catalogue"
	"github.com/probelab/uiprobe/harness/internal/browser"
	"github.com/probelab/uiprobe/harness/internal/sink"
	"github.com/probelab/uiprobe/idgen"
	"github.com/probelab/uiprobe/report"
	"github.com/probelab/uiprobe/session"
)

// Runner drives one browser session through a catalogue, sequentially.
type Runner struct {
	sess   session.Session
	cfg    *Config
	logger *slog.Logger
	sinks  *sink.Router
	loader *Loader
	waiter *Waiter

	newRunID    idgen.Generator
	newReportID idgen.Generator
	closed      bool
}

// New creates a Runner with a rod-backed browser session built from cfg.
// The session is owned by the Runner and closed by Close.
func New(ctx context.Context, cfg *Config, logger *slog.Logger, sinks ...Sink) (*Runner, error) {
	if cfg == nil {
		cfg = Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	table := session.DefaultTable()
	if cfg.Target.SelectorsPath != "" {
		var err error
		table, err = session.LoadTableFile(cfg.Target.SelectorsPath)
		if err != nil {
			return nil, err
		}
	}

	sess, err := browser.Connect(ctx, browser.Config{
		Headful:   cfg.Browser.Headful,
		RemoteURL: cfg.Browser.Remote,
		Selectors: table,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return NewWithSession(sess, cfg, logger, sinks...), nil
}

// NewWithSession creates a Runner on an existing session. Used by tests
// and by callers that manage the browser themselves; the Runner still
// closes the session on Close and on fatal load exhaustion.
func NewWithSession(sess session.Session, cfg *Config, logger *slog.Logger, sinks ...Sink) *Runner {
	if cfg == nil {
		cfg = Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		sess:        sess,
		cfg:         cfg,
		logger:      logger,
		sinks:       sink.NewRouter(logger, sinks...),
		loader:      NewLoader(sess, cfg.Run.MaxRetries, cfg.Run.LoadTimeout, cfg.Run.LoadBackoff, logger),
		waiter:      NewWaiter(sess, cfg.Run.MaxPolls, cfg.Run.PollInterval, logger),
		newRunID:    idgen.Prefixed("run_", idgen.Default),
		newReportID: idgen.Prefixed("rep_", idgen.Default),
	}
}

// Run executes every test case of the catalogue: examples first, then
// hints, each kind in declaration order. It returns the aggregate summary
// on completion, or ErrLoadExhausted after shutting the session down when
// a page load could not be completed.
func (r *Runner) Run(ctx context.Context, cat *catalogue.Catalogue) (*report.Summary, error) {
	runID := r.newRunID()
	started := time.Now()
	sum := &report.Summary{RunID: runID}

	r.logger.Info("harness: run starting",
		"run_id", runID, "examples", len(cat.Examples), "hints", len(cat.Hints))

	for _, tc := range cat.Examples {
		rep, err := r.runExample(ctx, runID, tc)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.record(ctx, sum, rep)
	}

	for _, tc := range cat.Hints {
		rep, err := r.runHint(ctx, runID, tc)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.record(ctx, sum, rep)
	}

	sum.Elapsed = time.Since(started)
	r.logger.Info("harness: all test cases finished",
		"run_id", runID, "total", sum.Total,
		"passed", sum.Passed, "failed", sum.Failed, "skipped", sum.Skipped)

	if err := r.sinks.SendSummary(ctx, *sum); err != nil {
		r.logger.Warn("harness: summary delivery failed", "error", err)
	}
	return sum, nil
}

// Close shuts down the sinks and the browser session. Safe to call more
// than once; the caller decides teardown timing.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true

	if err := r.sinks.Close(); err != nil {
		r.logger.Warn("harness: sink close failed", "error", err)
	}
	if err := r.sess.Close(); err != nil {
		r.logger.Warn("harness: session close failed", "error", err)
	}
}

// record folds one report into the summary, logs the outcome and delivers
// the report to the sinks.
func (r *Runner) record(ctx context.Context, sum *report.Summary, rep *report.Report) {
	sum.Total++
	switch rep.Status {
	case report.StatusPassed:
		sum.Passed++
		r.logger.Info("harness: test case completed successfully",
			"case", rep.Name, "kind", rep.Kind)
	case report.StatusSkipped:
		sum.Skipped++
	default:
		sum.Failed++
		r.logger.Warn("harness: test case failed",
			"case", rep.Name, "kind", rep.Kind, "mismatches", rep.FailedCount())
	}

	if err := r.sinks.Send(ctx, *rep); err != nil {
		r.logger.Warn("harness: report delivery failed", "case", rep.Name, "error", err)
	}
}
