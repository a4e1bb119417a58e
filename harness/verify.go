package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/probelab/uiprobe/catalogue"
	"github.com/probelab/uiprobe/hint"
	"github.com/probelab/uiprobe/report"
	"github.com/probelab/uiprobe/session"
)

// runExample loads the page, opens the examples menu, clicks the entry
// labelled tc.Input and compares the rendered lines positionally. A
// missing or hidden UI element skips the case; only load exhaustion is
// returned as an error.
func (r *Runner) runExample(ctx context.Context, runID string, tc catalogue.ExampleCase) (*report.Report, error) {
	log := r.logger.With("case", tc.Name)
	log.Info("harness: starting example test")

	started := time.Now()
	rep := &report.Report{
		ID:    r.newReportID(),
		RunID: runID,
		Name:  tc.Name,
		Kind:  report.KindExample,
	}
	skip := func(reason string) (*report.Report, error) {
		log.Warn("harness: skipping example test", "reason", reason)
		rep.Status = report.StatusSkipped
		rep.Reason = reason
		rep.Elapsed = time.Since(started)
		return rep, nil
	}

	if err := r.loader.Load(ctx, r.cfg.Target.URL); err != nil {
		return nil, err
	}

	button, ok, err := r.sess.Find(ctx, session.ElemExamplesButton)
	if err != nil {
		return skip(fmt.Sprintf("examples button lookup: %v", err))
	}
	if !ok {
		return skip("examples button not found")
	}
	if err := button.Click(ctx); err != nil {
		return skip(fmt.Sprintf("examples button click: %v", err))
	}

	menu, ok, err := r.sess.Find(ctx, session.ElemExamplesMenu)
	if err != nil || !ok {
		return skip("no examples were shown")
	}
	visible, err := menu.Visible(ctx)
	if err != nil || !visible {
		return skip("examples menu not visible")
	}

	entry, ok, err := r.sess.Find(ctx, session.ElemExampleEntry, tc.Input)
	if err != nil || !ok {
		return skip(fmt.Sprintf("example %q not found in menu", tc.Input))
	}
	if err := entry.Click(ctx); err != nil {
		return skip(fmt.Sprintf("example click: %v", err))
	}

	if _, ok, err := r.sess.Find(ctx, session.ElemResultPanel); err != nil || !ok {
		return skip("result panel not found")
	}
	lines, err := r.sess.FindAll(ctx, session.ElemResultLine)
	if err != nil {
		return skip(fmt.Sprintf("result lines lookup: %v", err))
	}

	r.compareLines(ctx, rep, tc.Lines, lines, log)
	rep.Elapsed = time.Since(started)
	return rep, nil
}

// compareLines checks expected lines against the rendered lines by
// position, stopping at the first mismatch: the rendered output cascades
// from a single query, so downstream lines share the root cause.
func (r *Runner) compareLines(ctx context.Context, rep *report.Report, expected []string, lines []session.Element, log *slog.Logger) {
	for i, want := range expected {
		got := "<no line displayed>"
		if i < len(lines) {
			text, err := lines[i].Text(ctx)
			if err != nil {
				got = fmt.Sprintf("<line text: %v>", err)
			} else {
				got = text
			}
		}

		if got != want {
			rep.Positions = append(rep.Positions, report.PositionResult{
				Index: i, Actual: got, Expected: want,
			})
			log.Warn("harness: example line mismatch",
				"line", i+1, "of", len(expected), "got", got, "want", want)
			rep.Status = report.StatusPartiallyFailed
			return
		}
		rep.Positions = append(rep.Positions, report.PositionResult{
			Index: i, Actual: got, Expected: want, Matched: true,
		})
	}
	rep.Status = report.StatusPassed
}

// runHint loads the page, types tc.Input into the query field, waits for
// the autocompletion popup and compares every expected position. Unlike
// the example path, all positions are checked even after a mismatch: hint
// ranking is a set of independent retrieval judgments.
func (r *Runner) runHint(ctx context.Context, runID string, tc catalogue.HintCase) (*report.Report, error) {
	log := r.logger.With("case", tc.Name)
	log.Info("harness: starting hint test")

	started := time.Now()
	rep := &report.Report{
		ID:    r.newReportID(),
		RunID: runID,
		Name:  tc.Name,
		Kind:  report.KindHint,
	}
	skip := func(reason string) (*report.Report, error) {
		log.Warn("harness: skipping hint test", "reason", reason)
		rep.Status = report.StatusSkipped
		rep.Reason = reason
		rep.Elapsed = time.Since(started)
		return rep, nil
	}

	if err := r.loader.Load(ctx, r.cfg.Target.URL); err != nil {
		return nil, err
	}

	input, ok, err := r.sess.Find(ctx, session.ElemQueryInput)
	if err != nil || !ok {
		return skip("query input not found")
	}
	if err := input.Type(ctx, tc.Input); err != nil {
		return skip(fmt.Sprintf("typing query: %v", err))
	}

	elems, err := r.waiter.WaitForHints(ctx)
	if err != nil {
		// Only context cancellation reaches here; it aborts the run.
		return nil, err
	}

	r.compareHints(ctx, rep, tc.Expected, elems, log)
	rep.Elapsed = time.Since(started)
	return rep, nil
}

// compareHints checks each expected position independently: the match at
// position i succeeds when the decoded identifier of the i-th displayed
// hint is a member of the position's acceptable set. Decode failures and
// absent hints count as mismatches at their position, never as a crash.
func (r *Runner) compareHints(ctx context.Context, rep *report.Report, expected []catalogue.ExpectedHint, elems []session.Element, log *slog.Logger) {
	failed := 0

	for i, want := range expected {
		res := report.PositionResult{
			Index:    i,
			Expected: fmt.Sprintf("%s %q", want.DisplayID, want.DisplayName),
		}

		switch {
		case i >= len(elems):
			res.Actual = "<no hint displayed>"
		default:
			raw, err := elems[i].Text(ctx)
			if err != nil {
				res.Actual = fmt.Sprintf("<hint text: %v>", err)
				break
			}
			rec, err := hint.Parse(raw)
			if err != nil {
				res.Actual = raw
				log.Warn("harness: hint decode failed", "position", i+1, "error", err)
				break
			}
			res.Actual = fmt.Sprintf("%s %q", rec.DatabaseID, rec.PrimaryName())
			res.Matched = want.Matches(rec.DatabaseID)
		}

		if res.Matched {
			log.Info("harness: hint displayed correctly",
				"position", i+1, "of", len(expected), "hint", res.Actual)
		} else {
			failed++
			log.Warn("harness: unexpected hint",
				"position", i+1, "of", len(expected), "got", res.Actual, "want", res.Expected)
		}
		rep.Positions = append(rep.Positions, res)
	}

	if failed > 0 {
		rep.Status = report.StatusPartiallyFailed
		return
	}
	rep.Status = report.StatusPassed
}
