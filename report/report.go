// Package report defines the per-test-case verification records and the
// aggregate run summary emitted by the harness. Reports are shared between
// the runner and its sinks.
package report

import "time"

// Status is the outcome of one test case.
type Status string

const (
	StatusPassed          Status = "passed"
	StatusPartiallyFailed Status = "partially_failed"
	StatusSkipped         Status = "skipped"
)

// Kind distinguishes the two verification paths.
type Kind string

const (
	KindHint    Kind = "hint"
	KindExample Kind = "example"
)

// PositionResult is the comparison outcome at one position of a test case:
// hint rank for hint cases, rendered line for example cases.
type PositionResult struct {
	Index    int    `json:"index"`
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
	Matched  bool   `json:"matched"`
}

// Report is the record of one executed test case.
type Report struct {
	ID        string           `json:"id"`
	RunID     string           `json:"run_id"`
	Name      string           `json:"name"`
	Kind      Kind             `json:"kind"`
	Status    Status           `json:"status"`
	Positions []PositionResult `json:"positions,omitempty"`
	// Reason explains a skipped case.
	Reason  string        `json:"reason,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// FailedCount returns the number of mismatched positions.
func (r *Report) FailedCount() int {
	n := 0
	for _, p := range r.Positions {
		if !p.Matched {
			n++
		}
	}
	return n
}

// Summary aggregates a whole run.
type Summary struct {
	RunID   string        `json:"run_id"`
	Total   int           `json:"total"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Elapsed time.Duration `json:"elapsed"`
}
