package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/probelab/uiprobe/report"
)

type recordingSink struct {
	reports   []report.Report
	summaries []report.Summary
	sendErr   error
	closed    bool
}

func (s *recordingSink) Send(_ context.Context, rep report.Report) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.reports = append(s.reports, rep)
	return nil
}

func (s *recordingSink) SendSummary(_ context.Context, sum report.Summary) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.summaries = append(s.summaries, sum)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func TestRouter_FanOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), a, b)

	if err := r.Send(context.Background(), report.Report{ID: "rep_1"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(a.reports) != 1 || len(b.reports) != 1 {
		t.Errorf("fan-out missed a sink: %d/%d", len(a.reports), len(b.reports))
	}
}

func TestRouter_IsolatesFailingSink(t *testing.T) {
	bad := &recordingSink{sendErr: errors.New("disk full")}
	good := &recordingSink{}
	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), bad, good)

	err := r.Send(context.Background(), report.Report{ID: "rep_1"})
	if err == nil {
		t.Fatal("expected the first error to propagate")
	}
	if len(good.reports) != 1 {
		t.Error("healthy sink should still receive the report")
	}
}

func TestRouter_Close(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	r := NewRouter(nil, a, b)
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("all sinks should be closed")
	}
}

func TestStdout_Envelope(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdout(&buf)

	if err := s.Send(context.Background(), report.Report{ID: "rep_1", Name: "case"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := s.SendSummary(context.Background(), report.Summary{RunID: "run_1", Total: 1}); err != nil {
		t.Fatalf("SendSummary: %v", err)
	}

	dec := json.NewDecoder(&buf)
	var first, second envelope
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode first line: %v", err)
	}
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode second line: %v", err)
	}
	if first.Type != "report" || second.Type != "summary" {
		t.Errorf("envelope types = %q, %q", first.Type, second.Type)
	}
}
