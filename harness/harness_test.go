package harness

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/probelab/uiprobe/report"
	"github.com/probelab/uiprobe/session"
)

// fakeElement implements session.Element for tests.
type fakeElement struct {
	text     string
	textErr  error
	visible  bool
	clickErr error
	typeErr  error
	clicks   int
	typed    []string
}

func (e *fakeElement) Text(context.Context) (string, error) { return e.text, e.textErr }

func (e *fakeElement) Visible(context.Context) (bool, error) { return e.visible, nil }

func (e *fakeElement) Click(context.Context) error {
	if e.clickErr == nil {
		e.clicks++
	}
	return e.clickErr
}

func (e *fakeElement) Type(_ context.Context, text string) error {
	if e.typeErr == nil {
		e.typed = append(e.typed, text)
	}
	return e.typeErr
}

// fakeSession implements session.Session with scriptable behaviour.
type fakeSession struct {
	navCount  int
	navErr    error
	waitCount int
	// waitErr, when set, decides each WaitPresent outcome by attempt
	// number (1-based).
	waitErr   func(attempt int) error
	findFn    func(name string, args ...any) (session.Element, bool, error)
	findAllFn func(name string) ([]session.Element, error)
	closed    bool
}

func (s *fakeSession) Navigate(context.Context, string) error {
	s.navCount++
	return s.navErr
}

func (s *fakeSession) WaitPresent(_ context.Context, _ string, _ time.Duration) (session.Element, error) {
	s.waitCount++
	if s.waitErr != nil {
		if err := s.waitErr(s.waitCount); err != nil {
			return nil, err
		}
	}
	return &fakeElement{}, nil
}

func (s *fakeSession) Find(_ context.Context, name string, args ...any) (session.Element, bool, error) {
	if s.findFn != nil {
		return s.findFn(name, args...)
	}
	return &fakeElement{visible: true}, true, nil
}

func (s *fakeSession) FindAll(_ context.Context, name string, _ ...any) ([]session.Element, error) {
	if s.findAllFn != nil {
		return s.findAllFn(name)
	}
	return nil, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// captureSink records everything it receives.
type captureSink struct {
	reports   []report.Report
	summaries []report.Summary
	closed    bool
}

func (c *captureSink) Send(_ context.Context, rep report.Report) error {
	c.reports = append(c.reports, rep)
	return nil
}

func (c *captureSink) SendSummary(_ context.Context, sum report.Summary) error {
	c.summaries = append(c.summaries, sum)
	return nil
}

func (c *captureSink) Close() error {
	c.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig keeps all polling bounds tiny so tests run instantly.
func testConfig() *Config {
	cfg := Default()
	cfg.Target.URL = "http://unit.test/"
	cfg.Run.MaxRetries = 2
	cfg.Run.LoadTimeout = time.Millisecond
	cfg.Run.LoadBackoff = time.Millisecond
	cfg.Run.MaxPolls = 4
	cfg.Run.PollInterval = time.Millisecond
	return cfg
}
