package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/probelab/uiprobe/session"
)

// ErrLoadExhausted is returned when every page-load attempt failed. It is
// the only error that aborts a run; everything else is reported and the
// run moves on to the next test case.
var ErrLoadExhausted = errors.New("harness: page load retries exhausted")

// Loader navigates to the page under test and waits for its readiness
// element, retrying with doubling backoff up to a bounded attempt count.
type Loader struct {
	sess       session.Session
	maxRetries int
	timeout    time.Duration
	backoff    time.Duration
	logger     *slog.Logger
}

// NewLoader creates a Loader. maxRetries is the total attempt count.
func NewLoader(sess session.Session, maxRetries int, timeout, backoff time.Duration, logger *slog.Logger) *Loader {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		sess:       sess,
		maxRetries: maxRetries,
		timeout:    timeout,
		backoff:    backoff,
		logger:     logger,
	}
}

// Load navigates to url and waits for the readiness element. On
// exhaustion it returns ErrLoadExhausted wrapping the last attempt error.
func (l *Loader) Load(ctx context.Context, url string) error {
	var lastErr error
	wait := l.backoff

	for attempt := 1; attempt <= l.maxRetries; attempt++ {
		if attempt > 1 && wait > 0 {
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				return l.exhausted(lastErr)
			case <-time.After(wait):
			}
			wait *= 2
		}

		err := l.attempt(ctx, url)
		if err == nil {
			l.logger.Info("harness: page loaded", "url", url)
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt < l.maxRetries {
			l.logger.Info("harness: loading page failed, trying again",
				"attempt", attempt, "of", l.maxRetries, "error", err)
		}
	}

	return l.exhausted(lastErr)
}

func (l *Loader) exhausted(lastErr error) error {
	l.logger.Error("harness: aborting after load retries",
		"retries", l.maxRetries, "error", lastErr)
	return fmt.Errorf("%w: %v", ErrLoadExhausted, lastErr)
}

func (l *Loader) attempt(ctx context.Context, url string) error {
	if err := l.sess.Navigate(ctx, url); err != nil {
		return err
	}
	if _, err := l.sess.WaitPresent(ctx, session.ElemPageReady, l.timeout); err != nil {
		return err
	}
	return nil
}
