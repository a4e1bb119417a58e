package harness

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/probelab/uiprobe/session"
)

// placeholderMarker prefixes the provisional entries the UI renders while
// the real suggestion response is still in flight.
const placeholderMarker = "?"

// Waiter polls for the autocompletion popup until real suggestions render.
type Waiter struct {
	sess     session.Session
	maxPolls int
	interval time.Duration
	logger   *slog.Logger
}

// NewWaiter creates a Waiter bounded at maxPolls polls of interval each.
func NewWaiter(sess session.Session, maxPolls int, interval time.Duration, logger *slog.Logger) *Waiter {
	if maxPolls <= 0 {
		maxPolls = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Waiter{sess: sess, maxPolls: maxPolls, interval: interval, logger: logger}
}

// WaitForHints polls until the popup shows at least one suggestion whose
// text does not start with the placeholder marker, then returns the FULL
// enumeration observed on that poll — the placeholder check is a
// readiness signal that real suggestions have started rendering, not a
// filter criterion. When the poll budget runs out without a real
// suggestion, the result is empty with a nil error.
func (w *Waiter) WaitForHints(ctx context.Context) ([]session.Element, error) {
	for i := 0; i < w.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.interval):
		}

		_, ok, err := w.sess.Find(ctx, session.ElemHintPopup)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			w.logger.Debug("harness: hint popup lookup failed", "error", err)
			continue
		}
		if !ok {
			w.logger.Debug("harness: waiting for autocompletion hints")
			continue
		}

		items, err := w.sess.FindAll(ctx, session.ElemHintItem)
		if err != nil {
			w.logger.Debug("harness: hint enumeration failed", "error", err)
			continue
		}

		for _, item := range items {
			text, err := item.Text(ctx)
			if err != nil {
				continue
			}
			if text != "" && !strings.HasPrefix(text, placeholderMarker) {
				return items, nil
			}
		}
	}

	w.logger.Info("harness: no hints were shown")
	return nil, nil
}
