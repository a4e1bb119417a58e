// Package browser adapts go-rod to the session interface consumed by the
// verification core: it launches Chrome (or attaches to a remote one),
// opens the single tab the whole run drives, and resolves symbolic element
// names through the selector table.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/probelab/uiprobe/session"
)

// Config configures the browser session.
type Config struct {
	// Headful runs a visible browser window. Headless is the default.
	Headful bool

	// RemoteURL is the websocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// Selectors maps symbolic element names to page selectors.
	// Nil = session.DefaultTable().
	Selectors *session.Table

	Logger *slog.Logger
}

// Browser is a rod-backed session.Session holding one page for the
// lifetime of a run.
type Browser struct {
	cfg     Config
	browser *rod.Browser
	lnch    *launcher.Launcher
	page    *rod.Page
}

var _ session.Session = (*Browser)(nil)

// Connect launches Chrome (or attaches to cfg.RemoteURL) and opens the
// tab the run will drive. Stealth setup is applied in headless mode.
func Connect(ctx context.Context, cfg Config) (*Browser, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Selectors == nil {
		cfg.Selectors = session.DefaultTable()
	}
	b := &Browser{cfg: cfg}

	var wsURL string
	if cfg.RemoteURL != "" {
		wsURL = cfg.RemoteURL
		cfg.Logger.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New().Headless(!cfg.Headful)
		l = l.Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		b.lnch = l
		cfg.Logger.Info("browser: launched local chrome", "headful", cfg.Headful)
	}

	rb := rod.New().ControlURL(wsURL).Context(ctx)
	if err := rb.Connect(); err != nil {
		b.cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	b.browser = rb

	if err := rb.IgnoreCertErrors(true); err != nil {
		cfg.Logger.Warn("browser: ignore cert errors failed", "error", err)
	}

	var page *rod.Page
	var err error
	if cfg.Headful {
		page, err = rb.Page(proto.TargetCreateTarget{URL: ""})
	} else {
		page, err = stealth.Page(rb)
	}
	if err != nil {
		b.cleanup()
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}
	b.page = page

	return b, nil
}

// Navigate loads url in the session's tab. The full-load wait is
// best-effort: readiness is established by the caller's WaitPresent.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	if err := b.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if err := b.page.Context(ctx).WaitLoad(); err != nil {
		b.cfg.Logger.Debug("browser: wait load", "url", url, "error", err)
	}
	return nil
}

// WaitPresent blocks until the named element appears or timeout elapses.
func (b *Browser) WaitPresent(ctx context.Context, name string, timeout time.Duration) (session.Element, error) {
	sel, err := b.cfg.Selectors.Resolve(name)
	if err != nil {
		return nil, err
	}

	el, err := b.lookup(b.page.Context(ctx).Timeout(timeout), sel)
	if err != nil {
		return nil, fmt.Errorf("browser: wait for %s: %w", name, err)
	}
	return &element{el: el}, nil
}

// Find locates the named element without waiting. Absence is reported via
// the ok result, not an error.
func (b *Browser) Find(ctx context.Context, name string, args ...any) (session.Element, bool, error) {
	sel, err := b.cfg.Selectors.Resolve(name, args...)
	if err != nil {
		return nil, false, err
	}

	el, err := b.lookup(b.page.Context(ctx).Sleeper(rod.NotFoundSleeper), sel)
	if err != nil {
		if errors.Is(err, &rod.ElementNotFoundError{}) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("browser: find %s: %w", name, err)
	}
	return &element{el: el}, true, nil
}

// FindAll enumerates all elements matching the named selector, possibly
// none. It never waits.
func (b *Browser) FindAll(ctx context.Context, name string, args ...any) ([]session.Element, error) {
	sel, err := b.cfg.Selectors.Resolve(name, args...)
	if err != nil {
		return nil, err
	}

	page := b.page.Context(ctx)
	var els rod.Elements
	if sel.Kind == session.KindXPath {
		els, err = page.ElementsX(sel.Expr)
	} else {
		els, err = page.Elements(sel.Expr)
	}
	if err != nil {
		return nil, fmt.Errorf("browser: find all %s: %w", name, err)
	}

	out := make([]session.Element, len(els))
	for i, el := range els {
		out[i] = &element{el: el}
	}
	return out, nil
}

// Close shuts down the tab, the browser and, for locally launched
// instances, the launcher's temporary state.
func (b *Browser) Close() error {
	if b.page != nil {
		_ = b.page.Close()
		b.page = nil
	}
	return b.cleanup()
}

func (b *Browser) cleanup() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.lnch != nil {
		b.lnch.Cleanup()
		b.lnch = nil
	}
	return err
}

func (b *Browser) lookup(p *rod.Page, sel session.Selector) (*rod.Element, error) {
	if sel.Kind == session.KindXPath {
		return p.ElementX(sel.Expr)
	}
	return p.Element(sel.Expr)
}

// element wraps a rod element behind the session.Element interface.
type element struct {
	el *rod.Element
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

func (e *element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *element) Type(ctx context.Context, text string) error {
	return e.el.Context(ctx).Input(text)
}
