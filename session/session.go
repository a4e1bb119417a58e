// Package session abstracts the browser-automation driver behind the
// page/session interface the verification core consumes. The core only
// ever refers to elements by symbolic name; a Session adapter resolves
// names through its selector Table.
package session

import (
	"context"
	"time"
)

// Element is a handle to a rendered page element.
type Element interface {
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	Type(ctx context.Context, text string) error
}

// Session drives one page under test. Lookup misses are reported through
// the ok result, not an error: a false ok means the element is absent,
// while the error covers driver-level failures only. This keeps the
// skip-versus-fail policy a visible branch in the caller.
type Session interface {
	Navigate(ctx context.Context, url string) error

	// WaitPresent blocks until the named element is present or the
	// timeout elapses.
	WaitPresent(ctx context.Context, name string, timeout time.Duration) (Element, error)

	// Find locates the named element without waiting. Selector templates
	// with a %s placeholder are filled from args.
	Find(ctx context.Context, name string, args ...any) (Element, bool, error)

	// FindAll enumerates all elements matching the named selector,
	// possibly none.
	FindAll(ctx context.Context, name string, args ...any) ([]Element, error)

	Close() error
}
