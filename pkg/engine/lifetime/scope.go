// Package lifetime provides cancellation scopes: one token per screen instance that
// collects every listener, timer and frame hook registered on its behalf.
package lifetime

import "promptscape/pkg/engine/loop"

// Scope collects cleanups and cancels them together.
type Scope struct {
	name     string
	cleanups []func()
	done     bool
}

// New creates a live scope. The name only shows up in diagnostics.
func New(name string) *Scope {
	return &Scope{name: name}
}

// Name returns the scope's diagnostic name.
func (s *Scope) Name() string {
	return s.name
}

// Alive reports whether CancelAll has not been called yet.
func (s *Scope) Alive() bool {
	return !s.done
}

// Defer registers a cleanup. Cleanups run in reverse registration order.
// On an already-cancelled scope the cleanup runs immediately.
func (s *Scope) Defer(fn func()) {
	if fn == nil {
		return
	}
	if s.done {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Track registers timers or frame hooks to be stopped on cancel.
func (s *Scope) Track(stoppers ...loop.Stopper) {
	for _, st := range stoppers {
		if st == nil {
			continue
		}
		st := st
		s.Defer(func() { st.Stop() })
	}
}

// Guard wraps fn so that it does nothing once the scope is cancelled.
func (s *Scope) Guard(fn func()) func() {
	return func() {
		if s.done {
			return
		}
		fn()
	}
}

// CancelAll runs every cleanup once. Later calls do nothing.
func (s *Scope) CancelAll() {
	if s.done {
		return
	}
	s.done = true
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}
