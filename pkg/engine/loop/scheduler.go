// Package loop provides a single-threaded cooperative scheduler driven by the game loop.
//
// Time is virtual: it only moves when Advance is called (once per tick by the renderer,
// or explicitly by tests). Timer callbacks and frame hooks therefore always run on the
// goroutine that calls Advance and never overlap.
package loop

import (
	"time"

	"github.com/zyedidia/generic/heap"
)

// Stopper is anything that can be cancelled (timers, frame hooks).
type Stopper interface {
	Stop() bool
}

// Timer is a one-shot or periodic callback registered with a Scheduler.
type Timer struct {
	when    time.Duration
	period  time.Duration // 0 for one-shot timers
	seq     uint64
	fn      func()
	stopped bool
}

// Stop cancels the timer. Returns false if it was already stopped or has fired (one-shot).
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Active reports whether the timer is still scheduled.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// FrameHook is a callback run once per Advance, after due timers.
type FrameHook struct {
	fn      func(dt time.Duration)
	stopped bool
}

// Stop removes the hook. Returns false if it was already removed.
func (h *FrameHook) Stop() bool {
	if h == nil || h.stopped {
		return false
	}
	h.stopped = true
	return true
}

// Scheduler owns virtual time, pending timers and frame hooks.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers *heap.Heap[*Timer]
	frames []*FrameHook
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{
		timers: heap.New[*Timer](func(a, b *Timer) bool {
			if a.when == b.when {
				return a.seq < b.seq
			}
			return a.when < b.when
		}),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	return s.schedule(d, 0, fn)
}

// Every runs fn every d, starting d from now, until stopped.
// Non-positive intervals are bumped to one nanosecond so Advance always terminates.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return s.schedule(d, d, fn)
}

func (s *Scheduler) schedule(d, period time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{
		when:   s.now + d,
		period: period,
		seq:    s.seq,
		fn:     fn,
	}
	s.timers.Push(t)
	return t
}

// OnFrame registers fn to run on every Advance.
func (s *Scheduler) OnFrame(fn func(dt time.Duration)) *FrameHook {
	h := &FrameHook{fn: fn}
	s.frames = append(s.frames, h)
	return h
}

// Pending returns the number of timers still queued, including stopped ones not yet drained.
func (s *Scheduler) Pending() int {
	return s.timers.Size()
}

// Advance moves time forward by dt. Due timers fire in due-time order (ties in
// registration order), then every live frame hook runs once.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + dt

	for {
		next, ok := s.timers.Peek()
		if !ok || next.when > target {
			break
		}
		s.timers.Pop()
		if next.stopped {
			continue
		}

		s.now = next.when
		if next.period > 0 {
			next.when += next.period
			s.seq++
			next.seq = s.seq
			s.timers.Push(next)
		} else {
			next.stopped = true
		}
		next.fn()
	}
	s.now = target

	// Hooks added during this pass start next frame; stopped hooks are compacted out.
	hooks := s.frames
	for _, h := range hooks {
		if !h.stopped {
			h.fn(dt)
		}
	}
	live := s.frames[:0]
	for _, h := range s.frames {
		if !h.stopped {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.frames); i++ {
		s.frames[i] = nil
	}
	s.frames = live
}
