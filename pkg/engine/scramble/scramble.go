// Package scramble animates a text element from its current text to a new one by
// substituting random glyphs per character until each position settles.
package scramble

import (
	"math/rand/v2"
	"strings"
	"time"

	"promptscape/pkg/engine/loop"
	"promptscape/pkg/engine/surface"
)

// Defaults
const (
	DefaultGlyphs       = `!<>-_\/[]{}—=+*^?#________`
	DefaultInterval     = time.Second / 20
	DefaultRerollChance = 0.28
)

// Target is the element being animated.
type Target interface {
	Text() string
	SetSegments(segs []surface.Segment)
}

// Completion is resolved once when an animation settles. A superseded animation's
// completion is never resolved.
type Completion struct {
	done      bool
	callbacks []func()
}

// Done reports whether the animation has settled.
func (c *Completion) Done() bool {
	return c.done
}

// Then runs fn when the animation settles, immediately if it already has.
func (c *Completion) Then(fn func()) {
	if c.done {
		fn()
		return
	}
	c.callbacks = append(c.callbacks, fn)
}

func (c *Completion) resolve() {
	if c.done {
		return
	}
	c.done = true
	callbacks := c.callbacks
	c.callbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

type cell struct {
	from, to   string
	start, end int
	glyph      string
}

// Effect drives the scramble animation of one target.
type Effect struct {
	sched        *loop.Scheduler
	target       Target
	rng          *rand.Rand
	glyphs       []rune
	interval     time.Duration
	rerollChance float64

	cells      []cell
	frame      int
	timer      *loop.Timer
	completion *Completion
}

// Option configures an Effect.
type Option func(*Effect)

// WithRand sets the random source (used by tests for determinism).
func WithRand(r *rand.Rand) Option {
	return func(e *Effect) { e.rng = r }
}

// WithGlyphs sets the symbol set scrambled positions are drawn from.
func WithGlyphs(glyphs string) Option {
	return func(e *Effect) {
		if glyphs != "" {
			e.glyphs = []rune(glyphs)
		}
	}
}

// WithInterval sets the fixed step interval.
func WithInterval(d time.Duration) Option {
	return func(e *Effect) {
		if d > 0 {
			e.interval = d
		}
	}
}

// New creates an idle effect for target.
func New(sched *loop.Scheduler, target Target, opts ...Option) *Effect {
	e := &Effect{
		sched:        sched,
		target:       target,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		glyphs:       []rune(DefaultGlyphs),
		interval:     DefaultInterval,
		rerollChance: DefaultRerollChance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Animating reports whether a step is pending.
func (e *Effect) Animating() bool {
	return e.timer.Active()
}

// SetText starts animating towards text, abandoning any animation in progress.
// The first step is rendered before SetText returns.
func (e *Effect) SetText(text string) *Completion {
	oldRunes := []rune(e.target.Text())
	newRunes := []rune(text)

	e.Stop()

	n := max(len(oldRunes), len(newRunes))
	e.cells = make([]cell, n)
	for i := range e.cells {
		start := e.rng.IntN(10)
		e.cells[i] = cell{
			from:  runeAt(oldRunes, i),
			to:    runeAt(newRunes, i),
			start: start,
			end:   start + 10 + e.rng.IntN(10),
		}
	}
	e.frame = 0
	e.completion = &Completion{}
	completion := e.completion

	e.step()
	return completion
}

// Stop abandons the current animation without settling it.
func (e *Effect) Stop() {
	e.timer.Stop()
	e.timer = nil
}

func (e *Effect) step() {
	segs := make([]surface.Segment, 0, len(e.cells))
	var plain strings.Builder
	settled := 0

	flush := func() {
		if plain.Len() > 0 {
			segs = append(segs, surface.Segment{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := range e.cells {
		c := &e.cells[i]
		switch {
		case e.frame >= c.end:
			settled++
			plain.WriteString(c.to)
		case e.frame >= c.start:
			if c.glyph == "" || e.rng.Float64() < e.rerollChance {
				c.glyph = string(e.glyphs[e.rng.IntN(len(e.glyphs))])
			}
			flush()
			segs = append(segs, surface.Segment{Text: c.glyph, Scrambled: true})
		default:
			plain.WriteString(c.from)
		}
	}
	flush()
	e.target.SetSegments(segs)

	if settled == len(e.cells) {
		e.timer = nil
		e.completion.resolve()
		return
	}
	e.frame++
	e.timer = e.sched.After(e.interval, e.step)
}

func runeAt(rs []rune, i int) string {
	if i < len(rs) {
		return string(rs[i])
	}
	return ""
}
