// Package cycler switches the level's background/foreground image pair between groups.
package cycler

import (
	"time"

	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/lifetime"
	"promptscape/pkg/engine/loop"
	"promptscape/pkg/engine/surface"
	"promptscape/pkg/game/catalog"
)

// Element ids re-pointed on every change.
const (
	BackgroundID = "background"
	ForegroundID = "foreground"
)

// Default long-press timing.
const (
	DefaultRepeatDelay    = 300 * time.Millisecond
	DefaultRepeatInterval = 120 * time.Millisecond
)

// Finder looks up elements by id. *surface.Surface satisfies it.
type Finder interface {
	Find(id string) *surface.Element
}

// Cycler holds the current group index.
type Cycler struct {
	groups []catalog.ImageGroup
	index  int
	target Finder
}

// New creates a cycler over groups starting at index start.
func New(groups []catalog.ImageGroup, target Finder, start int) *Cycler {
	c := &Cycler{groups: groups, target: target}
	if len(groups) > 0 {
		c.index = wrap(start, len(groups))
	}
	return c
}

// Index returns the current group index.
func (c *Cycler) Index() int {
	return c.index
}

// Group returns the current group.
func (c *Cycler) Group() catalog.ImageGroup {
	if len(c.groups) == 0 {
		return catalog.ImageGroup{}
	}
	return c.groups[c.index]
}

// Cycle moves by dir groups, wrapping in both directions, and applies the result.
func (c *Cycler) Cycle(dir int) {
	if len(c.groups) == 0 {
		return
	}
	c.index = wrap(c.index+dir, len(c.groups))
	c.apply()
}

// Select jumps to group i. Out of range indexes are ignored.
func (c *Cycler) Select(i int) {
	if i < 0 || i >= len(c.groups) {
		return
	}
	c.index = i
	c.apply()
}

func (c *Cycler) apply() {
	if c.target == nil {
		return
	}
	g := c.groups[c.index]
	if el := c.target.Find(BackgroundID); el != nil {
		el.SetSrc(g.Background)
	}
	if el := c.target.Find(ForegroundID); el != nil {
		el.SetSrc(g.Foreground)
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Repeat is the long-press timing.
type Repeat struct {
	Delay    time.Duration
	Interval time.Duration
}

// shoulder tracks one bumper: its edge state and its pending repeat timers.
type shoulder struct {
	button input.Button
	dir    int
	edge   input.Edge
	delay  *loop.Timer
	repeat *loop.Timer
}

func (s *shoulder) stop() {
	s.delay.Stop()
	s.repeat.Stop()
	s.delay, s.repeat = nil, nil
}

// Bind wires the number keys, the cycle keys and the gamepad bumpers to c.
// Everything registered is released when scope is cancelled.
func (c *Cycler) Bind(scope *lifetime.Scope, sched *loop.Scheduler, keys *input.Dispatcher, pad func() input.PadSnapshot, rep Repeat) {
	if rep.Delay <= 0 {
		rep.Delay = DefaultRepeatDelay
	}
	if rep.Interval <= 0 {
		rep.Interval = DefaultRepeatInterval
	}

	scope.Defer(keys.Subscribe(func(ev input.Event) {
		switch ev.Intent.Action {
		case input.ActionSelectGroup1:
			c.Select(0)
		case input.ActionSelectGroup2:
			c.Select(1)
		case input.ActionSelectGroup3:
			c.Select(2)
		case input.ActionCyclePrev:
			c.Cycle(-1)
		case input.ActionCycleNext:
			c.Cycle(1)
		}
	}))

	if pad == nil {
		return
	}

	bumpers := []*shoulder{
		{button: input.ButtonLB, dir: -1},
		{button: input.ButtonRB, dir: 1},
	}
	scope.Defer(func() {
		for _, b := range bumpers {
			b.stop()
		}
	})

	hook := sched.OnFrame(func(time.Duration) {
		snap := pad()
		for _, b := range bumpers {
			rising, falling := b.edge.Update(snap.IsPressed(b.button))
			switch {
			case rising:
				c.Cycle(b.dir)
				b.delay = sched.After(rep.Delay, func() {
					b.repeat = sched.Every(rep.Interval, func() { c.Cycle(b.dir) })
				})
			case falling:
				b.stop()
			}
		}
	})
	scope.Track(hook)
}
