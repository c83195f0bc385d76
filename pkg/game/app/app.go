// Package app ties the screens, the state machine and the per-frame input together.
// Front ends feed it one Frame per tick and draw its surface.
package app

import (
	"io/fs"
	"log"
	"math/rand/v2"
	"strconv"
	"time"

	"promptscape/pkg/engine/fsm"
	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/lifetime"
	"promptscape/pkg/engine/loop"
	"promptscape/pkg/engine/surface"
	"promptscape/pkg/game/catalog"
	"promptscape/pkg/game/config"
	"promptscape/pkg/game/controls"
	"promptscape/pkg/game/screen"
)

// Pointer is the mouse state for one frame in relative surface coordinates.
type Pointer struct {
	X, Y        float64
	JustPressed bool
	Pressed     bool
}

// Frame is everything a front end collected since the previous tick.
type Frame struct {
	Keys    []input.RawInput
	Pad     input.PadSnapshot
	Pointer *Pointer
}

// App is the running experience.
type App struct {
	env     *screen.Env
	machine *fsm.Machine
	active  *lifetime.Scope
	pad     input.PadSnapshot
	pick    func() catalog.Level

	err  error
	quit bool
}

// Option customises an App.
type Option func(*App)

// WithRand makes level picks and the title animation deterministic.
func WithRand(r *rand.Rand) Option {
	return func(a *App) {
		a.env.Rand = r
		a.pick = func() catalog.Level { return catalog.PickLevel(r) }
	}
}

// New builds an app in the intro state. Nothing is rendered until Start.
func New(cfg *config.Config, templates fs.FS, sounds screen.Sounds, opts ...Option) *App {
	a := &App{
		pad:  input.Disconnected(),
		pick: catalog.PickRandomLevel,
	}
	a.env = &screen.Env{
		Sched:     loop.New(),
		Surface:   surface.New(),
		Keys:      input.NewDispatcher(),
		Templates: templates,
		Sounds:    sounds,
		Pad:       func() input.PadSnapshot { return a.pad },
		Config:    cfg,
		Groups:    catalog.ImageGroups(),
	}
	a.env.Controller = controls.New(controls.Settings{
		KeyStep:    cfg.Controls.KeyStep,
		KeyRotStep: cfg.Controls.KeyRotStep,
	}, a.env.Pad)

	// One frame hook and one key listener serve every level.
	a.env.Sched.OnFrame(func(time.Duration) { a.env.Controller.Step() })
	a.env.Keys.Subscribe(a.env.Controller.HandleKey)

	a.machine = fsm.New(fsm.StateIntro, a.enter)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start renders the intro.
func (a *App) Start() error {
	a.machine.Go(fsm.StateIntro, nil)
	return a.err
}

// Surface is what the front ends draw.
func (a *App) Surface() *surface.Surface {
	return a.env.Surface
}

// State returns the current screen.
func (a *App) State() fsm.State {
	return a.machine.Current()
}

// Context returns the transition context.
func (a *App) Context() fsm.Context {
	return a.machine.Context()
}

// Now returns the app's virtual time.
func (a *App) Now() time.Duration {
	return a.env.Sched.Now()
}

// Quit reports whether the viewer asked to leave.
func (a *App) Quit() bool {
	return a.quit
}

// Step runs one tick. It returns the first layout error met during a transition.
func (a *App) Step(dt time.Duration, f Frame) error {
	if a.err != nil {
		return a.err
	}

	if p := f.Pointer; p != nil {
		a.env.Surface.Pointer(p.X, p.Y, p.JustPressed, p.Pressed)
	}
	for _, raw := range f.Keys {
		a.env.Keys.Dispatch(input.NewEvent(raw))
	}
	a.pad = f.Pad
	if a.pad.Pressed == nil {
		a.pad = input.Disconnected()
	}

	a.env.Sched.Advance(dt)
	a.env.Surface.Tick(dt)
	return a.err
}

func (a *App) enter(state fsm.State, ctx fsm.Context) *fsm.Request {
	if a.active != nil {
		a.active.CancelAll()
		a.active = nil
	}

	var (
		scope *lifetime.Scope
		err   error
	)
	switch state {
	case fsm.StateIntro:
		scope, err = screen.EnterIntro(a.env, screen.IntroParams{
			OnStart: a.toRandomLevel,
			OnQuit:  func() { a.quit = true },
		})
	case fsm.StateLevel:
		id, _ := strconv.Atoi(ctx[fsm.KeyLevelID])
		scope, err = screen.EnterLevel(a.env, screen.LevelParams{
			Title:  ctx[fsm.KeyLevelTitle],
			ID:     id,
			OnNext: a.toRandomLevel,
			OnBack: func() { a.machine.Go(fsm.StateIntro, nil) },
		})
	}
	a.active = scope
	if err != nil {
		log.Printf("Cannot enter %s: %v", state, err)
		a.err = err
	}
	return nil
}

func (a *App) toRandomLevel() {
	l := a.pick()
	a.machine.Go(fsm.StateLevel, fsm.Context{
		fsm.KeyLevelTitle: l.Title,
		fsm.KeyLevelID:    strconv.Itoa(l.ID),
	})
}
