package screen

import (
	"strconv"
	"time"

	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/lifetime"
	"promptscape/pkg/engine/loop"
	"promptscape/pkg/engine/scramble"
	"promptscape/pkg/engine/surface"
	"promptscape/pkg/engine/template"
	"promptscape/pkg/game/config"
	"promptscape/pkg/game/controls"
	"promptscape/pkg/game/cycler"
)

// LevelParams identify the level and its exits.
type LevelParams struct {
	Title  string
	ID     int
	OnNext func()
	OnBack func()
}

// level is one level screen instance. Every field is private to that instance.
type level struct {
	env    *Env
	params LevelParams
	scope  *lifetime.Scope

	root    *surface.Element
	nextBtn *surface.Element
	ready   bool

	// Set in transform mode; offset mode keeps its own frozen flag.
	state  *controls.State
	frozen bool
}

// EnterLevel renders the level layout and wires the title animation, countdown,
// directional input, fade effect, image cycling and the next/back exits.
func EnterLevel(env *Env, p LevelParams) (*lifetime.Scope, error) {
	l := &level{env: env, params: p, scope: lifetime.New("level " + strconv.Itoa(p.ID))}

	vars := map[string]string{
		"levelTitle": p.Title,
		"levelId":    strconv.Itoa(p.ID),
	}
	if len(env.Groups) > 0 {
		vars["background"] = env.Groups[0].Background
		vars["foreground"] = env.Groups[0].Foreground
	}
	if err := template.RenderInto(env.Surface, env.Templates, LevelTemplate, vars); err != nil {
		return l.scope, err
	}

	l.root = env.Surface.Root()
	l.nextBtn = env.Surface.Find(NextButtonID)
	if l.nextBtn != nil {
		l.nextBtn.Disabled = true
	}

	done := l.animateTitle()
	if env.Config.Level.WaitForTitleAnimation && done != nil {
		done.Then(l.scope.Guard(l.wire))
	} else {
		l.wire()
	}
	return l.scope, nil
}

// animateTitle clears the title and scrambles it in. It returns nil when the layout
// has no title element.
func (l *level) animateTitle() *scramble.Completion {
	title := l.env.Surface.Find(TitleID)
	if title == nil {
		return nil
	}

	cfg := l.env.Config.Scramble
	opts := []scramble.Option{
		scramble.WithGlyphs(cfg.Glyphs),
		scramble.WithInterval(cfg.Interval),
	}
	if l.env.Rand != nil {
		opts = append(opts, scramble.WithRand(l.env.Rand))
	}
	fx := scramble.New(l.env.Sched, title, opts...)
	l.scope.Defer(fx.Stop)

	title.SetText("")
	return fx.SetText(l.params.Title)
}

func (l *level) wire() {
	l.startCountdown()
	l.wireMovement()
	l.wireFade()
	l.wireCycler()
	l.wireExits()
}

// startCountdown keeps the next button locked until the count reaches zero.
func (l *level) startCountdown() {
	remain := l.env.Config.Level.Countdown
	count := l.env.Surface.Find(CountID)
	if count != nil {
		count.SetText(strconv.Itoa(remain))
	}
	if remain <= 0 {
		l.unlock()
		return
	}

	var tick *loop.Timer
	tick = l.env.Sched.Every(time.Second, func() {
		remain--
		if count != nil {
			count.SetText(strconv.Itoa(remain))
		}
		if remain <= 0 {
			tick.Stop()
			l.unlock()
		}
	})
	l.scope.Track(tick)
}

func (l *level) unlock() {
	l.ready = true
	if l.nextBtn != nil {
		l.nextBtn.Disabled = false
	}
}

func (l *level) wireMovement() {
	cfg := l.env.Config
	if cfg.Level.InputMode == config.InputModeOffset {
		l.wireOffset(cfg.Level.OffsetStep)
		return
	}

	var leaving bool
	l.state = &controls.State{
		DeadZone:  cfg.Controls.DeadZone,
		MoveSpeed: cfg.Controls.MoveSpeed,
		RotSpeed:  cfg.Controls.RotSpeed,
		BeforeAdvance: func() {
			if l.ready && l.scope.Alive() {
				leaving = true
				l.scope.CancelAll()
			}
		},
		Advance: func() {
			if leaving && l.params.OnNext != nil {
				l.params.OnNext()
			}
		},
	}
	if l.root != nil {
		l.env.Controller.Activate(l.state, l.root)
	}
	state := l.state
	l.scope.Defer(func() { l.env.Controller.Release(state) })
}

// wireOffset is the simple parallax mode: arrows nudge --x/--y and the advance button
// is watched here instead of by the shared controller.
func (l *level) wireOffset(step float64) {
	var x, y float64
	apply := func() {
		if l.root == nil || l.frozen {
			return
		}
		l.root.SetVar(surface.VarX, x)
		l.root.SetVar(surface.VarY, y)
	}
	apply()

	l.scope.Defer(l.env.Keys.Subscribe(func(ev input.Event) {
		if l.frozen {
			return
		}
		switch ev.Intent.Action {
		case input.ActionMoveLeft:
			x -= step
		case input.ActionMoveRight:
			x += step
		case input.ActionMoveUp:
			y -= step
		case input.ActionMoveDown:
			y += step
		default:
			return
		}
		apply()
	}))

	var advance input.Edge
	l.scope.Track(l.env.Sched.OnFrame(func(time.Duration) {
		if advance.Rising(l.env.pad().IsPressed(input.ButtonA)) {
			l.next()
		}
	}))
}

// wireFade hides the bottom layer, restarts the sound, fades the layer back in after
// FadeDelay and stops movement after FreezeDelay.
func (l *level) wireFade() {
	cfg := l.env.Config.Level
	if !cfg.FadeEffect {
		return
	}

	fade := func() {
		if !l.scope.Alive() {
			return
		}
		bottom := l.env.Surface.Find(BottomID)
		if bottom != nil {
			bottom.SetOpacity(0)
		}
		if sound := l.env.Surface.Find(SoundID); sound != nil {
			l.env.restart(sound.Src)
		}
		l.scope.Track(
			l.env.Sched.After(cfg.FadeDelay, func() {
				if bottom != nil {
					bottom.FadeTo(1, cfg.FadeDuration)
				}
			}),
			l.env.Sched.After(cfg.FreezeDelay, l.freeze),
		)
	}

	if btn := l.env.Surface.Find(FadeButtonID); btn != nil {
		l.scope.Defer(btn.OnClick(fade))
	}
	l.scope.Defer(l.env.Keys.Subscribe(func(ev input.Event) {
		if ev.Intent.Action == input.ActionFade {
			fade()
		}
	}))
}

func (l *level) freeze() {
	l.frozen = true
	if l.state != nil {
		l.state.Frozen = true
	}
}

func (l *level) wireCycler() {
	cfg := l.env.Config
	if !cfg.Level.ImageCycling || len(l.env.Groups) == 0 {
		return
	}
	c := cycler.New(l.env.Groups, l.env.Surface, 0)
	c.Bind(l.scope, l.env.Sched, l.env.Keys, l.env.Pad, cycler.Repeat{
		Delay:    cfg.Cycler.RepeatDelay,
		Interval: cfg.Cycler.RepeatInterval,
	})
}

func (l *level) wireExits() {
	if l.nextBtn != nil {
		l.scope.Defer(l.nextBtn.OnClick(l.next))
	}
	if btn := l.env.Surface.Find(BackButtonID); btn != nil {
		l.scope.Defer(btn.OnClick(l.back))
	}
	l.scope.Defer(l.env.Keys.Subscribe(func(ev input.Event) {
		switch ev.Intent.Action {
		case input.ActionNext:
			l.next()
		case input.ActionBack:
			l.back()
		}
	}))
}

// next leaves for another level once the countdown has finished.
func (l *level) next() {
	if !l.ready || !l.scope.Alive() {
		return
	}
	l.scope.CancelAll()
	if l.params.OnNext != nil {
		l.params.OnNext()
	}
}

func (l *level) back() {
	if !l.scope.Alive() {
		return
	}
	l.scope.CancelAll()
	if l.params.OnBack != nil {
		l.params.OnBack()
	}
}
