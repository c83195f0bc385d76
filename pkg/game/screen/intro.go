package screen

import (
	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/lifetime"
	"promptscape/pkg/engine/template"
)

// IntroParams are the intro's exits.
type IntroParams struct {
	OnStart func()
	OnQuit  func()
}

// EnterIntro renders the intro. The top panel can be dragged; the start button or the
// start key leaves through OnStart.
func EnterIntro(env *Env, p IntroParams) (*lifetime.Scope, error) {
	scope := lifetime.New("intro")
	if err := template.RenderInto(env.Surface, env.Templates, IntroTemplate, nil); err != nil {
		return scope, err
	}

	if top := env.Surface.Find(TopID); top != nil {
		top.Draggable = true
	}

	start := func() {
		if !scope.Alive() {
			return
		}
		scope.CancelAll()
		if p.OnStart != nil {
			p.OnStart()
		}
	}
	quit := func() {
		if !scope.Alive() {
			return
		}
		scope.CancelAll()
		if p.OnQuit != nil {
			p.OnQuit()
		}
	}

	if btn := env.Surface.Find(StartButtonID); btn != nil {
		scope.Defer(btn.OnClick(start))
	}
	scope.Defer(env.Keys.Subscribe(func(ev input.Event) {
		switch ev.Intent.Action {
		case input.ActionStart, input.ActionNext:
			start()
		case input.ActionQuit, input.ActionBack:
			quit()
		}
	}))

	return scope, nil
}
