// Package screen builds the intro and level screens on the shared surface. Each entry
// returns the lifetime.Scope that owns everything the screen registered; cancelling it
// leaves nothing running.
package screen

import (
	"io/fs"
	"math/rand/v2"

	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/loop"
	"promptscape/pkg/engine/surface"
	"promptscape/pkg/game/catalog"
	"promptscape/pkg/game/config"
	"promptscape/pkg/game/controls"
)

// Layout files, relative to Env.Templates.
const (
	IntroTemplate = "intro.ini"
	LevelTemplate = "level.ini"
)

// Element ids the screens look for. All of them are optional.
const (
	TopID         = "top"
	StartButtonID = "startBtn"
	TitleID       = "levelTitle"
	CountID       = "count"
	NextButtonID  = "nextBtn"
	BackButtonID  = "backBtn"
	FadeButtonID  = "fadeBtn"
	BottomID      = "bottom"
	SoundID       = "sound"
)

// Sounds plays audio cues referenced by audio elements.
type Sounds interface {
	// Restart plays src from the beginning, interrupting a previous play.
	Restart(src string)
}

// Env is what the screens share for the whole run.
type Env struct {
	Sched      *loop.Scheduler
	Surface    *surface.Surface
	Keys       *input.Dispatcher
	Controller *controls.Controller
	Templates  fs.FS
	Sounds     Sounds
	Pad        func() input.PadSnapshot
	Config     *config.Config
	Groups     []catalog.ImageGroup
	Rand       *rand.Rand
}

func (e *Env) pad() input.PadSnapshot {
	if e.Pad == nil {
		return input.Disconnected()
	}
	return e.Pad()
}

func (e *Env) restart(src string) {
	if e.Sounds == nil || src == "" {
		return
	}
	e.Sounds.Restart(src)
}
