// Package surface is the retained element tree that screens render into and that the
// renderers draw. Coordinates are relative to the screen (0..1 on both axes).
package surface

import (
	"sort"
	"strings"
	"time"
)

// Kind identifies what an element draws.
type Kind int

// Element kinds
const (
	KindContainer Kind = iota
	KindText
	KindImage
	KindButton
	KindAudio
)

// ParseKind maps a template kind name to a Kind. Unknown names become containers.
func ParseKind(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return KindText
	case "image":
		return KindImage
	case "button":
		return KindButton
	case "audio":
		return KindAudio
	default:
		return KindContainer
	}
}

// Segment is a run of displayed text. Scrambled runs are drawn in a distinct style.
type Segment struct {
	Text      string
	Scrambled bool
}

// Var names written by the transform controls and read by the renderers.
const (
	VarX     = "--x"
	VarY     = "--y"
	VarAngle = "--angle"
)

// Element is one node of the surface.
type Element struct {
	ID    string
	Kind  Kind
	Layer int

	X, Y, W, H float64
	Size       float64 // font size for text and buttons
	Align      string  // "left", "center", "right"

	Src string // image or audio path

	Parallax float64 // how far (in pixels per unit) --x/--y move this element
	Rotates  bool    // whether --angle rotates this element

	Draggable bool
	Disabled  bool

	segments []Segment
	label    string

	opacity       float64
	opacityFrom   float64
	opacityTarget float64
	fadeElapsed   time.Duration
	fadeDuration  time.Duration

	vars    map[string]float64
	onClick []func()
}

// NewElement creates an element with full opacity.
func NewElement(id string, kind Kind) *Element {
	return &Element{
		ID:            id,
		Kind:          kind,
		Align:         "left",
		opacity:       1,
		opacityTarget: 1,
		vars:          make(map[string]float64),
	}
}

// Text returns the plain displayed text (scrambled glyphs included).
func (e *Element) Text() string {
	var b strings.Builder
	for _, s := range e.segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// SetText replaces the displayed content with plain text.
func (e *Element) SetText(text string) {
	if text == "" {
		e.segments = nil
		return
	}
	e.segments = []Segment{{Text: text}}
}

// Segments returns the displayed content as styled runs.
func (e *Element) Segments() []Segment {
	return e.segments
}

// SetSegments replaces the displayed content entirely.
func (e *Element) SetSegments(segs []Segment) {
	e.segments = segs
}

// Label returns a button's label (a translation key).
func (e *Element) Label() string {
	return e.label
}

// SetLabel sets a button's label.
func (e *Element) SetLabel(label string) {
	e.label = label
}

// SetSrc re-points an image or audio element.
func (e *Element) SetSrc(src string) {
	e.Src = src
}

// Var returns a custom property, 0 if unset.
func (e *Element) Var(name string) float64 {
	return e.vars[name]
}

// SetVar sets a custom property.
func (e *Element) SetVar(name string, v float64) {
	e.vars[name] = v
}

// Opacity returns the current (possibly mid-transition) opacity.
func (e *Element) Opacity() float64 {
	return e.opacity
}

// SetOpacity jumps to an opacity immediately, cancelling any transition.
func (e *Element) SetOpacity(v float64) {
	v = clamp01(v)
	e.opacity = v
	e.opacityTarget = v
	e.fadeDuration = 0
}

// FadeTo starts a linear opacity transition over d.
func (e *Element) FadeTo(v float64, d time.Duration) {
	if d <= 0 {
		e.SetOpacity(v)
		return
	}
	e.opacityFrom = e.opacity
	e.opacityTarget = clamp01(v)
	e.fadeElapsed = 0
	e.fadeDuration = d
}

// OnClick registers a click handler and returns a function that removes it.
func (e *Element) OnClick(fn func()) (remove func()) {
	e.onClick = append(e.onClick, fn)
	idx := len(e.onClick) - 1
	return func() {
		if idx < len(e.onClick) {
			e.onClick[idx] = nil
		}
	}
}

// Click runs the click handlers unless the element is disabled.
func (e *Element) Click() bool {
	if e.Disabled {
		return false
	}
	handled := false
	for _, fn := range append([]func(){}, e.onClick...) {
		if fn != nil {
			fn()
			handled = true
		}
	}
	return handled
}

// Contains reports whether the relative point lies inside the element's box.
func (e *Element) Contains(x, y float64) bool {
	return x >= e.X && x <= e.X+e.W && y >= e.Y && y <= e.Y+e.H
}

func (e *Element) tick(dt time.Duration) {
	if e.fadeDuration <= 0 {
		return
	}
	e.fadeElapsed += dt
	if e.fadeElapsed >= e.fadeDuration {
		e.opacity = e.opacityTarget
		e.fadeDuration = 0
		return
	}
	p := float64(e.fadeElapsed) / float64(e.fadeDuration)
	e.opacity = e.opacityFrom + (e.opacityTarget-e.opacityFrom)*p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Surface is the container screens render into.
type Surface struct {
	name     string
	elements []*Element
	byID     map[string]*Element
	root     *Element

	dragging             *Element
	dragLastX, dragLastY float64
}

// New creates an empty surface.
func New() *Surface {
	return &Surface{byID: make(map[string]*Element)}
}

// Name returns the name of the template currently rendered.
func (s *Surface) Name() string {
	return s.name
}

// Replace swaps the whole element tree. Handlers registered on the old elements are
// no longer reachable through the surface.
func (s *Surface) Replace(name string, elements []*Element) {
	s.name = name
	s.elements = append([]*Element(nil), elements...)
	sort.SliceStable(s.elements, func(i, j int) bool {
		return s.elements[i].Layer < s.elements[j].Layer
	})
	s.byID = make(map[string]*Element, len(elements))
	s.root = nil
	for _, el := range s.elements {
		if el.ID != "" {
			s.byID[el.ID] = el
		}
		if s.root == nil && el.Kind == KindContainer {
			s.root = el
		}
	}
	s.dragging = nil
}

// Find returns the element with the given id, or nil.
func (s *Surface) Find(id string) *Element {
	return s.byID[id]
}

// Root returns the first container element, which carries the transform vars.
func (s *Surface) Root() *Element {
	return s.root
}

// Elements returns the elements in draw order.
func (s *Surface) Elements() []*Element {
	return s.elements
}

// Tick advances opacity transitions.
func (s *Surface) Tick(dt time.Duration) {
	for _, el := range s.elements {
		el.tick(dt)
	}
}

// Pointer feeds a mouse/touch state in relative coordinates. A press on a button
// clicks it; a press on a draggable element starts a drag that follows the pointer
// until release.
func (s *Surface) Pointer(x, y float64, justPressed, pressed bool) {
	if justPressed {
		for i := len(s.elements) - 1; i >= 0; i-- {
			el := s.elements[i]
			if !el.Contains(x, y) {
				continue
			}
			if el.Kind == KindButton {
				el.Click()
				return
			}
			if el.Draggable {
				s.dragging = el
				s.dragLastX, s.dragLastY = x, y
				return
			}
		}
		return
	}

	if s.dragging == nil {
		return
	}
	if !pressed {
		s.dragging = nil
		return
	}
	s.dragging.X += x - s.dragLastX
	s.dragging.Y += y - s.dragLastY
	s.dragLastX, s.dragLastY = x, y
}
