// Package fsm implements the two-state screen dispatcher.
package fsm

// State is the current screen of the application.
type State int

// States
const (
	StateIntro State = iota
	StateLevel
)

// String returns the state name as used in logs.
func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StateLevel:
		return "level"
	default:
		return "unknown"
	}
}

// Context is the session-wide key/value context carried between transitions.
type Context map[string]string

// Context keys
const (
	KeyLevelTitle = "levelTitle"
	KeyLevelID    = "levelId"
)

// Request asks the machine to move to Next, merging Patch into the context.
type Request struct {
	Next  State
	Patch Context
}

// Handler is invoked after every transition. It may return a follow-up request,
// which is processed after it returns rather than by recursion.
type Handler func(state State, ctx Context) *Request

// Machine holds the current state, the context, and the single transition handler.
type Machine struct {
	state       State
	ctx         Context
	onEnter     Handler
	dispatching bool
	pending     []Request
}

// New creates a machine in the initial state. Creating it does not call the handler.
func New(initial State, onEnter Handler) *Machine {
	return &Machine{
		state:   initial,
		ctx:     Context{},
		onEnter: onEnter,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.state
}

// Context returns the live context map.
func (m *Machine) Context() Context {
	return m.ctx
}

// Go merges patch into the context, switches to next and runs the handler.
// Calls made while a handler is running are queued and drained in order by the
// outermost call.
func (m *Machine) Go(next State, patch Context) {
	m.pending = append(m.pending, Request{Next: next, Patch: patch})
	if m.dispatching {
		return
	}

	m.dispatching = true
	defer func() { m.dispatching = false }()

	for len(m.pending) > 0 {
		req := m.pending[0]
		m.pending = m.pending[1:]

		for k, v := range req.Patch {
			m.ctx[k] = v
		}
		m.state = req.Next

		if m.onEnter == nil {
			continue
		}
		if follow := m.onEnter(m.state, m.ctx); follow != nil {
			m.pending = append(m.pending, *follow)
		}
	}
	m.pending = nil
}
