package input

// Listener receives keyboard (and other discrete) events.
type Listener func(ev Event)

type subscription struct {
	fn     Listener
	active bool
}

// Dispatcher fans events out to subscribed listeners in subscription order.
type Dispatcher struct {
	subs []*subscription
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe adds a listener and returns the function that removes it.
// A listener removed while an event is being dispatched is not called afterwards.
func (d *Dispatcher) Subscribe(fn Listener) (cancel func()) {
	sub := &subscription{fn: fn, active: true}
	d.subs = append(d.subs, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range d.subs {
			if s == sub {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of live listeners.
func (d *Dispatcher) Len() int {
	return len(d.subs)
}

// Dispatch delivers ev to every listener subscribed before the call.
func (d *Dispatcher) Dispatch(ev Event) {
	subs := append([]*subscription(nil), d.subs...)
	for _, sub := range subs {
		if sub.active {
			sub.fn(ev)
		}
	}
}
