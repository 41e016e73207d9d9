package anim

import (
	"sync"

	"github.com/matt-g-everett/nodetx/tween"
)

// EventType identifies a player notification.
type EventType int

// Event types published by a Player.
const (
	// Start is published when a transition begins.
	Start EventType = iota
	// Update is published after each interpolation step is applied.
	Update
)

func (t EventType) String() string {
	switch t {
	case Start:
		return "start"
	case Update:
		return "update"
	}
	return "unknown"
}

// Event is a notification from a Player.
// Values is nil for Start events.
type Event struct {
	Type   EventType
	Values tween.Values
	Tween  *tween.Tween
}

// A Listener observes player events.
type Listener func(Event)

type listener struct {
	id uint64
	fn Listener
}

// dispatcher is an observer list per event type.
type dispatcher struct {
	mu        sync.Mutex
	next      uint64
	listeners map[EventType][]listener
}

func (d *dispatcher) add(typ EventType, fn Listener) (remove func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listeners == nil {
		d.listeners = make(map[EventType][]listener)
	}
	d.next++
	id := d.next
	d.listeners[typ] = append(d.listeners[typ], listener{id, fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		ls := d.listeners[typ]
		for i := range ls {
			if ls[i].id == id {
				d.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// dispatch calls the listeners of ev.Type without holding the lock,
// so a listener may add or remove listeners.
func (d *dispatcher) dispatch(ev Event) {
	d.mu.Lock()
	ls := d.listeners[ev.Type]
	d.mu.Unlock()
	for _, l := range ls {
		l.fn(ev)
	}
}
