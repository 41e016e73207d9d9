package stream

import (
	"github.com/matt-g-everett/nodetx/anim"
)

// EventMessage is the JSON form of a player event.
type EventMessage struct {
	Type   string             `json:"type"`
	Tween  uint64             `json:"tween"`
	Values map[string]float64 `json:"values,omitempty"`
}

// NewEventMessage converts a player event into its message.
func NewEventMessage(ev anim.Event) EventMessage {
	m := EventMessage{Type: ev.Type.String(), Values: ev.Values}
	if ev.Tween != nil {
		m.Tween = ev.Tween.ID()
	}
	return m
}
