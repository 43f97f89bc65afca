package ecs

import "github.com/phanxgames/gamelib/handle"

// EventType identifies an engine event.
type EventType uint8

const (
	EventSelect   EventType = iota + 1 // editor selection changed
	EventLanded                        // body gained ground contact
	EventAirborne                      // body lost ground contact
)

var eventTypeNames = map[EventType]string{
	EventSelect:   "select",
	EventLanded:   "landed",
	EventAirborne: "airborne",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Event is emitted by engine components. Entity is the subject; Previous is
// the prior selection for EventSelect; Other is the ground entity for
// EventLanded.
type Event struct {
	Type     EventType
	Entity   handle.Handle
	Previous handle.Handle
	Other    handle.Handle
}

// EventStore receives engine events.
type EventStore interface {
	EmitEvent(Event)
}

// EventFunc adapts a function to EventStore.
type EventFunc func(Event)

func (f EventFunc) EmitEvent(e Event) { f(e) }

type nopEvents struct{}

func (nopEvents) EmitEvent(Event) {}
