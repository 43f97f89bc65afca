package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for engine events.
// Subscribe to this in your ECS systems to receive selection and ground
// contact events.
var EngineEventType = events.NewEventType[Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are published to EngineEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event Event) {
	EngineEventType.Publish(s.world, event)
}
