// Package ecs bridges theworld engine events into a [Donburi] world.
//
// [NewDonburiSink] forwards collision, trigger and destroy events as typed
// Donburi events. Subscribe to [EngineEventType] in your ECS systems to
// receive them:
//
//	game.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.EngineEventType.Subscribe(world, onEngineEvent)
//
// Pass event types to NewDonburiSink to forward only those kinds.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/the-world-space/theworld"
)

// EngineEventType is the Donburi event type carrying theworld engine events.
// Events published to it are delivered by ProcessEvents or
// events.ProcessAllEvents.
var EngineEventType = events.NewEventType[theworld.Event]()

type donburiSink struct {
	world donburi.World
	// accept is indexed by EventType; nil forwards every event.
	accept []bool
}

// NewDonburiSink returns an EventSink that queues engine events on
// EngineEventType in world. With no types every event is forwarded;
// otherwise only events whose Type is listed are.
func NewDonburiSink(world donburi.World, types ...theworld.EventType) theworld.EventSink {
	s := &donburiSink{world: world}
	for _, t := range types {
		if int(t) >= len(s.accept) {
			s.accept = append(s.accept, make([]bool, int(t)+1-len(s.accept))...)
		}
		s.accept[t] = true
	}
	return s
}

func (s *donburiSink) EmitEvent(event theworld.Event) {
	if s.accept != nil && (int(event.Type) >= len(s.accept) || !s.accept[event.Type]) {
		return
	}
	EngineEventType.Publish(s.world, event)
}
