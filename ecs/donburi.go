// Package ecs provides ECS adapters for reelmark.
package ecs

import (
	"github.com/phanxgames/reelmark"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TimelineEventType is the Donburi event type for timeline events.
// Subscribe to this in your ECS systems to receive seeks, edits, scope
// changes and export results.
var TimelineEventType = events.NewEventType[reelmark.Event]()

// ReviewStatus mirrors the parts of a timeline that game-style systems
// usually want to poll instead of subscribe to.
type ReviewStatus struct {
	Playhead   int64
	Rate       float64
	Scope      reelmark.ID
	Edits      int
	Exporting  int
	LastLog    string
	LastExport error
}

// Status is the component holding the mirrored ReviewStatus.
var Status = donburi.NewComponentType[ReviewStatus]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Timeline events are published to TimelineEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) reelmark.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event reelmark.Event) {
	TimelineEventType.Publish(s.world, event)
}

// TrackStatus creates the ReviewStatus entity (if missing) and subscribes a
// handler that keeps it current. Status is updated when the world's events
// are processed.
func TrackStatus(world donburi.World) *donburi.Entry {
	entry, ok := Status.First(world)
	if !ok {
		entry = world.Entry(world.Create(Status))
		Status.SetValue(entry, ReviewStatus{Rate: 1})
		TimelineEventType.Subscribe(world, applyStatus)
	}
	return entry
}

func applyStatus(w donburi.World, e reelmark.Event) {
	entry, ok := Status.First(w)
	if !ok {
		return
	}
	st := Status.Get(entry)
	switch e.Type {
	case reelmark.EventSeek:
		st.Playhead = e.Time
	case reelmark.EventPlaybackRate:
		st.Rate = e.Rate
	case reelmark.EventScopeChanged:
		st.Scope = e.Section
	case reelmark.EventDataChanged:
		st.Edits++
	case reelmark.EventLogged:
		st.LastLog = e.Message
	case reelmark.EventExportRequested:
		st.Exporting++
	case reelmark.EventExportFinished:
		st.Exporting = max(0, st.Exporting-1)
		st.LastExport = e.Err
	case reelmark.EventProjectReplaced:
		st.Scope = 0
	}
}
