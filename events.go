package reelmark

// EventType identifies the kind of notification a Timeline publishes.
type EventType uint8

const (
	EventSeek             EventType = iota // playhead seek requested (Time)
	EventAboutToModify                     // a mutation is about to happen; fired before the snapshot
	EventDataChanged                       // a mutation finished
	EventSectionActivated                  // a section body was double-clicked (Section)
	EventScopeChanged                      // the editing scope changed (Section, 0 = root)
	EventExportRequested                   // an export was started (Ranges, Path)
	EventExportFinished                    // an export completed (Path, Err)
	EventProjectReplaced                   // the live project was swapped by load/undo/redo
	EventCursorChanged                     // the pointer affordance changed (Cursor)
	EventContextMenu                       // a right click resolved to a target (Hit, Actions)
	EventLogged                            // a line was appended to the event log (Message)
	EventPlaybackRate                      // a playback rate command (Rate)
	eventTypeCount
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventSeek:
		return "seek"
	case EventAboutToModify:
		return "about-to-modify"
	case EventDataChanged:
		return "data-changed"
	case EventSectionActivated:
		return "section-activated"
	case EventScopeChanged:
		return "scope-changed"
	case EventExportRequested:
		return "export-requested"
	case EventExportFinished:
		return "export-finished"
	case EventProjectReplaced:
		return "project-replaced"
	case EventCursorChanged:
		return "cursor-changed"
	case EventContextMenu:
		return "context-menu"
	case EventLogged:
		return "logged"
	case EventPlaybackRate:
		return "playback-rate"
	}
	return "unknown"
}

// Event is the payload delivered to listeners and sinks. Only the fields
// relevant to Type are set.
type Event struct {
	Type    EventType
	Time    int64   // EventSeek
	Rate    float64 // EventPlaybackRate
	Section ID      // EventSectionActivated, EventScopeChanged
	Message string  // EventLogged
	Cursor  Cursor  // EventCursorChanged
	Hit     Hit     // EventContextMenu
	Actions []MenuAction
	Ranges  []Range // EventExportRequested
	Path    string  // export output path
	Err     error   // EventExportFinished
}

// EventSink receives every event a Timeline publishes, after the registered
// listeners. It lets an external system (an ECS world, a log) observe the
// timeline without registering per-type callbacks.
type EventSink interface {
	EmitEvent(Event)
}

type listener struct {
	id uint32
	fn func(Event)
}

type listenerRegistry struct {
	byType [eventTypeCount][]listener
	nextID uint32
	sink   EventSink
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id    uint32
	reg   *listenerRegistry
	event EventType
}

// Remove unregisters the listener so it no longer fires.
func (h ListenerHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *listenerRegistry) on(t EventType, fn func(Event)) ListenerHandle {
	if t >= eventTypeCount {
		return ListenerHandle{}
	}
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], listener{id: id, fn: fn})
	return ListenerHandle{id: id, reg: r, event: t}
}

// emit runs listeners in registration order, then the sink. Listeners
// registered during dispatch do not see the current event.
func (r *listenerRegistry) emit(e Event) {
	if e.Type < eventTypeCount {
		for _, l := range r.byType[e.Type] {
			l.fn(e)
		}
	}
	if r.sink != nil {
		r.sink.EmitEvent(e)
	}
}
