package reelmark

import (
	"fmt"
	"math"
	"strings"
)

// InteractionState is the drag/hover state of the timeline widget. Only one
// drag can be active at a time.
type InteractionState uint8

const (
	StateIdle                InteractionState = iota // no drag, pointer not over an edge
	StateDraggingBookmark                            // moving a bookmark along the band
	StateDraggingPlayhead                            // scrubbing; every move seeks
	StateDraggingSectionEdge                         // resizing a section (see Timeline.DragEdge)
	StateHoveringEdge                                // idle, pointer over a section edge
)

// String returns a short name for the state.
func (s InteractionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraggingBookmark:
		return "dragging-bookmark"
	case StateDraggingPlayhead:
		return "dragging-playhead"
	case StateDraggingSectionEdge:
		return "dragging-section-edge"
	case StateHoveringEdge:
		return "hovering-edge"
	}
	return "unknown"
}

// MenuAction is an entry of a context menu.
type MenuAction uint8

const (
	ActionDeleteBookmark   MenuAction = iota + 1 // remove the bookmark
	ActionEditDescription                        // change the bookmark description
	ActionProperties                             // show section details; read-only
	ActionEditStartTime                          // type a new start time
	ActionReassignCategory                       // move the section to another category
	ActionDeleteSection                          // remove the section and its subtree
	ActionExportSection                          // cut the section out of the video
)

// String returns the menu label.
func (a MenuAction) String() string {
	switch a {
	case ActionDeleteBookmark:
		return "Delete Bookmark"
	case ActionEditDescription:
		return "Edit Description"
	case ActionProperties:
		return "Properties"
	case ActionEditStartTime:
		return "Edit Time"
	case ActionReassignCategory:
		return "Change Category"
	case ActionDeleteSection:
		return "Delete Section"
	case ActionExportSection:
		return "Export Segment"
	}
	return "unknown"
}

var (
	bookmarkMenu = []MenuAction{ActionDeleteBookmark, ActionEditDescription}
	sectionMenu  = []MenuAction{ActionProperties, ActionEditStartTime, ActionReassignCategory, ActionDeleteSection, ActionExportSection}
)

// DragEdge returns the edge being dragged while in StateDraggingSectionEdge.
func (t *Timeline) DragEdge() Edge { return t.dragEdge }

// HoveredSection returns the section whose edge is under the pointer, or 0.
func (t *Timeline) HoveredSection() (ID, Edge) { return t.hoverSection, t.hoverEdge }

func (t *Timeline) setState(s InteractionState) {
	if t.state == s {
		return
	}
	t.debugf("interaction state", "from", t.state.String(), "to", s.String())
	t.state = s
}

func (t *Timeline) setCursor(c Cursor) {
	if t.cursor == c {
		return
	}
	t.cursor = c
	t.emit(Event{Type: EventCursorChanged, Cursor: c})
}

// cancelDrag drops any drag without logging or notifying. Used when the
// document or scope changes under the pointer.
func (t *Timeline) cancelDrag() {
	t.dragBookmark, t.dragSection, t.dragEdge = 0, 0, EdgeNone
	t.setState(StateIdle)
}

// seek clamps to [0, duration], moves the playhead and tells the player.
func (t *Timeline) seek(ms float64) {
	pos := int64(math.Max(0, math.Min(ms, float64(t.duration))))
	t.position = pos
	if t.player != nil {
		t.player.Seek(pos)
	}
	t.emit(Event{Type: EventSeek, Time: pos})
}

// PointerDown handles a primary-button press at widget coordinates.
func (t *Timeline) PointerDown(x, y float64) {
	if t.duration <= 0 || t.state != StateIdle && t.state != StateHoveringEdge {
		return
	}
	ht := t.hitTester()
	if t.layout.InBand(y) {
		if b := ht.BookmarkAt(x); b != nil {
			t.beginMutation()
			t.dragBookmark = b.ID
			t.setState(StateDraggingBookmark)
			return
		}
		t.setState(StateDraggingPlayhead)
		t.seek(t.view.XToTime(x))
		return
	}

	row := t.layout.RowAt(y, t.layout.RowHeight(ht.Layers.Len()))
	if s, edge := ht.EdgeAt(x, row); s != nil {
		t.beginMutation()
		t.dragSection, t.dragEdge = s.ID, edge
		t.setState(StateDraggingSectionEdge)
		t.setCursor(CursorResize)
		return
	}
	t.setState(StateDraggingPlayhead)
	t.seek(t.view.XToTime(x))
}

// PointerMove handles pointer motion, held or not.
func (t *Timeline) PointerMove(x, y float64) {
	start, end := t.ScopeBounds()
	tm := t.view.XToTime(x)
	clamped := int64(math.Max(float64(start), math.Min(tm, float64(end))))

	switch t.state {
	case StateDraggingBookmark:
		if b, _, ok := t.Project().FindBookmark(t.dragBookmark); ok {
			b.Timestamp = clamped
		}
	case StateDraggingPlayhead:
		t.seek(tm)
	case StateDraggingSectionEdge:
		s, _, ok := t.Project().FindSection(t.dragSection)
		if !ok {
			t.cancelDrag()
			return
		}
		switch t.dragEdge {
		case EdgeStart:
			hi := end
			if s.EndTime != nil {
				hi = *s.EndTime
			}
			s.StartTime = clampInt(clamped, start, hi-1)
		case EdgeEnd:
			s.SetEnd(clampInt(clamped, s.StartTime+1, end))
		}
	default:
		t.hover(x, y)
	}
}

// hover updates edge affordance while idle. It never mutates the document.
func (t *Timeline) hover(x, y float64) {
	t.hoverSection, t.hoverEdge = 0, EdgeNone
	if !t.layout.InBand(y) {
		ht := t.hitTester()
		row := t.layout.RowAt(y, t.layout.RowHeight(ht.Layers.Len()))
		if s, edge := ht.EdgeAt(x, row); s != nil {
			t.hoverSection, t.hoverEdge = s.ID, edge
		}
	}
	if t.hoverSection != 0 {
		t.setState(StateHoveringEdge)
		t.setCursor(CursorResize)
		return
	}
	t.setState(StateIdle)
	t.setCursor(CursorDefault)
}

// PointerUp ends the active drag, logging what changed.
func (t *Timeline) PointerUp(x, y float64) {
	switch t.state {
	case StateDraggingBookmark:
		if b, _, ok := t.Project().FindBookmark(t.dragBookmark); ok {
			t.log(fmt.Sprintf("Moved Bookmark '%s'", b.CategoryName))
		}
		t.changed()
	case StateDraggingSectionEdge:
		if s, _, ok := t.Project().FindSection(t.dragSection); ok {
			t.log(fmt.Sprintf("Resized Section '%s'", s.CategoryName))
		}
		t.changed()
	case StateDraggingPlayhead:
	default:
		return
	}
	t.cancelDrag()
	t.hover(x, y)
}

// DoubleClick activates the section body under the pointer and enters its
// scope. The bookmark band ignores double clicks.
func (t *Timeline) DoubleClick(x, y float64) {
	if t.layout.InBand(y) {
		return
	}
	ht := t.hitTester()
	row := t.layout.RowAt(y, t.layout.RowHeight(ht.Layers.Len()))
	s := ht.BodyAt(t.view.XToTime(x), row)
	if s == nil {
		return
	}
	id := s.ID
	t.emit(Event{Type: EventSectionActivated, Section: id})
	_ = t.EnterScope(id)
}

// Wheel handles one wheel event. dy > 0 is away from the user. Ctrl zooms
// around x, Shift scrolls the layer rows, anything else scrolls time.
func (t *Timeline) Wheel(x, y, dy float64, mods KeyModifiers) {
	if t.duration <= 0 || dy == 0 {
		return
	}
	up := dy > 0
	switch {
	case mods&ModCtrl != 0:
		t.view.ZoomAt(x, up, t.cfg.ZoomStep)
	case mods&ModShift != 0:
		step := t.cfg.VerticalScrollStep
		if up {
			step = -step
		}
		t.layout.ScrollVertical(step, t.Layers().Len())
	default:
		ticks := 1
		if up {
			ticks = -1
		}
		t.view.ScrollBy(ticks, t.cfg.ScrollStep)
	}
}

// ContextMenu resolves a secondary click and publishes the actions that
// apply to its target. It returns the hit and the actions (nil for empty space).
func (t *Timeline) ContextMenu(x, y float64) (Hit, []MenuAction) {
	if t.duration <= 0 {
		return Hit{}, nil
	}
	ht := t.hitTester()
	hit := Hit{Time: t.view.XToTime(x), InBand: t.layout.InBand(y), Row: -1}
	var actions []MenuAction
	if hit.InBand {
		if b := ht.BookmarkAt(x); b != nil {
			hit.Kind, hit.ID = HitBookmark, b.ID
			actions = bookmarkMenu
		}
	} else {
		hit.Row = t.layout.RowAt(y, t.layout.RowHeight(ht.Layers.Len()))
		if s := ht.BodyAt(hit.Time, hit.Row); s != nil {
			hit.Kind, hit.ID = HitSectionBody, s.ID
			actions = sectionMenu
		}
	}
	if actions != nil {
		t.emit(Event{Type: EventContextMenu, Hit: hit, Actions: actions})
	}
	return hit, actions
}

// --- Context menu actions ---

// DeleteBookmark removes a bookmark from wherever it lives.
func (t *Timeline) DeleteBookmark(id ID) error {
	if _, _, ok := t.Project().FindBookmark(id); !ok {
		return fmt.Errorf("delete bookmark %d: %w", id, ErrUnknownBookmark)
	}
	t.beginMutation()
	t.Project().RemoveBookmark(id)
	t.log("Deleted Bookmark")
	t.changed()
	return nil
}

// SetBookmarkDescription replaces a bookmark's description.
func (t *Timeline) SetBookmarkDescription(id ID, desc string) error {
	b, _, ok := t.Project().FindBookmark(id)
	if !ok {
		return fmt.Errorf("edit bookmark %d: %w", id, ErrUnknownBookmark)
	}
	t.beginMutation()
	b.Description = desc
	t.changed()
	return nil
}

// SectionProperties describes a section. It does not modify anything.
func (t *Timeline) SectionProperties(id ID) (string, error) {
	s, _, ok := t.Project().FindSection(id)
	if !ok {
		return "", fmt.Errorf("section properties %d: %w", id, ErrUnknownSection)
	}
	end := "Ongoing"
	if s.EndTime != nil {
		end = fmt.Sprintf("%dms", *s.EndTime)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", s.CategoryName)
	fmt.Fprintf(&b, "Start: %dms\n", s.StartTime)
	fmt.Fprintf(&b, "End: %s", end)
	return b.String(), nil
}

// SetSectionStart moves a section's start time, clamped to [0, duration].
func (t *Timeline) SetSectionStart(id ID, ms int64) error {
	s, _, ok := t.Project().FindSection(id)
	if !ok {
		return fmt.Errorf("edit section %d: %w", id, ErrUnknownSection)
	}
	t.beginMutation()
	s.StartTime = clampInt(ms, 0, t.duration)
	t.changed()
	return nil
}

// SetSectionCategory reassigns a section to another category name.
func (t *Timeline) SetSectionCategory(id ID, category string) error {
	s, _, ok := t.Project().FindSection(id)
	if !ok {
		return fmt.Errorf("edit section %d: %w", id, ErrUnknownSection)
	}
	t.beginMutation()
	s.CategoryName = category
	t.log("Changed Section Category to " + category)
	t.changed()
	return nil
}

// DeleteSection removes a section and everything nested in it. If the
// section (or one of its descendants) is the current scope or the active
// recording, those are reset.
func (t *Timeline) DeleteSection(id ID) error {
	s, _, ok := t.Project().FindSection(id)
	if !ok {
		return fmt.Errorf("delete section %d: %w", id, ErrUnknownSection)
	}
	name := s.CategoryName
	t.beginMutation()
	t.Project().RemoveSection(id)
	if t.recording != 0 {
		if _, _, ok := t.Project().FindSection(t.recording); !ok {
			t.recording = 0
		}
	}
	if !t.scope.AtRoot() {
		if _, _, ok := t.Project().FindSection(t.scope.CurrentID()); !ok {
			t.scope.Reset()
			t.refreshScope(true)
		}
	}
	t.log("Deleted Section: " + name)
	t.changed()
	return nil
}

func clampInt(x, lo, hi int64) int64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(x, hi))
}
