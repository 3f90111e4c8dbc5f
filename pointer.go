package reelmark

import "math"

// noClick marks pointerState.clickFrame as unset.
const noClick = ^uint64(0)

// pointerState tracks the primary pointer across frames so that polled
// button state can be turned into discrete down/move/up calls.
type pointerState struct {
	down   bool
	button MouseButton // button captured at press time
	startX float64
	startY float64
	lastX  float64
	lastY  float64

	// clickFrame and clickX/Y remember the last primary press for
	// double-click detection.
	clickFrame     uint64
	clickX, clickY float64
	// doubled is set while the current press was consumed as a double click.
	doubled bool
}

// ProcessPointer feeds one frame of polled pointer state into the timeline.
// It is what a render loop calls every frame with the cursor position and
// whether any button is held.
//
// A primary press that follows the previous one within DoubleClickFrames
// frames and DragDeadZone pixels becomes a DoubleClick instead of a
// PointerDown, and the rest of that press is ignored. A secondary press
// opens the context menu. Middle presses are ignored.
func (t *Timeline) ProcessPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &t.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.doubled = false

		switch button {
		case MouseButtonRight:
			t.ContextMenu(x, y)
		case MouseButtonLeft:
			if t.isDoubleClick(x, y) {
				ps.doubled = true
				ps.clickFrame = noClick
				t.DoubleClick(x, y)
				return
			}
			ps.clickFrame = t.frame
			ps.clickX, ps.clickY = x, y
			t.PointerDown(x, y)
		}

	case !pressed && ps.down:
		if ps.button == MouseButtonLeft && !ps.doubled {
			if x != ps.lastX || y != ps.lastY {
				t.PointerMove(x, y)
			}
			t.PointerUp(x, y)
		}
		ps.down = false
		ps.doubled = false
		ps.lastX, ps.lastY = x, y

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if ps.button == MouseButtonLeft && !ps.doubled {
				t.PointerMove(x, y)
			}
			ps.lastX, ps.lastY = x, y
		}

	default:
		// Hover move.
		if x != ps.lastX || y != ps.lastY {
			t.PointerMove(x, y)
			ps.lastX, ps.lastY = x, y
		}
	}
}

func (t *Timeline) isDoubleClick(x, y float64) bool {
	ps := &t.pointer
	if ps.clickFrame == noClick || t.frame < ps.clickFrame {
		return false
	}
	if t.frame-ps.clickFrame > uint64(t.cfg.DoubleClickFrames) {
		return false
	}
	dx, dy := x-ps.clickX, y-ps.clickY
	return math.Sqrt(dx*dx+dy*dy) <= t.cfg.DragDeadZone
}
