package reelmark

// syntheticPointerEvent is one injected frame of pointer input, in widget
// coordinates, fed through ProcessPointer exactly like polled input.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	mods    KeyModifiers
	// wheel, when non-zero, makes this a wheel event instead of a pointer frame.
	wheel float64
}

// InjectPress queues a primary-button press at (x, y). The event is consumed
// on the next Update.
func (t *Timeline) InjectPress(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectMove queues a move with the primary button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (t *Timeline) InjectMove(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectHover queues a move with no button held.
func (t *Timeline) InjectHover(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectRelease queues a release at (x, y).
func (t *Timeline) InjectRelease(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false, button: MouseButtonLeft})
}

// InjectClick queues a press and a release at the same point. Consumes two
// frames.
func (t *Timeline) InjectClick(x, y float64) {
	t.InjectPress(x, y)
	t.InjectRelease(x, y)
}

// InjectDoubleClick queues two clicks at the same point. Consumes four
// frames, well inside the double-click window.
func (t *Timeline) InjectDoubleClick(x, y float64) {
	t.InjectClick(x, y)
	t.InjectClick(x, y)
}

// InjectRightClick queues a secondary press and release. The press opens
// the context menu.
func (t *Timeline) InjectRightClick(x, y float64) {
	t.injectQueue = append(t.injectQueue,
		syntheticPointerEvent{x: x, y: y, pressed: true, button: MouseButtonRight},
		syntheticPointerEvent{x: x, y: y, pressed: false, button: MouseButtonRight},
	)
}

// InjectDrag queues a full drag: a press at (fromX, fromY), frames-2
// linearly interpolated moves and a release at (toX, toY). Minimum frames
// is 2.
func (t *Timeline) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	t.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps+1)
		t.InjectMove(fromX+(toX-fromX)*f, fromY+(toY-fromY)*f)
	}
	t.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at (x, y). dy > 0 is away from the user.
func (t *Timeline) InjectWheel(x, y, dy float64, mods KeyModifiers) {
	if dy == 0 {
		return
	}
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y, wheel: dy, mods: mods})
}

// PendingInput reports whether injected events are still queued.
func (t *Timeline) PendingInput() bool {
	return len(t.injectQueue) > 0 || len(t.keyQueue) > 0
}

// processInjectedInput drains queued key chords and pops one pointer event.
// It reports whether a pointer event was consumed, in which case polled
// input should be skipped for the frame.
func (t *Timeline) processInjectedInput() bool {
	for len(t.keyQueue) > 0 {
		chord := t.keyQueue[0]
		t.keyQueue = t.keyQueue[1:]
		t.HandleKeyChord(chord)
	}
	if len(t.injectQueue) == 0 {
		return false
	}
	evt := t.injectQueue[0]
	copy(t.injectQueue, t.injectQueue[1:])
	t.injectQueue = t.injectQueue[:len(t.injectQueue)-1]

	if evt.wheel != 0 {
		t.Wheel(evt.x, evt.y, evt.wheel, evt.mods)
		return true
	}
	t.ProcessPointer(evt.x, evt.y, evt.pressed, evt.button, evt.mods)
	return true
}
