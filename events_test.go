package reelmark

import (
	"slices"
	"testing"
)

func TestListenerOrderAndRemove(t *testing.T) {
	tl := newTestTimeline(t, nil)
	var order []string
	h1 := tl.On(EventSeek, func(Event) { order = append(order, "a") })
	tl.On(EventSeek, func(Event) { order = append(order, "b") })
	sink := &recorder{}
	tl.SetSink(sink)

	tl.Seek(100)
	if !slices.Equal(order, []string{"a", "b"}) {
		t.Errorf("order = %v", order)
	}
	if sink.count(EventSeek) != 1 {
		t.Errorf("sink saw %d seeks", sink.count(EventSeek))
	}

	h1.Remove()
	h1.Remove()
	order = nil
	tl.Seek(200)
	if !slices.Equal(order, []string{"b"}) {
		t.Errorf("after remove order = %v", order)
	}
}

func TestListenerSeesTypeOnly(t *testing.T) {
	tl := newTestTimeline(t, nil)
	n := 0
	tl.On(EventDataChanged, func(Event) { n++ })
	tl.Seek(10)
	if n != 0 {
		t.Error("data-changed listener fired on seek")
	}
	ListenerHandle{}.Remove()
}

func TestEventTypeString(t *testing.T) {
	if EventAboutToModify.String() != "about-to-modify" || EventType(200).String() != "unknown" {
		t.Error("EventType.String mismatch")
	}
	if tl := newTestTimeline(t, nil); tl.On(EventType(200), func(Event) {}) != (ListenerHandle{}) {
		t.Error("out-of-range event type should return a zero handle")
	}
}
