package reelmark

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

var (
	red   = Color{0xff, 0x00, 0x00}
	green = Color{0x00, 0xff, 0x00}
	blue  = Color{0x00, 0x00, 0xff}
)

func int64p(v int64) *int64 { return &v }

// testProject has two section categories on separate layers and one
// bookmark category:
//
//	layer "Quality" (row 1): Good Take
//	layer "Action"  (row 0): Fight
func testProject() *Project {
	p := NewProject("/videos/match.mp4")
	p.AddCategory("Good Take", KindSection, green, "Quality")
	p.AddCategory("Fight", KindSection, red, "Action")
	p.AddCategory("Goal", KindBookmark, blue, "")
	return p
}

// newTestTimeline returns a 1000x200 timeline over a 10s video, so one
// pixel is 10ms at zoom 1. The bookmark band is y < 25; with two layers
// each row is 80px tall: row 0 is y 25..105, row 1 is y 105..185.
func newTestTimeline(t *testing.T, p *Project) *Timeline {
	t.Helper()
	if p == nil {
		p = testProject()
	}
	cfg := DefaultConfig()
	cfg.FollowPlayhead = false
	tl := NewTimeline(p, cfg, 1000, 200)
	tl.SetDuration(10000)
	return tl
}

// frames runs n Update calls.
func frames(tl *Timeline, n int) {
	for range n {
		tl.Update(1.0 / 60)
	}
}

// runUntilDone updates until the script finishes or maxFrames passes.
func runUntilDone(t *testing.T, tl *Timeline, r *ScriptRunner, maxFrames int) {
	t.Helper()
	tl.SetScript(r)
	for i := 0; i < maxFrames && !r.Done(); i++ {
		tl.Update(1.0 / 60)
	}
	if !r.Done() {
		t.Fatalf("script not done after %d frames", maxFrames)
	}
	frames(tl, 2)
}

type recorder struct {
	events []Event
}

func (r *recorder) EmitEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) count(et EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == et {
			n++
		}
	}
	return n
}
