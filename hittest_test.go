package reelmark

import "testing"

// hitFixture: Fight (row 0, y 25..105) 2000-5000, Good Take (row 1,
// y 105..185) 3000-open, bookmarks at 1000 and 1003.
func hitFixture() (*Project, *HitTester) {
	p := testProject()
	fight := p.NewSection("Fight", 2000)
	fight.SetEnd(5000)
	take := p.NewSection("Good Take", 3000)
	p.Sections = append(p.Sections, fight, take)
	p.Bookmarks = append(p.Bookmarks,
		p.NewBookmark("Goal", 1000, "first"),
		p.NewBookmark("Goal", 1003, "second"),
	)
	v := NewViewport(1000, 10000)
	return p, &HitTester{
		Project:   p,
		Sections:  p.Sections,
		Bookmarks: p.Bookmarks,
		Viewport:  &v,
		Layout:    NewLayout(DefaultConfig(), 1000, 200),
		Layers:    AllocateLayers(p.Categories),
		Playhead:  6000,
		Radius:    6,
	}
}

func TestHitTester(t *testing.T) {
	p, h := hitFixture()
	fight, take := p.Sections[0], p.Sections[1]
	tests := []struct {
		name string
		x, y float64
		kind HitKind
		id   ID
		edge Edge
	}{
		{"bookmark first wins", 100, 10, HitBookmark, p.Bookmarks[0].ID, EdgeNone},
		{"bookmark edge of radius", 105.5, 10, HitBookmark, p.Bookmarks[0].ID, EdgeNone},
		{"band empty", 400, 10, HitNone, 0, EdgeNone},
		{"start edge", 202, 50, HitSectionEdge, fight.ID, EdgeStart},
		{"end edge", 497, 50, HitSectionEdge, fight.ID, EdgeEnd},
		{"body", 350, 50, HitSectionBody, fight.ID, EdgeNone},
		{"wrong row", 250, 150, HitNone, 0, EdgeNone},
		{"open section end follows playhead", 601, 150, HitSectionEdge, take.ID, EdgeEnd},
		{"open section body", 450, 150, HitSectionBody, take.ID, EdgeNone},
		{"past playhead", 700, 150, HitNone, 0, EdgeNone},
		{"outside radius", 193, 50, HitNone, 0, EdgeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := h.At(tt.x, tt.y)
			if hit.Kind != tt.kind || hit.ID != tt.id || hit.Edge != tt.edge {
				t.Errorf("At(%v,%v) = %v id=%d edge=%v; want %v id=%d edge=%v",
					tt.x, tt.y, hit.Kind, hit.ID, hit.Edge, tt.kind, tt.id, tt.edge)
			}
		})
	}
}

func TestHitEdgeThreeMillisecondsInside(t *testing.T) {
	p, h := hitFixture()
	fight := p.Sections[0]
	// 3ms inside the start edge is 0.3px at this zoom.
	x := h.Viewport.TimeToX(float64(fight.StartTime + 3))
	hit := h.At(x, 50)
	if hit.Kind != HitSectionEdge || hit.Edge != EdgeStart {
		t.Errorf("hit = %v/%v, want section edge start", hit.Kind, hit.Edge)
	}
	if body := h.BodyAt(hit.Time, 0); body != fight {
		t.Error("point should also be inside the body; edge must take priority")
	}
}

func TestHitEdgePriorityAcrossSections(t *testing.T) {
	p := testProject()
	a := p.NewSection("Fight", 1000)
	a.SetEnd(6000)
	b := p.NewSection("Fight", 3000)
	b.SetEnd(4000)
	p.Sections = append(p.Sections, a, b)
	v := NewViewport(1000, 10000)
	h := &HitTester{
		Project: p, Sections: p.Sections, Viewport: &v,
		Layout: NewLayout(DefaultConfig(), 1000, 200),
		Layers: AllocateLayers(p.Categories), Radius: 6,
	}
	// x=300 is inside a's body and on b's start edge; the edge wins even
	// though a comes first in list order.
	hit := h.At(300, 50)
	if hit.Kind != HitSectionEdge || hit.ID != b.ID {
		t.Errorf("hit = %v id=%d, want edge of %d", hit.Kind, hit.ID, b.ID)
	}
}

func TestHitOrphanInRowZero(t *testing.T) {
	p := testProject()
	s := p.NewSection("Deleted", 2000)
	s.SetEnd(3000)
	p.Sections = append(p.Sections, s)
	v := NewViewport(1000, 10000)
	h := &HitTester{
		Project: p, Sections: p.Sections, Viewport: &v,
		Layout: NewLayout(DefaultConfig(), 1000, 200),
		Layers: AllocateLayers(p.Categories), Radius: 6,
	}
	if hit := h.At(250, 50); hit.Kind != HitSectionBody || hit.ID != s.ID {
		t.Errorf("orphan hit = %v", hit.Kind)
	}
}

func TestHitOpenEndClampedToScope(t *testing.T) {
	p, h := hitFixture()
	take := p.Sections[1]
	// Scope [0, 4000] over 1000px is 4ms per pixel; the open section's
	// end clamps to 4000 (x=1000) instead of following the playhead.
	h.Viewport.SetScope(0, 4000, 0)
	if hit := h.At(999, 150); hit.Kind != HitSectionEdge || hit.Edge != EdgeEnd || hit.ID != take.ID {
		t.Errorf("clamped end edge hit = %v/%v", hit.Kind, hit.Edge)
	}
	if hit := h.At(900, 150); hit.Kind != HitSectionBody {
		t.Errorf("body hit = %v", hit.Kind)
	}
}
