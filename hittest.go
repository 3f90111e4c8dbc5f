package reelmark

import "math"

// HitKind classifies what lies under the pointer.
type HitKind uint8

const (
	HitNone        HitKind = iota // empty space
	HitBookmark                   // a bookmark handle in the bookmark band
	HitSectionBody                // inside a section's time span on its row
	HitSectionEdge                // within the hit radius of a section boundary
)

// String returns a short name for the hit kind.
func (k HitKind) String() string {
	switch k {
	case HitBookmark:
		return "bookmark"
	case HitSectionBody:
		return "section-body"
	case HitSectionEdge:
		return "section-edge"
	}
	return "none"
}

// Hit is the result of a hit test. ID names the bookmark or section; Edge is
// set only for HitSectionEdge. Time is the pointer position on the timeline
// and InBand reports whether the pointer was in the bookmark band.
type Hit struct {
	Kind   HitKind
	ID     ID
	Edge   Edge
	Time   float64
	InBand bool
	Row    int
}

// HitTester resolves pointer positions against one scope's visible items.
// It holds no state of its own; the Timeline builds one per query.
type HitTester struct {
	Project   *Project
	Sections  []*Section
	Bookmarks []*Bookmark
	Viewport  *Viewport
	Layout    Layout
	Layers    LayerSet
	Playhead  int64
	Radius    float64
}

// At hit-tests the point (x, y) in widget coordinates.
func (h *HitTester) At(x, y float64) Hit {
	hit := Hit{Time: h.Viewport.XToTime(x), Row: -1}
	if h.Layout.InBand(y) {
		hit.InBand = true
		if b := h.BookmarkAt(x); b != nil {
			hit.Kind, hit.ID = HitBookmark, b.ID
		}
		return hit
	}

	rowHeight := h.Layout.RowHeight(h.Layers.Len())
	hit.Row = h.Layout.RowAt(y, rowHeight)
	if s, edge := h.EdgeAt(x, hit.Row); s != nil {
		hit.Kind, hit.ID, hit.Edge = HitSectionEdge, s.ID, edge
		return hit
	}
	if s := h.BodyAt(hit.Time, hit.Row); s != nil {
		hit.Kind, hit.ID = HitSectionBody, s.ID
	}
	return hit
}

// BookmarkAt returns the first bookmark in list order whose handle lies
// strictly within Radius pixels of x.
func (h *HitTester) BookmarkAt(x float64) *Bookmark {
	for _, b := range h.Bookmarks {
		if math.Abs(x-h.Viewport.TimeToX(float64(b.Timestamp))) < h.Radius {
			return b
		}
	}
	return nil
}

// EdgeAt returns the first section on row whose start or effective end lies
// strictly within Radius pixels of x. The start edge is checked first.
func (h *HitTester) EdgeAt(x float64, row int) (*Section, Edge) {
	for _, s := range h.Sections {
		if h.Layers.SectionRow(h.Project, s) != row {
			continue
		}
		if math.Abs(x-h.Viewport.TimeToX(float64(s.StartTime))) < h.Radius {
			return s, EdgeStart
		}
		end := s.EffectiveEnd(h.Playhead, h.Viewport.ScopeEnd)
		if math.Abs(x-h.Viewport.TimeToX(float64(end))) < h.Radius {
			return s, EdgeEnd
		}
	}
	return nil, EdgeNone
}

// BodyAt returns the first section on row with start <= t <= effective end.
func (h *HitTester) BodyAt(t float64, row int) *Section {
	for _, s := range h.Sections {
		if h.Layers.SectionRow(h.Project, s) != row {
			continue
		}
		end := s.EffectiveEnd(h.Playhead, h.Viewport.ScopeEnd)
		if float64(s.StartTime) <= t && t <= float64(end) {
			return s
		}
	}
	return nil
}
