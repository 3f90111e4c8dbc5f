package reelmark

import (
	"math"
	"slices"
)

// LayerSet is the sorted, de-duplicated set of section-category layers with
// a row index for each. It is recomputed from the category list whenever it
// is needed; nothing caches it across edits.
type LayerSet struct {
	names []string
	index map[string]int
}

// AllocateLayers derives the layer rows from section categories. With no
// section categories the set is just DefaultLayer.
func AllocateLayers(categories []Category) LayerSet {
	var names []string
	for _, c := range categories {
		if c.Kind != KindSection {
			continue
		}
		layer := c.Layer
		if layer == "" {
			layer = DefaultLayer
		}
		names = append(names, layer)
	}
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) == 0 {
		names = []string{DefaultLayer}
	}
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	return LayerSet{names: names, index: index}
}

// Names returns the layer names in row order. The slice MUST NOT be mutated.
func (l LayerSet) Names() []string {
	return l.names
}

// Len returns the number of rows.
func (l LayerSet) Len() int {
	return len(l.names)
}

// Index returns the row of a layer.
func (l LayerSet) Index(layer string) (int, bool) {
	i, ok := l.index[layer]
	return i, ok
}

// SectionRow returns the row a section occupies. Orphaned sections (and
// sections whose layer is somehow absent) sit in row 0 so they are drawn and
// hit-tested in the same place.
func (l LayerSet) SectionRow(p *Project, s *Section) int {
	layer, ok := p.SectionLayer(s)
	if !ok {
		return 0
	}
	if i, ok := l.index[layer]; ok {
		return i
	}
	return 0
}

// Layout is the vertical geometry of the timeline widget: a fixed bookmark
// band on top, a vertically scrollable stack of layer rows, and a reserved
// scrollbar strip at the bottom.
type Layout struct {
	Width, Height   float64
	BandHeight      float64
	MinRowHeight    float64
	ScrollbarHeight float64
	// VerticalOffset scrolls the layer rows (not the bookmark band).
	VerticalOffset float64
}

// NewLayout builds a layout from the configured band/row/scrollbar sizes.
func NewLayout(cfg Config, width, height float64) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		BandHeight:      cfg.BandHeight,
		MinRowHeight:    cfg.MinRowHeight,
		ScrollbarHeight: cfg.ScrollbarHeight,
	}
}

// AvailableHeight is the height left for layer rows.
func (l Layout) AvailableHeight() float64 {
	return math.Max(0, l.Height-l.BandHeight-l.ScrollbarHeight)
}

// RowHeight returns max(MinRowHeight, AvailableHeight/rows).
func (l Layout) RowHeight(rows int) float64 {
	if rows <= 0 {
		return l.MinRowHeight
	}
	return math.Max(l.MinRowHeight, l.AvailableHeight()/float64(rows))
}

// InBand reports whether y falls in the bookmark band.
func (l Layout) InBand(y float64) bool {
	return y < l.BandHeight
}

// RowAt returns the layer row under y (may be out of range).
func (l Layout) RowAt(y, rowHeight float64) int {
	if rowHeight <= 0 {
		return -1
	}
	return int(math.Floor((y - l.BandHeight + l.VerticalOffset) / rowHeight))
}

// RowTop returns the on-screen y of a row's top edge.
func (l Layout) RowTop(row int, rowHeight float64) float64 {
	return l.BandHeight + float64(row)*rowHeight - l.VerticalOffset
}

// ScrollVertical moves the rows by delta pixels, clamped so the last row
// never scrolls above the bottom of the available area.
func (l *Layout) ScrollVertical(delta float64, rows int) {
	content := float64(rows) * l.RowHeight(rows)
	maxOffset := math.Max(0, content-l.AvailableHeight())
	l.VerticalOffset = clampf(l.VerticalOffset+delta, 0, maxOffset)
}
