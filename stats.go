package reelmark

import (
	"fmt"
	"slices"
	"strings"
)

// StatEntry is one category's share of a layer.
type StatEntry struct {
	Label    string
	Duration int64
	Color    Color
}

// LayerStats is the duration breakdown of one layer within a scope.
// Entries are in first-seen order with "Uncategorized" last.
type LayerStats struct {
	Layer   string
	Entries []StatEntry
}

// Map returns the entries keyed by label.
func (l LayerStats) Map() map[string]int64 {
	m := make(map[string]int64, len(l.Entries))
	for _, e := range l.Entries {
		m[e.Label] += e.Duration
	}
	return m
}

// Total returns the sum of the category entries, excluding Uncategorized.
func (l LayerStats) Total() int64 {
	var n int64
	for _, e := range l.Entries {
		if e.Label != UncategorizedLabel {
			n += e.Duration
		}
	}
	return n
}

// BookmarkCount is the number of bookmarks of one category.
type BookmarkCount struct {
	Category string
	Count    int
	Color    Color
}

// Stats is the aggregate for one scope.
type Stats struct {
	Duration  int64
	Layers    []LayerStats
	Bookmarks []BookmarkCount
}

// Layer returns the breakdown for a layer by name.
func (s Stats) Layer(name string) (LayerStats, bool) {
	i := slices.IndexFunc(s.Layers, func(l LayerStats) bool { return l.Layer == name })
	if i < 0 {
		return LayerStats{}, false
	}
	return s.Layers[i], true
}

// Aggregate computes per-layer category durations and bookmark counts for
// one scope level. Sections are grouped by their category's layer (or
// UnknownLayer for orphans); open sections are skipped. Time in the scope not
// covered by a layer's categories is reported as Uncategorized when positive.
// Bookmark counts cover only the given list; nested scopes are not merged.
func Aggregate(p *Project, sections []*Section, bookmarks []*Bookmark, duration int64) Stats {
	out := Stats{Duration: duration}

	byLayer := map[string][]*Section{}
	for _, s := range sections {
		layer, ok := p.SectionLayer(s)
		if !ok {
			layer = UnknownLayer
		}
		byLayer[layer] = append(byLayer[layer], s)
	}
	layers := make([]string, 0, len(byLayer))
	for l := range byLayer {
		layers = append(layers, l)
	}
	slices.Sort(layers)

	for _, layer := range layers {
		ls := LayerStats{Layer: layer}
		index := map[string]int{}
		var total int64
		for _, s := range byLayer[layer] {
			if s.EndTime == nil {
				continue
			}
			d := max(0, *s.EndTime-s.StartTime)
			i, ok := index[s.CategoryName]
			if !ok {
				i = len(ls.Entries)
				index[s.CategoryName] = i
				ls.Entries = append(ls.Entries, StatEntry{
					Label: s.CategoryName,
					Color: p.ColorOf(s.CategoryName, KindSection),
				})
			}
			ls.Entries[i].Duration += d
			total += d
		}
		if rest := duration - total; rest > 0 {
			ls.Entries = append(ls.Entries, StatEntry{Label: UncategorizedLabel, Duration: rest, Color: ColorUncategorized})
		}
		out.Layers = append(out.Layers, ls)
	}

	index := map[string]int{}
	for _, b := range bookmarks {
		i, ok := index[b.CategoryName]
		if !ok {
			i = len(out.Bookmarks)
			index[b.CategoryName] = i
			out.Bookmarks = append(out.Bookmarks, BookmarkCount{
				Category: b.CategoryName,
				Color:    p.ColorOf(b.CategoryName, KindBookmark),
			})
		}
		out.Bookmarks[i].Count++
	}
	return out
}

// StatsScope is one selectable aggregation scope.
type StatsScope struct {
	Label     string
	Depth     int
	SectionID ID // 0 for the full video
	Sections  []*Section
	Bookmarks []*Bookmark
	Duration  int64
}

// Label of the root entry returned by StatsScopes.
const FullVideoLabel = "Full Video"

// StatsScopes lists the full video followed by every section depth-first.
// Open sections are measured up to totalDuration.
func StatsScopes(p *Project, totalDuration int64) []StatsScope {
	scopes := []StatsScope{{
		Label:     FullVideoLabel,
		Sections:  p.Sections,
		Bookmarks: p.Bookmarks,
		Duration:  totalDuration,
	}}
	var walk func(list []*Section, depth int)
	walk = func(list []*Section, depth int) {
		for _, s := range list {
			end := totalDuration
			endLabel := "open"
			if s.EndTime != nil {
				end = *s.EndTime
				endLabel = fmt.Sprint(end)
			}
			scopes = append(scopes, StatsScope{
				Label:     fmt.Sprintf("%sSection: %s (%d-%s)", strings.Repeat("  ", depth), s.CategoryName, s.StartTime, endLabel),
				Depth:     depth,
				SectionID: s.ID,
				Sections:  s.SubSections,
				Bookmarks: s.Bookmarks,
				Duration:  max(0, end-s.StartTime),
			})
			walk(s.SubSections, depth+1)
		}
	}
	walk(p.Sections, 1)
	return scopes
}

// Stats aggregates this scope.
func (sc StatsScope) Stats(p *Project) Stats {
	return Aggregate(p, sc.Sections, sc.Bookmarks, sc.Duration)
}
