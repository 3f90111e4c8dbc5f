package reelmark

import (
	"reflect"
	"testing"
)

func closed(p *Project, cat string, start, end int64) *Section {
	s := p.NewSection(cat, start)
	s.SetEnd(end)
	return s
}

func TestAggregateUncategorized(t *testing.T) {
	p := NewProject("")
	p.AddCategory("A", KindSection, red, "L")
	p.AddCategory("B", KindSection, blue, "L")
	sections := []*Section{closed(p, "A", 0, 2000), closed(p, "B", 5000, 7000)}

	st := Aggregate(p, sections, nil, 10000)
	ls, ok := st.Layer("L")
	if !ok {
		t.Fatal("layer L missing")
	}
	want := map[string]int64{"A": 2000, "B": 2000, UncategorizedLabel: 6000}
	if got := ls.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Map = %v, want %v", got, want)
	}
	if ls.Entries[len(ls.Entries)-1].Label != UncategorizedLabel {
		t.Error("Uncategorized should be last")
	}
	if ls.Total() != 4000 {
		t.Errorf("Total = %d", ls.Total())
	}
}

func TestAggregateEdgeCases(t *testing.T) {
	p := NewProject("")
	p.AddCategory("A", KindSection, red, "L")
	p.AddCategory("Goal", KindBookmark, blue, "")
	open := p.NewSection("A", 100)
	sections := []*Section{
		closed(p, "A", 0, 4000),
		closed(p, "A", 3000, 9000), // overlap: no Uncategorized
		open,
		closed(p, "Gone", 0, 500),
	}
	bookmarks := []*Bookmark{
		p.NewBookmark("Goal", 1, ""),
		p.NewBookmark("Foul", 2, ""),
		p.NewBookmark("Goal", 3, ""),
	}
	st := Aggregate(p, sections, bookmarks, 10000)

	if len(st.Layers) != 2 || st.Layers[0].Layer != "L" || st.Layers[1].Layer != UnknownLayer {
		t.Fatalf("layers = %+v", st.Layers)
	}
	l := st.Layers[0].Map()
	if l["A"] != 10000 {
		t.Errorf("A = %d, want 10000 (open skipped)", l["A"])
	}
	if _, ok := l[UncategorizedLabel]; ok {
		t.Error("Uncategorized should be omitted when not positive")
	}
	unknown := st.Layers[1].Map()
	if unknown["Gone"] != 500 || unknown[UncategorizedLabel] != 9500 {
		t.Errorf("Unknown layer = %v", unknown)
	}
	want := []BookmarkCount{
		{Category: "Goal", Count: 2, Color: blue},
		{Category: "Foul", Count: 1, Color: ColorNeutral},
	}
	if !reflect.DeepEqual(st.Bookmarks, want) {
		t.Errorf("bookmarks = %+v", st.Bookmarks)
	}
}

func TestAggregateInvertedSpanCountsZero(t *testing.T) {
	p := NewProject("")
	p.AddCategory("A", KindSection, red, "L")
	// end before start only comes from a hand-edited document
	sections := []*Section{closed(p, "A", 0, 2000), closed(p, "A", 6000, 5000)}

	l := Aggregate(p, sections, nil, 10000).Layers[0].Map()
	if l["A"] != 2000 || l[UncategorizedLabel] != 8000 {
		t.Errorf("layer = %v, want A 2000 and Uncategorized 8000", l)
	}
}

func TestStatsScopes(t *testing.T) {
	p := nestedProject()
	scopes := StatsScopes(p, 10000)
	labels := make([]string, len(scopes))
	for i, s := range scopes {
		labels[i] = s.Label
	}
	want := []string{
		"Full Video",
		"  Section: Fight (1000-9000)",
		"    Section: Good Take (2000-8000)",
		"      Section: Fight (3000-open)",
	}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels:\n%q\nwant\n%q", labels, want)
	}
	if scopes[3].Duration != 7000 {
		t.Errorf("open scope duration = %d, want 7000", scopes[3].Duration)
	}
	st := scopes[1].Stats(p)
	if st.Duration != 8000 || len(st.Bookmarks) != 1 {
		t.Errorf("root section stats = %+v", st)
	}
	q, _ := st.Layer("Quality")
	if q.Map()["Good Take"] != 6000 {
		t.Errorf("Quality = %v", q.Map())
	}
}
