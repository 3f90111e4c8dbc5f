package reelmark

import (
	"errors"
	"slices"
)

// Layer names with special meaning.
const (
	DefaultLayer       = "Default"       // layer of categories that never chose one
	UnknownLayer       = "Unknown"       // stats bucket for sections with no category
	UncategorizedLabel = "Uncategorized" // stats label for uncovered scope time
)

var (
	// ErrUnknownSection is returned when a section ID does not resolve.
	ErrUnknownSection = errors.New("reelmark: unknown section")
	// ErrUnknownBookmark is returned when a bookmark ID does not resolve.
	ErrUnknownBookmark = errors.New("reelmark: unknown bookmark")
	// ErrUnknownCategory is returned when a category name/kind pair does not resolve.
	ErrUnknownCategory = errors.New("reelmark: unknown category")
)

// ID identifies a Section or Bookmark for the lifetime of one Project value.
// IDs are runtime-only; they are not persisted and are reassigned on decode.
type ID uint64

// Category is a named, colored classification. (Name, Kind) is unique
// within a Project. Layer only matters for section categories.
type Category struct {
	Name  string
	Kind  Kind
	Color Color
	Layer string

	// hex is the color text as read from a document, kept only when it is
	// not already the canonical lowercase form.
	hex string
}

// ColorText returns the color as it is written to a document: the spelling
// it was loaded with while that still names Color, otherwise Color.Hex.
func (c Category) ColorText() string {
	if c.hex != "" {
		if parsed, err := ParseColor(c.hex); err == nil && parsed == c.Color {
			return c.hex
		}
	}
	return c.Color.Hex()
}

// Bookmark is a point event. CategoryName is a soft reference.
type Bookmark struct {
	ID           ID
	CategoryName string
	Timestamp    int64
	Description  string
}

// Section is a time interval that owns its nested sections and bookmarks.
// A nil EndTime means the section is still being recorded.
type Section struct {
	ID           ID
	CategoryName string
	StartTime    int64
	EndTime      *int64
	SubSections  []*Section
	Bookmarks    []*Bookmark
}

// IsOpen reports whether the section has no end time yet.
func (s *Section) IsOpen() bool {
	return s.EndTime == nil
}

// SetEnd closes the section at t.
func (s *Section) SetEnd(t int64) {
	s.EndTime = &t
}

// EffectiveEnd returns the end used for drawing and hit testing: EndTime,
// or the playhead for open sections, never past scopeEnd.
func (s *Section) EffectiveEnd(playhead, scopeEnd int64) int64 {
	end := playhead
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return min(end, scopeEnd)
}

// Range returns the closed [start, end] interval. ok is false for open sections.
func (s *Section) Range() (r Range, ok bool) {
	if s.EndTime == nil {
		return Range{}, false
	}
	return Range{Start: s.StartTime, End: *s.EndTime}, true
}

// Project is the whole review document.
type Project struct {
	VideoPath  string
	Categories []Category
	Sections   []*Section
	Bookmarks  []*Bookmark
	Events     []string
	Keybinds   map[string]string

	lastID ID
}

// NewProject creates an empty project for the given video (may be "").
func NewProject(videoPath string) *Project {
	return &Project{
		VideoPath: videoPath,
		Keybinds:  map[string]string{},
	}
}

func (p *Project) nextID() ID {
	p.lastID++
	return p.lastID
}

// NewSection creates an unattached open section with a fresh ID.
func (p *Project) NewSection(category string, start int64) *Section {
	return &Section{ID: p.nextID(), CategoryName: category, StartTime: start}
}

// NewBookmark creates an unattached bookmark with a fresh ID.
func (p *Project) NewBookmark(category string, timestamp int64, description string) *Bookmark {
	return &Bookmark{ID: p.nextID(), CategoryName: category, Timestamp: timestamp, Description: description}
}

// Log appends a line to the append-only event log.
func (p *Project) Log(event string) {
	p.Events = append(p.Events, event)
}

// --- Category registry ---

// Category looks up a category by its (name, kind) key.
func (p *Project) Category(name string, kind Kind) (Category, bool) {
	i := p.categoryIndex(name, kind)
	if i < 0 {
		return Category{}, false
	}
	return p.Categories[i], true
}

func (p *Project) categoryIndex(name string, kind Kind) int {
	return slices.IndexFunc(p.Categories, func(c Category) bool {
		return c.Name == name && c.Kind == kind
	})
}

// CategoriesOf returns the categories of one kind in definition order.
func (p *Project) CategoriesOf(kind Kind) []Category {
	var out []Category
	for _, c := range p.Categories {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// ColorOf returns the category color, or ColorNeutral for orphans.
func (p *Project) ColorOf(name string, kind Kind) Color {
	if c, ok := p.Category(name, kind); ok {
		return c.Color
	}
	return ColorNeutral
}

// AddCategory registers a category. It reports false (and changes nothing)
// if the (name, kind) key already exists. An empty layer becomes DefaultLayer.
func (p *Project) AddCategory(name string, kind Kind, color Color, layer string) bool {
	if p.categoryIndex(name, kind) >= 0 {
		return false
	}
	if layer == "" {
		layer = DefaultLayer
	}
	p.Categories = append(p.Categories, Category{Name: name, Kind: kind, Color: color, Layer: layer})
	return true
}

// RemoveCategory deletes a category. Sections and bookmarks that reference
// it are kept as orphans.
func (p *Project) RemoveCategory(name string, kind Kind) bool {
	i := p.categoryIndex(name, kind)
	if i < 0 {
		return false
	}
	p.Categories = slices.Delete(p.Categories, i, i+1)
	return true
}

// RenameCategory renames a category and rewrites every reference to it at
// any depth. Keybinds pointing at a renamed bookmark category follow it.
func (p *Project) RenameCategory(name string, kind Kind, newName string) error {
	i := p.categoryIndex(name, kind)
	if i < 0 {
		return ErrUnknownCategory
	}
	if name == newName {
		return nil
	}
	if p.categoryIndex(newName, kind) >= 0 {
		return errors.New("reelmark: category already exists: " + newName)
	}
	p.Categories[i].Name = newName
	switch kind {
	case KindSection:
		p.WalkSections(func(s *Section, _ *Section) bool {
			if s.CategoryName == name {
				s.CategoryName = newName
			}
			return true
		})
	case KindBookmark:
		p.WalkBookmarks(func(b *Bookmark, _ *Section) bool {
			if b.CategoryName == name {
				b.CategoryName = newName
			}
			return true
		})
		for chord, cat := range p.Keybinds {
			if cat == name {
				p.Keybinds[chord] = newName
			}
		}
	}
	return nil
}

// SetCategoryColor recolors a category.
func (p *Project) SetCategoryColor(name string, kind Kind, color Color) error {
	i := p.categoryIndex(name, kind)
	if i < 0 {
		return ErrUnknownCategory
	}
	p.Categories[i].Color = color
	return nil
}

// SetCategoryLayer moves a section category to another layer.
func (p *Project) SetCategoryLayer(name string, layer string) error {
	i := p.categoryIndex(name, KindSection)
	if i < 0 {
		return ErrUnknownCategory
	}
	if layer == "" {
		layer = DefaultLayer
	}
	p.Categories[i].Layer = layer
	return nil
}

// SectionLayer returns the layer a section is drawn and counted in.
// ok is false for orphaned sections.
func (p *Project) SectionLayer(s *Section) (layer string, ok bool) {
	c, ok := p.Category(s.CategoryName, KindSection)
	if !ok {
		return "", false
	}
	return c.Layer, true
}

// --- Traversal ---

// WalkSections visits every section depth-first in list order together with
// its parent (nil at the root). Returning false stops the walk.
func (p *Project) WalkSections(fn func(s, parent *Section) bool) {
	walkSections(p.Sections, nil, fn)
}

func walkSections(list []*Section, parent *Section, fn func(s, parent *Section) bool) bool {
	for _, s := range list {
		if !fn(s, parent) {
			return false
		}
		if !walkSections(s.SubSections, s, fn) {
			return false
		}
	}
	return true
}

// WalkBookmarks visits every bookmark at any depth with its owning section
// (nil for root bookmarks). Returning false stops the walk.
func (p *Project) WalkBookmarks(fn func(b *Bookmark, owner *Section) bool) {
	for _, b := range p.Bookmarks {
		if !fn(b, nil) {
			return
		}
	}
	p.WalkSections(func(s, _ *Section) bool {
		for _, b := range s.Bookmarks {
			if !fn(b, s) {
				return false
			}
		}
		return true
	})
}

// FindSection resolves a section ID and returns its parent (nil at the root).
func (p *Project) FindSection(id ID) (s, parent *Section, ok bool) {
	p.WalkSections(func(cur, par *Section) bool {
		if cur.ID == id {
			s, parent, ok = cur, par, true
			return false
		}
		return true
	})
	return s, parent, ok
}

// FindBookmark resolves a bookmark ID and returns its owner (nil at the root).
func (p *Project) FindBookmark(id ID) (b *Bookmark, owner *Section, ok bool) {
	p.WalkBookmarks(func(cur *Bookmark, own *Section) bool {
		if cur.ID == id {
			b, owner, ok = cur, own, true
			return false
		}
		return true
	})
	return b, owner, ok
}

// RemoveSection detaches a section (and its whole subtree) from its owner.
func (p *Project) RemoveSection(id ID) bool {
	s, parent, ok := p.FindSection(id)
	if !ok {
		return false
	}
	del := func(list []*Section) []*Section {
		return slices.DeleteFunc(list, func(x *Section) bool { return x == s })
	}
	if parent == nil {
		p.Sections = del(p.Sections)
	} else {
		parent.SubSections = del(parent.SubSections)
	}
	return true
}

// RemoveBookmark detaches a bookmark from its owner.
func (p *Project) RemoveBookmark(id ID) bool {
	b, owner, ok := p.FindBookmark(id)
	if !ok {
		return false
	}
	del := func(list []*Bookmark) []*Bookmark {
		return slices.DeleteFunc(list, func(x *Bookmark) bool { return x == b })
	}
	if owner == nil {
		p.Bookmarks = del(p.Bookmarks)
	} else {
		owner.Bookmarks = del(owner.Bookmarks)
	}
	return true
}

// assignIDs gives every section and bookmark a fresh ID in traversal order.
func (p *Project) assignIDs() {
	p.lastID = 0
	p.WalkSections(func(s, _ *Section) bool {
		s.ID = p.nextID()
		return true
	})
	p.WalkBookmarks(func(b *Bookmark, _ *Section) bool {
		b.ID = p.nextID()
		return true
	})
}
