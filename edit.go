package reelmark

import (
	"cmp"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ToggleSection starts recording a section of category at the playhead, or
// ends the active recording there. The new section goes into the current
// scope.
func (t *Timeline) ToggleSection(category string) error {
	p := t.Project()
	if t.recording != 0 {
		s, _, ok := p.FindSection(t.recording)
		if !ok {
			t.recording = 0
		} else {
			t.beginMutation()
			s.SetEnd(t.position)
			t.recording = 0
			t.log("Ended Section")
			t.changed()
			return nil
		}
	}
	if _, ok := p.Category(category, KindSection); !ok {
		return fmt.Errorf("start section %q: %w", category, ErrUnknownCategory)
	}
	t.beginMutation()
	s := p.NewSection(category, t.position)
	if scope := t.Scope(); scope != nil {
		scope.SubSections = append(scope.SubSections, s)
	} else {
		p.Sections = append(p.Sections, s)
	}
	t.recording = s.ID
	t.log("Started Section: " + category)
	t.changed()
	return nil
}

// RandomCategoryColor returns a saturated, bright color for categories the
// user never picked a color for.
func RandomCategoryColor() Color {
	c := colorful.Hsv(rand.Float64()*360, 0.6+rand.Float64()*0.4, 0.8+rand.Float64()*0.2)
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// AddBookmark adds a bookmark at the playhead to the current scope. A
// missing bookmark category is created with a random color first.
func (t *Timeline) AddBookmark(category, description string) (ID, error) {
	if category == "" {
		return 0, fmt.Errorf("add bookmark: %w", ErrUnknownCategory)
	}
	if _, ok := t.Project().Category(category, KindBookmark); !ok {
		t.beginMutation()
		t.Project().AddCategory(category, KindBookmark, RandomCategoryColor(), DefaultLayer)
		t.log("Created new bookmark category: " + category)
	}
	t.beginMutation()
	id := t.appendBookmark(category, description)
	t.log("Added Bookmark: " + category)
	t.changed()
	return id, nil
}

func (t *Timeline) appendBookmark(category, description string) ID {
	p := t.Project()
	b := p.NewBookmark(category, t.position, description)
	if scope := t.Scope(); scope != nil {
		scope.Bookmarks = append(scope.Bookmarks, b)
	} else {
		p.Bookmarks = append(p.Bookmarks, b)
	}
	return b.ID
}

// HandleKeyChord looks a normalized chord up in the keybind table and, on a
// match whose category still exists, adds a bookmark at the playhead. It
// reports whether a bookmark was added.
func (t *Timeline) HandleKeyChord(chord string) bool {
	if chord == "" {
		return false
	}
	cat, ok := t.Project().Keybinds[chord]
	if !ok {
		return false
	}
	if _, ok := t.Project().Category(cat, KindBookmark); !ok {
		t.debugf("keybind to missing category", "chord", chord, "category", cat)
		return false
	}
	t.beginMutation()
	t.appendBookmark(cat, "")
	t.log("Added Bookmark via Keybind: " + cat)
	t.changed()
	return true
}

// --- Keybinds ---

// Keybind is one chord-to-category mapping.
type Keybind struct {
	Chord    string
	Category string
}

// BindKey maps a chord to a bookmark category. The chord is normalized first.
func (t *Timeline) BindKey(chord, category string) error {
	norm, err := NormalizeChord(chord)
	if err != nil {
		return err
	}
	if _, ok := t.Project().Category(category, KindBookmark); !ok {
		return fmt.Errorf("bind %s: %q: %w", norm, category, ErrUnknownCategory)
	}
	p := t.Project()
	if p.Keybinds == nil {
		p.Keybinds = map[string]string{}
	}
	p.Keybinds[norm] = category
	t.changed()
	return nil
}

// UnbindKey removes a chord. It reports whether the chord was bound.
func (t *Timeline) UnbindKey(chord string) bool {
	norm, err := NormalizeChord(chord)
	if err != nil {
		norm = chord
	}
	p := t.Project()
	if _, ok := p.Keybinds[norm]; !ok {
		return false
	}
	delete(p.Keybinds, norm)
	t.changed()
	return true
}

// Keybinds returns the bindings sorted by chord.
func (t *Timeline) Keybinds() []Keybind {
	return SortedKeybinds(t.Project())
}

// SortedKeybinds returns a project's bindings sorted by chord.
func SortedKeybinds(p *Project) []Keybind {
	out := make([]Keybind, 0, len(p.Keybinds))
	for chord, cat := range p.Keybinds {
		out = append(out, Keybind{Chord: chord, Category: cat})
	}
	slices.SortFunc(out, func(a, b Keybind) int { return cmp.Compare(a.Chord, b.Chord) })
	return out
}

// --- Categories ---

// AddCategory registers a category. It reports false, without touching the
// history, when the (name, kind) pair already exists.
func (t *Timeline) AddCategory(name string, kind Kind, color Color, layer string) bool {
	if name == "" {
		return false
	}
	if _, ok := t.Project().Category(name, kind); ok {
		return false
	}
	t.beginMutation()
	t.Project().AddCategory(name, kind, color, layer)
	t.changed()
	return true
}

// RemoveCategory deletes a category. References become orphans.
func (t *Timeline) RemoveCategory(name string, kind Kind) error {
	if _, ok := t.Project().Category(name, kind); !ok {
		return fmt.Errorf("remove category %q: %w", name, ErrUnknownCategory)
	}
	t.beginMutation()
	t.Project().RemoveCategory(name, kind)
	t.changed()
	return nil
}

// RenameCategory renames a category and every reference to it.
func (t *Timeline) RenameCategory(name string, kind Kind, newName string) error {
	if newName == "" {
		return fmt.Errorf("rename category %q: empty name", name)
	}
	if _, ok := t.Project().Category(name, kind); !ok {
		return fmt.Errorf("rename category %q: %w", name, ErrUnknownCategory)
	}
	if _, ok := t.Project().Category(newName, kind); ok && newName != name {
		return fmt.Errorf("rename category %q: %q already exists", name, newName)
	}
	t.beginMutation()
	if err := t.Project().RenameCategory(name, kind, newName); err != nil {
		return err
	}
	t.changed()
	return nil
}

// SetCategoryColor recolors a category.
func (t *Timeline) SetCategoryColor(name string, kind Kind, color Color) error {
	if _, ok := t.Project().Category(name, kind); !ok {
		return fmt.Errorf("recolor category %q: %w", name, ErrUnknownCategory)
	}
	t.beginMutation()
	_ = t.Project().SetCategoryColor(name, kind, color)
	t.changed()
	return nil
}

// SetCategoryLayer moves a section category to another layer.
func (t *Timeline) SetCategoryLayer(name, layer string) error {
	if _, ok := t.Project().Category(name, KindSection); !ok {
		return fmt.Errorf("move category %q: %w", name, ErrUnknownCategory)
	}
	t.beginMutation()
	_ = t.Project().SetCategoryLayer(name, layer)
	t.layout.ScrollVertical(0, t.Layers().Len())
	t.changed()
	return nil
}

// --- Undo / redo ---

// Undo restores the previous document state. The scope returns to the root
// and any drag or recording is cancelled. It reports false when there was
// nothing to undo.
func (t *Timeline) Undo() bool {
	return t.restore(t.history.Undo, "Undid action")
}

// Redo re-applies the last undone state. See Undo.
func (t *Timeline) Redo() bool {
	return t.restore(t.history.Redo, "Redid action")
}

func (t *Timeline) restore(step func() (bool, error), msg string) bool {
	ok, err := step()
	if err != nil {
		t.logger.Error("history restore failed", slog.Any("err", err))
		return false
	}
	if !ok {
		return false
	}
	t.replaced()
	// Published only; the restored document stays identical to its snapshot.
	t.emit(Event{Type: EventLogged, Message: msg})
	t.changed()
	return true
}
