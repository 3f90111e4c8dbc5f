package render

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phanxgames/reelmark"
)

// Menu is an open context menu. Actions are picked with the digit keys.
type Menu struct {
	Hit     reelmark.Hit
	X, Y    float64
	Actions []reelmark.MenuAction
}

const menuLineHeight = 16

// Commands draws the menu as a numbered list anchored at the click point.
func (m *Menu) Commands(width, height float64) []Command {
	w := float32(170)
	h := float32(len(m.Actions)*menuLineHeight + 6)
	x := float32(min(m.X, width-float64(w)))
	y := float32(min(m.Y, height-float64(h)))
	cmds := []Command{{Type: CommandRect, X: x, Y: y, W: w, H: h, Color: bandColor, Layer: "menu"}}
	for i, a := range m.Actions {
		cmds = append(cmds, Command{
			Type: CommandText, X: x + 4, Y: y + 3 + float32(i*menuLineHeight),
			Color: textColor, Text: fmt.Sprintf("%d  %s", i+1, a), Layer: "menu",
		})
	}
	return cmds
}

// Choose runs the action at index i (0-based) against the menu target and
// returns a message for the status area.
func (m *Menu) Choose(ctx context.Context, tl *reelmark.Timeline, i int) (string, error) {
	if i < 0 || i >= len(m.Actions) {
		return "", fmt.Errorf("menu: no action %d", i+1)
	}
	id := m.Hit.ID
	switch a := m.Actions[i]; a {
	case reelmark.ActionDeleteBookmark:
		return "", tl.DeleteBookmark(id)
	case reelmark.ActionEditDescription:
		// The viewer has no text entry; stamp the playhead so the bookmark
		// can be found again from a script.
		return "", tl.SetBookmarkDescription(id, "at "+formatClock(tl.Position()))
	case reelmark.ActionProperties:
		props, err := tl.SectionProperties(id)
		return strings.ReplaceAll(props, "\n", "  "), err
	case reelmark.ActionEditStartTime:
		return "", tl.SetSectionStart(id, tl.Position())
	case reelmark.ActionReassignCategory:
		next, err := nextSectionCategory(tl, id)
		if err != nil {
			return "", err
		}
		return "", tl.SetSectionCategory(id, next)
	case reelmark.ActionDeleteSection:
		return "", tl.DeleteSection(id)
	case reelmark.ActionExportSection:
		s, _, ok := tl.Project().FindSection(id)
		if !ok {
			return "", fmt.Errorf("export: %w", reelmark.ErrUnknownSection)
		}
		out := ExportPath(tl.Project().VideoPath, s.CategoryName, s.StartTime)
		if err := tl.ExportSection(ctx, id, out); err != nil {
			return "", err
		}
		return "exporting " + out, nil
	default:
		return "", fmt.Errorf("menu: unsupported action %s", a)
	}
}

// nextSectionCategory returns the section category after the section's
// current one, wrapping around.
func nextSectionCategory(tl *reelmark.Timeline, id reelmark.ID) (string, error) {
	s, _, ok := tl.Project().FindSection(id)
	if !ok {
		return "", fmt.Errorf("change category: %w", reelmark.ErrUnknownSection)
	}
	cats := tl.Project().CategoriesOf(reelmark.KindSection)
	if len(cats) == 0 {
		return "", fmt.Errorf("change category: %w", reelmark.ErrUnknownCategory)
	}
	for i, c := range cats {
		if c.Name == s.CategoryName {
			return cats[(i+1)%len(cats)].Name, nil
		}
	}
	return cats[0].Name, nil
}

// ExportPath names the clip exported for a section: it sits next to the
// video as <video>_<category>_<start>.mp4.
func ExportPath(video, category string, start int64) string {
	dir := filepath.Dir(video)
	base := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%d.mp4", sanitizeLabel(base), sanitizeLabel(category), start))
}
