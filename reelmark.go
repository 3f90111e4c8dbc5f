package reelmark

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB color. Categories serialize it as "#rrggbb".
type Color struct {
	R, G, B uint8
}

// ColorNeutral is the fallback used for orphaned sections and bookmarks whose
// category no longer exists.
var ColorNeutral = Color{0xCC, 0xCC, 0xCC}

// ColorUncategorized is the color reported for uncovered scope time in stats.
var ColorUncategorized = Color{0x88, 0x88, 0x88}

// ParseColor parses "#RRGGBB" (either case). The leading '#' is required.
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("parse color %q: want #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the lowercase "#rrggbb" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns the color as premultiplied 16-bit components so Color
// satisfies image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Kind distinguishes section categories from bookmark categories.
type Kind uint8

const (
	KindSection  Kind = iota // interval categories, grouped into layers
	KindBookmark             // point-event categories
)

// String returns the persisted name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindBookmark:
		return "bookmark"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses "section" or "bookmark" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "section":
		return KindSection, nil
	case "bookmark":
		return KindBookmark, nil
	}
	return 0, fmt.Errorf("parse kind %q: want section or bookmark", s)
}

// Edge identifies one boundary of a section.
type Edge uint8

const (
	EdgeNone  Edge = iota // not an edge
	EdgeStart             // start_time boundary
	EdgeEnd               // end_time boundary (or the effective end of an open section)
)

// String returns a lowercase name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgeStart:
		return "start"
	case EdgeEnd:
		return "end"
	default:
		return "none"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button, opens context menus
	MouseButtonMiddle                    // middle mouse button (ignored by the timeline)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Cursor is the pointer affordance the timeline wants the shell to show.
type Cursor uint8

const (
	CursorDefault Cursor = iota // arrow
	CursorResize                // horizontal resize, shown over section edges
)

// Range is a closed time interval in milliseconds, used for export requests.
type Range struct {
	Start, End int64
}

// Duration returns End-Start.
func (r Range) Duration() int64 {
	return r.End - r.Start
}
