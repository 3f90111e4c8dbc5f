// Package render draws a reelmark timeline with Ebitengine and feeds polled
// mouse and keyboard state back into it.
//
// Drawing happens in two steps. Build walks the timeline and emits a flat
// list of Commands in painter's order; Game.Draw replays that list onto the
// screen with the vector package. Build never touches ebiten, so the layout
// of a frame can be inspected without a window.
package render

import (
	"fmt"
	"image/color"

	"github.com/phanxgames/reelmark"
)

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandRect   CommandType = iota // filled rectangle
	CommandLine                      // stroked line from (X, Y) to (X2, Y2)
	CommandCircle                    // filled circle centered on (X, Y) with radius W
	CommandText                      // debug-font text with its top-left at (X, Y)
)

// Command is one draw instruction.
type Command struct {
	Type  CommandType
	X, Y  float32
	W, H  float32
	X2    float32
	Y2    float32
	Color color.RGBA
	Text  string
	// Layer groups commands by what they belong to ("band", "row",
	// "section", "bookmark", "playhead", "scrollbar", "status").
	Layer string
	// ID is the section or bookmark the command was emitted for, if any.
	ID reelmark.ID
}

var (
	backgroundColor = color.RGBA{0x1e, 0x1e, 0x22, 0xff}
	bandColor       = color.RGBA{0x2a, 0x2a, 0x30, 0xff}
	rowColors       = [2]color.RGBA{{0x24, 0x24, 0x29, 0xff}, {0x28, 0x28, 0x2e, 0xff}}
	gridColor       = color.RGBA{0x3a, 0x3a, 0x42, 0xff}
	playheadColor   = color.RGBA{0xff, 0x40, 0x40, 0xff}
	scrollbarColor  = color.RGBA{0x55, 0x55, 0x60, 0xff}
	textColor       = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	hoverColor      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// toRGBA converts a category color to a premultiplied color.RGBA with the
// given alpha.
func toRGBA(c reelmark.Color, alpha uint8) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(alpha) / 255),
		G: uint8(uint16(c.G) * uint16(alpha) / 255),
		B: uint8(uint16(c.B) * uint16(alpha) / 255),
		A: alpha,
	}
}

// Build emits the draw commands for one frame of tl.
func Build(tl *reelmark.Timeline) []Command {
	lay := tl.Layout()
	view := tl.Viewport()
	layers := tl.Layers()
	rowH := lay.RowHeight(layers.Len())
	w, h := float32(lay.Width), float32(lay.Height)

	cmds := []Command{
		{Type: CommandRect, W: w, H: h, Color: backgroundColor, Layer: "background"},
	}

	// Layer rows under everything else.
	for i, name := range layers.Names() {
		top := float32(lay.RowTop(i, rowH))
		if top+float32(rowH) < float32(lay.BandHeight) || top > h {
			continue
		}
		cmds = append(cmds,
			Command{Type: CommandRect, Y: top, W: w, H: float32(rowH), Color: rowColors[i%2], Layer: "row"},
			Command{Type: CommandText, X: 4, Y: top + 2, Color: textColor, Text: name, Layer: "row"},
		)
	}

	p := tl.Project()
	_, scopeEnd := tl.ScopeBounds()
	sections, bookmarks := tl.VisibleItems()
	hoverID, hoverEdge := tl.HoveredSection()
	for _, s := range sections {
		row := layers.SectionRow(p, s)
		top := float32(lay.RowTop(row, rowH))
		if top+float32(rowH) <= float32(lay.BandHeight) {
			continue
		}
		x0 := float32(view.TimeToX(float64(s.StartTime)))
		x1 := float32(view.TimeToX(float64(s.EffectiveEnd(tl.Position(), scopeEnd))))
		if x1 < 0 || x0 > w {
			continue
		}
		c := p.ColorOf(s.CategoryName, reelmark.KindSection)
		alpha := uint8(0xc0)
		if s.IsOpen() {
			alpha = 0x80
		}
		cmds = append(cmds, Command{
			Type: CommandRect, X: x0, Y: top + 4, W: max(1, x1-x0), H: float32(rowH) - 8,
			Color: toRGBA(c, alpha), Layer: "section", ID: s.ID,
		})
		label := s.CategoryName
		if s.IsOpen() {
			label += " (open)"
		}
		cmds = append(cmds, Command{Type: CommandText, X: x0 + 3, Y: top + 6, Color: textColor, Text: label, Layer: "section", ID: s.ID})
		if s.ID == hoverID && hoverEdge != reelmark.EdgeNone {
			ex := x0
			if hoverEdge == reelmark.EdgeEnd {
				ex = x1
			}
			cmds = append(cmds, Command{
				Type: CommandLine, X: ex, Y: top, X2: ex, Y2: top + float32(rowH),
				W: 2, Color: hoverColor, Layer: "section", ID: s.ID,
			})
		}
	}

	// The band is drawn after the rows so scrolled rows slide under it.
	band := float32(lay.BandHeight)
	cmds = append(cmds, Command{Type: CommandRect, W: w, H: band, Color: bandColor, Layer: "band"})
	for _, b := range bookmarks {
		x := float32(view.TimeToX(float64(b.Timestamp)))
		if x < 0 || x > w {
			continue
		}
		c := p.ColorOf(b.CategoryName, reelmark.KindBookmark)
		cmds = append(cmds, Command{
			Type: CommandCircle, X: x, Y: band / 2, W: float32(tl.Config().HitRadius),
			Color: toRGBA(c, 0xff), Layer: "bookmark", ID: b.ID,
		})
	}
	cmds = append(cmds, Command{Type: CommandLine, Y: band, X2: w, Y2: band, W: 1, Color: gridColor, Layer: "band"})

	px := float32(view.TimeToX(float64(tl.Position())))
	if px >= 0 && px <= w {
		cmds = append(cmds, Command{Type: CommandLine, X: px, X2: px, Y2: h - float32(lay.ScrollbarHeight), W: 2, Color: playheadColor, Layer: "playhead"})
	}

	cmds = append(cmds, scrollbar(tl)...)
	cmds = append(cmds, Command{Type: CommandText, X: 4, Y: h - float32(lay.ScrollbarHeight) - 16, Color: textColor, Text: StatusLine(tl), Layer: "status"})
	return cmds
}

// scrollbar draws the horizontal scrollbar thumb over the scope.
func scrollbar(tl *reelmark.Timeline) []Command {
	lay := tl.Layout()
	view := tl.Viewport()
	sh := float32(lay.ScrollbarHeight)
	if sh <= 0 {
		return nil
	}
	w := float32(lay.Width)
	y := float32(lay.Height) - sh
	scope := view.ScopeDuration()
	start, end := view.VisibleRange()
	tx := float32((start - float64(view.ScopeStart)) / scope) * w
	tw := float32((end - start) / scope) * w
	return []Command{
		{Type: CommandRect, Y: y, W: w, H: sh, Color: bandColor, Layer: "scrollbar"},
		{Type: CommandRect, X: tx, Y: y + 2, W: max(4, min(tw, w-tx)), H: sh - 4, Color: scrollbarColor, Layer: "scrollbar"},
	}
}

// StatusLine is the one-line summary drawn at the bottom of the widget.
func StatusLine(tl *reelmark.Timeline) string {
	scope := "root"
	if s := tl.Scope(); s != nil {
		scope = s.CategoryName
	}
	line := fmt.Sprintf("%s / %s  zoom %.2fx  scope %s",
		formatClock(tl.Position()), formatClock(tl.Duration()), tl.Viewport().Zoom, scope)
	if tl.Recording() != 0 {
		line += "  REC"
	}
	if n := tl.PendingExports(); n > 0 {
		line += fmt.Sprintf("  exporting %d", n)
	}
	return line
}

// formatClock renders ms as m:ss.mmm.
func formatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
