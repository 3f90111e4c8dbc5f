package render

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/reelmark"
)

var (
	red  = reelmark.Color{R: 0xff}
	blue = reelmark.Color{B: 0xff}
)

// fixture is a 1000x200 timeline over a 10s video (10ms per pixel) with a
// Fight section at 2000-5000 in row 0 (y 25..105) and a Goal bookmark at
// 1000. The playhead sits at 6000.
func fixture(t *testing.T) (*reelmark.Timeline, *reelmark.Section) {
	t.Helper()
	p := reelmark.NewProject("/videos/match.mp4")
	p.AddCategory("Fight", reelmark.KindSection, red, "Action")
	p.AddCategory("Good Take", reelmark.KindSection, reelmark.Color{G: 0xff}, "Quality")
	p.AddCategory("Goal", reelmark.KindBookmark, blue, "")
	s := p.NewSection("Fight", 2000)
	s.SetEnd(5000)
	p.Sections = append(p.Sections, s)
	p.Bookmarks = append(p.Bookmarks, p.NewBookmark("Goal", 1000, ""))

	cfg := reelmark.DefaultConfig()
	cfg.FollowPlayhead = false
	tl := reelmark.NewTimeline(p, cfg, 1000, 200)
	tl.SetDuration(10000)
	tl.SetPosition(6000)
	return tl, s
}

func frames(tl *reelmark.Timeline, n int) {
	for range n {
		tl.Update(1.0 / 60)
	}
}

func find(cmds []Command, layer string, typ CommandType) []Command {
	var out []Command
	for _, c := range cmds {
		if c.Layer == layer && c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

func indexOf(cmds []Command, layer string) int {
	for i, c := range cmds {
		if c.Layer == layer {
			return i
		}
	}
	return -1
}

func TestBuild(t *testing.T) {
	tl, s := fixture(t)
	cmds := Build(tl)

	rects := find(cmds, "section", CommandRect)
	if len(rects) != 1 {
		t.Fatalf("section rects = %d, want 1", len(rects))
	}
	r := rects[0]
	if r.ID != s.ID || r.X != 200 || r.W != 300 || r.Y != 29 || r.H != 72 {
		t.Errorf("section rect = %+v", r)
	}
	if r.Color != (color.RGBA{0xc0, 0, 0, 0xc0}) {
		t.Errorf("section color = %v", r.Color)
	}

	marks := find(cmds, "bookmark", CommandCircle)
	if len(marks) != 1 || marks[0].X != 100 || marks[0].Y != 12.5 || marks[0].W != 6 {
		t.Errorf("bookmarks = %+v", marks)
	}
	if ph := find(cmds, "playhead", CommandLine); len(ph) != 1 || ph[0].X != 600 {
		t.Errorf("playhead = %+v", ph)
	}
	if rows := find(cmds, "row", CommandText); len(rows) != 2 || rows[0].Text != "Action" || rows[1].Text != "Quality" {
		t.Errorf("row labels = %+v", rows)
	}
	if indexOf(cmds, "section") > indexOf(cmds, "band") {
		t.Error("band should be drawn over the rows")
	}
	status := find(cmds, "status", CommandText)
	if len(status) != 1 || !strings.HasPrefix(status[0].Text, "0:06.000 / 0:10.000") {
		t.Errorf("status = %+v", status)
	}
}

func TestBuildOpenSectionFollowsPlayhead(t *testing.T) {
	tl, _ := fixture(t)
	tl.SetPosition(7000)
	if err := tl.ToggleSection("Good Take"); err != nil {
		t.Fatal(err)
	}
	tl.SetPosition(8000)
	cmds := Build(tl)

	var open *Command
	for _, c := range find(cmds, "section", CommandText) {
		if c.Text == "Good Take (open)" {
			open = &c
		}
	}
	if open == nil {
		t.Fatal("open section label missing")
	}
	for _, c := range find(cmds, "section", CommandRect) {
		if c.ID == open.ID {
			if c.X != 700 || c.W != 100 || c.Y != 109 {
				t.Errorf("open rect = %+v", c)
			}
			if c.Color.A != 0x80 {
				t.Errorf("open alpha = %#x", c.Color.A)
			}
		}
	}
	if !strings.Contains(StatusLine(tl), "REC") {
		t.Errorf("status = %q", StatusLine(tl))
	}
}

func TestBuildHoveredEdge(t *testing.T) {
	tl, s := fixture(t)
	tl.PointerMove(502, 60)
	lines := find(Build(tl), "section", CommandLine)
	if len(lines) != 1 || lines[0].X != 500 || lines[0].ID != s.ID {
		t.Errorf("edge highlight = %+v", lines)
	}
}

func TestScrollbarThumb(t *testing.T) {
	tl, _ := fixture(t)
	v := tl.Viewport()
	v.Zoom = 2
	v.ScrollOffset = 5000
	thumb := find(Build(tl), "scrollbar", CommandRect)
	if len(thumb) != 2 {
		t.Fatalf("scrollbar rects = %d", len(thumb))
	}
	if thumb[1].X != 500 || thumb[1].W != 500 || thumb[1].Y != 187 {
		t.Errorf("thumb = %+v", thumb[1])
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00.000"},
		{-5, "0:00.000"},
		{6500, "0:06.500"},
		{125042, "2:05.042"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.ms); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want string
	}{
		{ebiten.KeyA, "A"},
		{ebiten.KeyDigit1, "1"},
		{ebiten.KeyArrowLeft, "Left"},
		{ebiten.KeySpace, "Space"},
		{ebiten.KeyF5, "F5"},
		{ebiten.KeyEscape, "Escape"},
		{ebiten.KeyNumpad3, "3"},
		{ebiten.KeyShiftLeft, ""},
		{ebiten.KeyControl, ""},
	}
	for _, tt := range tests {
		if got := keyName(tt.key); got != tt.want {
			t.Errorf("keyName(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestShortcut(t *testing.T) {
	t.Run("undo redo", func(t *testing.T) {
		tl, _ := fixture(t)
		if _, err := tl.AddBookmark("Goal", ""); err != nil {
			t.Fatal(err)
		}
		if ok, err := Shortcut(tl, "Ctrl+Z"); !ok || err != nil {
			t.Fatalf("Ctrl+Z = %v, %v", ok, err)
		}
		if n := len(tl.Project().Bookmarks); n != 1 {
			t.Errorf("bookmarks after undo = %d", n)
		}
		Shortcut(tl, "Ctrl+Shift+Z")
		if n := len(tl.Project().Bookmarks); n != 2 {
			t.Errorf("bookmarks after redo = %d", n)
		}
	})
	t.Run("frame step and jump", func(t *testing.T) {
		tl, _ := fixture(t)
		Shortcut(tl, "Right")
		if tl.Position() != 6033 {
			t.Errorf("after Right = %d", tl.Position())
		}
		Shortcut(tl, "Shift+Left")
		if tl.Position() != 5000 {
			t.Errorf("after Shift+Left = %d", tl.Position())
		}
	})
	t.Run("scope", func(t *testing.T) {
		tl, s := fixture(t)
		if err := tl.EnterScope(s.ID); err != nil {
			t.Fatal(err)
		}
		Shortcut(tl, "Escape")
		if tl.Scope() != nil {
			t.Error("Escape should exit the scope")
		}
	})
	t.Run("toggle by index", func(t *testing.T) {
		tl, _ := fixture(t)
		if ok, err := Shortcut(tl, "Alt+2"); !ok || err != nil {
			t.Fatalf("Alt+2 = %v, %v", ok, err)
		}
		rec, _, _ := tl.Project().FindSection(tl.Recording())
		if rec == nil || rec.CategoryName != "Good Take" {
			t.Errorf("recording = %+v", rec)
		}
		if ok, _ := Shortcut(tl, "Alt+9"); ok {
			t.Error("Alt+9 has no category")
		}
	})
	t.Run("save", func(t *testing.T) {
		tl, _ := fixture(t)
		if ok, _ := Shortcut(tl, "Ctrl+S"); ok {
			t.Error("Ctrl+S without a path should fall through")
		}
		path := filepath.Join(t.TempDir(), "review.json")
		if err := tl.Save(path); err != nil {
			t.Fatal(err)
		}
		os.Remove(path)
		if ok, err := Shortcut(tl, "Ctrl+S"); !ok || err != nil {
			t.Fatalf("Ctrl+S = %v, %v", ok, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		tl, _ := fixture(t)
		if ok, _ := Shortcut(tl, "Q"); ok {
			t.Error("Q is not a shortcut")
		}
	})
}

func TestHandleKeyFallsThroughToKeybinds(t *testing.T) {
	tl, _ := fixture(t)
	if err := tl.BindKey("g", "Goal"); err != nil {
		t.Fatal(err)
	}
	g := NewGame(tl)
	defer g.Close()
	g.HandleKey(0, "g")
	frames(tl, 1)
	if n := len(tl.Project().Bookmarks); n != 2 {
		t.Fatalf("bookmarks = %d, want 2", n)
	}
	if g.Message() != "Added Bookmark via Keybind: Goal" {
		t.Errorf("message = %q", g.Message())
	}
	g.HandleKey(0, "F3")
	if !g.ShowFPS {
		t.Error("F3 should toggle the FPS counter")
	}
	g.HandleKey(0, "F12")
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "timeline" {
		t.Errorf("screenshot queue = %v", g.screenshotQueue)
	}
}

func TestKeyHandlerOverridesKeybind(t *testing.T) {
	tl, _ := fixture(t)
	if err := tl.BindKey("Space", "Goal"); err != nil {
		t.Fatal(err)
	}
	g := NewGame(tl)
	defer g.Close()
	calls := 0
	g.SetKeyHandler("space", func() { calls++ })
	g.HandleKey(0, "Space")
	frames(tl, 1)
	if calls != 1 || len(tl.Project().Bookmarks) != 1 {
		t.Errorf("calls = %d, bookmarks = %d", calls, len(tl.Project().Bookmarks))
	}
	g.SetKeyHandler("Space", nil)
	g.HandleKey(0, "Space")
	frames(tl, 1)
	if calls != 1 || len(tl.Project().Bookmarks) != 2 {
		t.Errorf("after removal: calls = %d, bookmarks = %d", calls, len(tl.Project().Bookmarks))
	}
}

func TestContextMenu(t *testing.T) {
	tl, s := fixture(t)
	g := NewGame(tl)
	defer g.Close()

	tl.InjectRightClick(300, 60)
	frames(tl, 2)
	m := g.Menu()
	if m == nil || m.Hit.ID != s.ID || len(m.Actions) != 5 {
		t.Fatalf("menu = %+v", m)
	}
	texts := find(m.Commands(1000, 200), "menu", CommandText)
	if len(texts) != 5 || texts[3].Text != "4  Delete Section" {
		t.Errorf("menu lines = %+v", texts)
	}

	g.HandleKey(0, "4")
	if g.Menu() != nil {
		t.Error("choosing should close the menu")
	}
	if len(tl.Project().Sections) != 0 {
		t.Error("section not deleted")
	}
	if g.Message() != "Deleted Section: Fight" {
		t.Errorf("message = %q", g.Message())
	}
}

func TestContextMenuEscape(t *testing.T) {
	tl, s := fixture(t)
	if err := tl.EnterScope(s.ID); err != nil {
		t.Fatal(err)
	}
	g := NewGame(tl)
	defer g.Close()
	g.menu = &Menu{Actions: []reelmark.MenuAction{reelmark.ActionProperties}}
	g.HandleKey(0, "Escape")
	if g.Menu() != nil || tl.Scope() == nil {
		t.Error("Escape should only close the menu")
	}
}

func TestMenuChoose(t *testing.T) {
	ctx := context.Background()
	t.Run("properties", func(t *testing.T) {
		tl, s := fixture(t)
		m := &Menu{Hit: reelmark.Hit{ID: s.ID}, Actions: []reelmark.MenuAction{reelmark.ActionProperties}}
		msg, err := m.Choose(ctx, tl, 0)
		if err != nil || msg != "Category: Fight  Start: 2000ms  End: 5000ms" {
			t.Errorf("Choose = %q, %v", msg, err)
		}
	})
	t.Run("reassign cycles", func(t *testing.T) {
		tl, s := fixture(t)
		m := &Menu{Hit: reelmark.Hit{ID: s.ID}, Actions: []reelmark.MenuAction{reelmark.ActionReassignCategory}}
		m.Choose(ctx, tl, 0)
		if s.CategoryName != "Good Take" {
			t.Errorf("category = %q", s.CategoryName)
		}
		m.Choose(ctx, tl, 0)
		if s.CategoryName != "Fight" {
			t.Errorf("category = %q", s.CategoryName)
		}
	})
	t.Run("start time", func(t *testing.T) {
		tl, s := fixture(t)
		tl.SetPosition(1500)
		m := &Menu{Hit: reelmark.Hit{ID: s.ID}, Actions: []reelmark.MenuAction{reelmark.ActionEditStartTime}}
		if _, err := m.Choose(ctx, tl, 0); err != nil || s.StartTime != 1500 {
			t.Errorf("start = %d, %v", s.StartTime, err)
		}
	})
	t.Run("bookmark", func(t *testing.T) {
		tl, _ := fixture(t)
		b := tl.Project().Bookmarks[0]
		m := &Menu{Hit: reelmark.Hit{ID: b.ID}, Actions: []reelmark.MenuAction{reelmark.ActionEditDescription, reelmark.ActionDeleteBookmark}}
		m.Choose(ctx, tl, 0)
		if b.Description != "at 0:06.000" {
			t.Errorf("description = %q", b.Description)
		}
		m.Choose(ctx, tl, 1)
		if len(tl.Project().Bookmarks) != 0 {
			t.Error("bookmark not deleted")
		}
	})
	t.Run("export without exporter", func(t *testing.T) {
		tl, s := fixture(t)
		m := &Menu{Hit: reelmark.Hit{ID: s.ID}, Actions: []reelmark.MenuAction{reelmark.ActionExportSection}}
		if _, err := m.Choose(ctx, tl, 0); err == nil {
			t.Error("expected an error without an exporter")
		}
	})
	t.Run("out of range", func(t *testing.T) {
		tl, _ := fixture(t)
		if _, err := (&Menu{}).Choose(ctx, tl, 0); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestMenuCommandsClamped(t *testing.T) {
	m := &Menu{X: 950, Y: 190, Actions: []reelmark.MenuAction{reelmark.ActionDeleteBookmark, reelmark.ActionEditDescription}}
	bg := find(m.Commands(1000, 200), "menu", CommandRect)
	if len(bg) != 1 || bg[0].X != 830 || bg[0].Y != 162 {
		t.Errorf("menu background = %+v", bg)
	}
}

func TestExportPath(t *testing.T) {
	got := ExportPath("/videos/match.mp4", "Good Take", 1000)
	if want := filepath.Join("/videos", "match_Good_Take_1000.mp4"); got != want {
		t.Errorf("ExportPath = %q, want %q", got, want)
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"timeline", "timeline"},
		{"after-drag", "after-drag"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{0x40, 0x20, 0x00, 0x80, 0xff, 0xff, 0xff, 0xff}, 2, 1)
	if got := img.Pix[:4]; got[0] != 0x7f || got[1] != 0x3f || got[2] != 0 || got[3] != 0x80 {
		t.Errorf("half alpha pixel = %v", got)
	}
	if got := img.Pix[4:8]; got[0] != 0xff || got[3] != 0xff {
		t.Errorf("opaque pixel = %v", got)
	}
}

func TestCursorShape(t *testing.T) {
	if cursorShape(reelmark.CursorResize) != ebiten.CursorShapeEWResize {
		t.Error("resize cursor")
	}
	if cursorShape(reelmark.CursorDefault) != ebiten.CursorShapeDefault {
		t.Error("default cursor")
	}
}

func TestClock(t *testing.T) {
	tl, _ := fixture(t)
	c := NewClock(tl)

	c.Tick(1)
	if tl.Position() != 6000 {
		t.Errorf("paused clock moved the playhead to %d", tl.Position())
	}

	c.Toggle()
	c.Tick(0.5)
	if tl.Position() != 6500 {
		t.Errorf("position = %d, want 6500", tl.Position())
	}

	if !tl.SetPlaybackRate("2x") || c.Rate() != 2 {
		t.Fatalf("rate = %v", c.Rate())
	}
	c.SetPlaybackRate(-1)
	if c.Rate() != 2 {
		t.Errorf("negative rate accepted: %v", c.Rate())
	}

	tl.Seek(1000)
	c.Tick(0.25)
	if tl.Position() != 1500 {
		t.Errorf("after seek position = %d, want 1500", tl.Position())
	}

	c.Tick(10)
	if tl.Position() != 10000 || c.Playing() {
		t.Errorf("position = %d playing = %v, want stopped at the end", tl.Position(), c.Playing())
	}
	c.Toggle()
	c.Tick(0.5)
	if tl.Position() != 1000 {
		t.Errorf("replay from the end: position = %d, want 1000", tl.Position())
	}
}

func TestAttachClockBindsSpace(t *testing.T) {
	tl, _ := fixture(t)
	g := NewGame(tl)
	defer g.Close()
	c := g.AttachClock()
	g.HandleKey(0, "Space")
	if !c.Playing() {
		t.Error("Space should start playback")
	}
	g.HandleKey(0, "Space")
	if c.Playing() {
		t.Error("Space should pause playback")
	}
}
