package reelmark

import (
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, json, want string
	}{
		{"syntax", `{"steps": [`, "parse script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown", `{"steps": [{"action": "click"}, {"action": "teleport"}]}`, "step 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestScriptReviewSession(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "seek", "time": 1000},
		{"action": "section", "category": "Fight"},
		{"action": "seek", "time": 5000},
		{"action": "section", "category": "Fight"},
		{"action": "bookmark", "category": "Goal", "description": "opener"},
		{"action": "doubleclick", "x": 300, "y": 50},
		{"action": "wait", "frames": 3},
		{"action": "seek", "time": 2000},
		{"action": "key", "key": "g", "mods": "ctrl"},
		{"action": "section", "category": "Missing"},
		{"action": "exit"},
		{"action": "wheel", "x": 500, "y": 50, "dy": 1, "mods": "ctrl"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	p := testProject()
	p.Keybinds["Ctrl+G"] = "Goal"
	tl := newTestTimeline(t, p)
	runUntilDone(t, tl, r, 200)

	p = tl.Project()
	if len(p.Sections) != 1 || *p.Sections[0].EndTime != 5000 {
		t.Fatalf("sections = %+v", p.Sections)
	}
	inner := p.Sections[0].Bookmarks
	if len(inner) != 1 || inner[0].Timestamp != 2000 {
		t.Errorf("scoped keybind bookmarks = %+v", inner)
	}
	if len(p.Bookmarks) != 1 || p.Bookmarks[0].Description != "opener" {
		t.Errorf("root bookmarks = %+v", p.Bookmarks)
	}
	if tl.Scope() != nil {
		t.Error("exit step should return to root")
	}
	if len(r.Errors()) != 1 || !strings.Contains(r.Errors()[0].Error(), "step 9") {
		t.Errorf("errors = %v", r.Errors())
	}
	if !approxEqual(tl.Viewport().Zoom, 1.1, epsilon) {
		t.Errorf("Zoom = %f", tl.Viewport().Zoom)
	}
}

func TestScriptUndoRedo(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "bookmark", "category": "Goal"},
		{"action": "bookmark", "category": "Goal"},
		{"action": "undo"},
		{"action": "undo"},
		{"action": "redo"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	tl := newTestTimeline(t, nil)
	runUntilDone(t, tl, r, 50)
	if n := len(tl.Project().Bookmarks); n != 1 {
		t.Errorf("bookmarks = %d, want 1", n)
	}
	if !tl.History().CanRedo() {
		t.Error("one redo should remain")
	}
}

func TestParseMods(t *testing.T) {
	if got := parseMods("ctrl+shift"); got != ModCtrl|ModShift {
		t.Errorf("parseMods = %v", got)
	}
	if got := parseMods(""); got != 0 {
		t.Errorf("parseMods(\"\") = %v", got)
	}
}
