package reelmark

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action      string  `json:"action"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	FromX       float64 `json:"fromX,omitempty"`
	FromY       float64 `json:"fromY,omitempty"`
	ToX         float64 `json:"toX,omitempty"`
	ToY         float64 `json:"toY,omitempty"`
	Frames      int     `json:"frames,omitempty"`
	DY          float64 `json:"dy,omitempty"`
	Mods        string  `json:"mods,omitempty"`
	Key         string  `json:"key,omitempty"`
	Time        int64   `json:"time,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "hover": true, "release": true,
	"click": true, "doubleclick": true, "rightclick": true, "drag": true,
	"wheel": true, "key": true, "wait": true, "seek": true,
	"section": true, "bookmark": true, "undo": true, "redo": true, "exit": true,
}

// ScriptRunner replays a scripted input session across frames. Attach it
// with Timeline.SetScript; it advances once per Update.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	errs      []error
}

// LoadScript parses a JSON input script. Unknown actions are rejected up
// front so a typo fails at load rather than halfway through a run.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a runner; nil detaches.
func (t *Timeline) SetScript(r *ScriptRunner) {
	t.runner = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Errors returns the errors returned by steps that call editing operations.
func (r *ScriptRunner) Errors() []error {
	return r.errs
}

// step advances the runner by one frame. Called from Timeline.Update.
func (r *ScriptRunner) step(t *Timeline) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if t.PendingInput() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		t.InjectPress(st.X, st.Y)
	case "move":
		t.InjectMove(st.X, st.Y)
	case "hover":
		t.InjectHover(st.X, st.Y)
	case "release":
		t.InjectRelease(st.X, st.Y)
	case "click":
		t.InjectClick(st.X, st.Y)
	case "doubleclick":
		t.InjectDoubleClick(st.X, st.Y)
	case "rightclick":
		t.InjectRightClick(st.X, st.Y)
	case "drag":
		t.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		t.InjectWheel(st.X, st.Y, st.DY, parseMods(st.Mods))
	case "key":
		t.KeyPress(parseMods(st.Mods), st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "seek":
		t.Seek(st.Time)
	case "section":
		r.record(t.ToggleSection(st.Category))
	case "bookmark":
		_, err := t.AddBookmark(st.Category, st.Description)
		r.record(err)
	case "undo":
		t.Undo()
	case "redo":
		t.Redo()
	case "exit":
		t.ExitScope()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !t.PendingInput() {
		r.done = true
	}
}

func (r *ScriptRunner) record(err error) {
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("step %d: %w", r.cursor-1, err))
	}
}

// parseMods reads "ctrl+shift" style modifier lists.
func parseMods(s string) KeyModifiers {
	var mods KeyModifiers
	for _, part := range strings.Split(s, "+") {
		if m, ok := modifierFromName(strings.TrimSpace(part)); ok {
			mods |= m
		}
	}
	return mods
}
