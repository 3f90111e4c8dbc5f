package reelmark

import "fmt"

// DefaultUndoLimit is the undo depth used when NewHistory gets a limit < 1.
const DefaultUndoLimit = 50

// History owns the live Project and two stacks of serialized snapshots.
// Snapshot, Undo, Redo and Replace are its only mutators.
type History struct {
	project *Project
	undo    [][]byte
	redo    [][]byte
	limit   int
}

// NewHistory wraps p with empty stacks. limit caps the undo stack.
func NewHistory(p *Project, limit int) *History {
	if p == nil {
		p = NewProject("")
	}
	if limit < 1 {
		limit = DefaultUndoLimit
	}
	return &History{project: p, limit: limit}
}

// Project returns the live document. The pointer changes on Undo, Redo
// and Replace; do not hold it across those calls.
func (h *History) Project() *Project {
	return h.project
}

// Snapshot pushes the current state onto the undo stack, evicting the
// oldest entry past the limit, and clears the redo stack.
func (h *History) Snapshot() error {
	data, err := Encode(h.project)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	h.undo = append(h.undo, data)
	if over := len(h.undo) - h.limit; over > 0 {
		clear(h.undo[:over])
		h.undo = h.undo[over:]
	}
	clear(h.redo)
	h.redo = h.redo[:0]
	return nil
}

// Undo restores the most recent snapshot. It reports false, changing
// nothing, when there is nothing to undo.
func (h *History) Undo() (bool, error) {
	return h.step(&h.undo, &h.redo)
}

// Redo re-applies the most recently undone state. It reports false,
// changing nothing, when there is nothing to redo.
func (h *History) Redo() (bool, error) {
	return h.step(&h.redo, &h.undo)
}

func (h *History) step(from, to *[][]byte) (bool, error) {
	if len(*from) == 0 {
		return false, nil
	}
	top := (*from)[len(*from)-1]
	restored, err := Decode(top)
	if err != nil {
		return false, fmt.Errorf("restore snapshot: %w", err)
	}
	current, err := Encode(h.project)
	if err != nil {
		return false, fmt.Errorf("snapshot: %w", err)
	}
	(*from)[len(*from)-1] = nil
	*from = (*from)[:len(*from)-1]
	*to = append(*to, current)
	h.project = restored
	return true, nil
}

// Replace swaps in a new document and forgets all history.
func (h *History) Replace(p *Project) {
	h.project = p
	h.Clear()
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth returns the number of undo entries.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redo entries.
func (h *History) RedoDepth() int { return len(h.redo) }
