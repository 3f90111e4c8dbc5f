package reelmark

// ScopeNavigator tracks the current editing scope as a stack of section IDs.
// An empty stack is the project root. Enter pushes, Exit pops one level.
//
// Only IDs are stored, so a project replace can never leave the navigator
// holding a section from a discarded document; callers still Reset on
// replace because the IDs themselves are reassigned.
type ScopeNavigator struct {
	stack []ID
}

// Enter pushes a section onto the scope stack.
func (n *ScopeNavigator) Enter(id ID) {
	n.stack = append(n.stack, id)
}

// Exit pops one level. It reports false at the root.
func (n *ScopeNavigator) Exit() bool {
	if len(n.stack) == 0 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// Reset returns to the project root.
func (n *ScopeNavigator) Reset() {
	n.stack = n.stack[:0]
}

// AtRoot reports whether the current scope is the project root.
func (n *ScopeNavigator) AtRoot() bool {
	return len(n.stack) == 0
}

// Depth returns how many sections deep the current scope is.
func (n *ScopeNavigator) Depth() int {
	return len(n.stack)
}

// Path returns the stack from outermost to innermost. The slice is a copy.
func (n *ScopeNavigator) Path() []ID {
	return append([]ID(nil), n.stack...)
}

// CurrentID returns the innermost scope ID, or 0 at the root.
func (n *ScopeNavigator) CurrentID() ID {
	if len(n.stack) == 0 {
		return 0
	}
	return n.stack[len(n.stack)-1]
}

// Current resolves the innermost scope section in p. A stale ID (one that no
// longer resolves) drops the navigator back to the root.
func (n *ScopeNavigator) Current(p *Project) *Section {
	if len(n.stack) == 0 {
		return nil
	}
	s, _, ok := p.FindSection(n.CurrentID())
	if !ok {
		n.Reset()
		return nil
	}
	return s
}

// Visible returns the editable sections and bookmarks of the current scope.
func (n *ScopeNavigator) Visible(p *Project) ([]*Section, []*Bookmark) {
	if s := n.Current(p); s != nil {
		return s.SubSections, s.Bookmarks
	}
	return p.Sections, p.Bookmarks
}

// Bounds returns (0, duration) at the root, otherwise the scope section's
// start and its end time (or duration while it is still open).
func (n *ScopeNavigator) Bounds(p *Project, duration int64) (start, end int64) {
	s := n.Current(p)
	if s == nil {
		return 0, duration
	}
	if s.EndTime != nil {
		return s.StartTime, *s.EndTime
	}
	return s.StartTime, duration
}
