package reelmark

import "log/slog"

// debugf logs at debug level when debug mode is on. Callers pass slog
// key/value pairs.
func (t *Timeline) debugf(msg string, args ...any) {
	if !t.debug {
		return
	}
	t.logger.Debug(msg, args...)
}

// DebugSummary returns the counters debug mode logs periodically, for
// shells that want to show them in an overlay.
func (t *Timeline) DebugSummary() []slog.Attr {
	sections, bookmarks := t.VisibleItems()
	return []slog.Attr{
		slog.Uint64("frame", t.frame),
		slog.String("state", t.state.String()),
		slog.Int("scope_depth", t.scope.Depth()),
		slog.Int("sections", len(sections)),
		slog.Int("bookmarks", len(bookmarks)),
		slog.Int("undo", t.history.UndoDepth()),
		slog.Int("redo", t.history.RedoDepth()),
		slog.Float64("zoom", t.view.Zoom),
		slog.Int("exports", t.pending),
	}
}
