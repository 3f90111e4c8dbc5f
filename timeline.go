package reelmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	// ErrNoVideo is returned by operations that need a video path or a known
	// duration when the project has neither.
	ErrNoVideo = errors.New("reelmark: no video")
	// ErrOpenSection is returned when exporting a section that is still being
	// recorded.
	ErrOpenSection = errors.New("reelmark: section is still open")
)

// Player is the playback collaborator. The timeline never decodes video; it
// only tells the player where to go and how fast.
type Player interface {
	Seek(ms int64)
	SetPlaybackRate(rate float64)
}

// Exporter cuts ranges out of a media file into one output file.
type Exporter interface {
	Export(ctx context.Context, input string, ranges []Range, output string) error
}

type exportResult struct {
	output string
	err    error
}

// Timeline is the interactive controller: it owns the document history, the
// scope stack, the viewport and the drag state machine, and it publishes
// events for everything it does. All methods must be called from one
// goroutine (the UI loop); background work reports back through Update.
type Timeline struct {
	cfg       Config
	history   *History
	scope     ScopeNavigator
	view      Viewport
	layout    Layout
	listeners listenerRegistry
	player    Player
	exporter  Exporter
	logger    *slog.Logger
	debug     bool

	position int64
	duration int64

	state        InteractionState
	dragBookmark ID
	dragSection  ID
	dragEdge     Edge
	hoverSection ID
	hoverEdge    Edge
	cursor       Cursor
	recording    ID

	pointer     pointerState
	frame       uint64
	injectQueue []syntheticPointerEvent
	keyQueue    []string
	runner      *ScriptRunner

	path     string
	autosave autosaveState
	exports  chan exportResult
	pending  int
}

// NewTimeline creates a controller over p (nil for an empty project) with a
// widget of the given pixel size.
func NewTimeline(p *Project, cfg Config, width, height float64) *Timeline {
	t := &Timeline{
		cfg:     cfg,
		history: NewHistory(p, cfg.UndoLimit),
		layout:  NewLayout(cfg, width, height),
		logger:  slog.New(slog.DiscardHandler),
		exports: make(chan exportResult, 8),
	}
	t.view = NewViewport(width, 0)
	t.view.MinZoom, t.view.MaxZoom = cfg.MinZoom, cfg.MaxZoom
	t.pointer.clickFrame = noClick
	return t
}

// SetLogger sets the logger used for debug output and background failures.
func (t *Timeline) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	t.logger = l
}

// SetDebugMode enables logging of state transitions and per-frame counters.
func (t *Timeline) SetDebugMode(on bool) { t.debug = on }

// SetPlayer attaches the playback collaborator. Seek and rate commands are
// sent to it in addition to being published as events.
func (t *Timeline) SetPlayer(p Player) { t.player = p }

// SetExporter attaches the media exporter used by ExportSection and ExportCategory.
func (t *Timeline) SetExporter(e Exporter) { t.exporter = e }

// SetSink attaches an EventSink that receives every published event.
func (t *Timeline) SetSink(s EventSink) { t.listeners.sink = s }

// On registers a listener for one event type.
func (t *Timeline) On(et EventType, fn func(Event)) ListenerHandle {
	return t.listeners.on(et, fn)
}

// --- Accessors ---

// Project returns the live document. Do not hold it across Undo, Redo or Load.
func (t *Timeline) Project() *Project { return t.history.Project() }

// History exposes the undo/redo manager.
func (t *Timeline) History() *History { return t.history }

// Config returns the active configuration.
func (t *Timeline) Config() Config { return t.cfg }

// Viewport returns the current time-to-pixel mapping.
func (t *Timeline) Viewport() *Viewport { return &t.view }

// Layout returns the current vertical geometry.
func (t *Timeline) Layout() Layout { return t.layout }

// Layers recomputes the layer rows from the current categories.
func (t *Timeline) Layers() LayerSet { return AllocateLayers(t.Project().Categories) }

// Position returns the playhead in ms.
func (t *Timeline) Position() int64 { return t.position }

// Duration returns the video duration in ms.
func (t *Timeline) Duration() int64 { return t.duration }

// State returns the interaction state.
func (t *Timeline) State() InteractionState { return t.state }

// Cursor returns the pointer affordance.
func (t *Timeline) Cursor() Cursor { return t.cursor }

// Recording returns the ID of the section being recorded, or 0.
func (t *Timeline) Recording() ID { return t.recording }

// Path returns the document path used by Save and autosave ("" if unsaved).
func (t *Timeline) Path() string { return t.path }

// Frame returns the number of Update calls so far.
func (t *Timeline) Frame() uint64 { return t.frame }

// --- Playback notifications ---

// SetPosition is called by the player as playback advances.
func (t *Timeline) SetPosition(ms int64) {
	t.position = ms
	if t.cfg.FollowPlayhead && (t.state == StateIdle || t.state == StateHoveringEdge) {
		t.view.Reveal(float64(ms), t.cfg.FollowDuration)
	}
}

// SetDuration is called by the player once the media duration is known.
func (t *Timeline) SetDuration(ms int64) {
	t.duration = max(0, ms)
	t.refreshScope(false)
}

// Resize updates the widget size in pixels.
func (t *Timeline) Resize(width, height float64) {
	t.view.Width = width
	t.layout.Width, t.layout.Height = width, height
	t.layout.ScrollVertical(0, t.Layers().Len())
	t.view.Clamp()
}

// --- Scope ---

// Scope returns the current scope section, or nil at the root.
func (t *Timeline) Scope() *Section { return t.scope.Current(t.Project()) }

// ScopePath returns the IDs from the outermost to the innermost scope.
func (t *Timeline) ScopePath() []ID { return t.scope.Path() }

// ScopeBounds returns the current scope's time range.
func (t *Timeline) ScopeBounds() (start, end int64) {
	return t.scope.Bounds(t.Project(), t.duration)
}

// VisibleItems returns the editable sections and bookmarks of the scope.
func (t *Timeline) VisibleItems() ([]*Section, []*Bookmark) {
	return t.scope.Visible(t.Project())
}

// EnterScope makes a section of the current scope the new editing scope.
// Zoom resets to 1 and the view scrolls to the section start.
func (t *Timeline) EnterScope(id ID) error {
	sections, _ := t.VisibleItems()
	found := false
	for _, s := range sections {
		if s.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("enter scope %d: %w", id, ErrUnknownSection)
	}
	t.cancelDrag()
	t.scope.Enter(id)
	t.refreshScope(true)
	t.debugf("enter scope", "section", id, "depth", t.scope.Depth())
	return nil
}

// ExitScope returns to the enclosing scope. It reports false at the root.
func (t *Timeline) ExitScope() bool {
	if !t.scope.Exit() {
		return false
	}
	t.cancelDrag()
	t.refreshScope(true)
	t.debugf("exit scope", "depth", t.scope.Depth())
	return true
}

// ExitToRoot returns straight to the project root.
func (t *Timeline) ExitToRoot() {
	if t.scope.AtRoot() {
		return
	}
	t.cancelDrag()
	t.scope.Reset()
	t.refreshScope(true)
}

// refreshScope re-derives the viewport from the scope. When reset is set,
// zoom returns to 1 and the view scrolls to the scope start.
func (t *Timeline) refreshScope(reset bool) {
	start, end := t.ScopeBounds()
	if reset {
		t.view.SetScope(start, end, float64(start))
		t.emit(Event{Type: EventScopeChanged, Section: t.scope.CurrentID()})
		return
	}
	t.view.ScopeStart, t.view.ScopeEnd = start, end
	t.view.Clamp()
}

// --- Internal helpers ---

func (t *Timeline) emit(e Event) {
	t.listeners.emit(e)
}

// beginMutation announces a mutation and snapshots the document before any
// change is made.
func (t *Timeline) beginMutation() {
	t.emit(Event{Type: EventAboutToModify})
	if err := t.history.Snapshot(); err != nil {
		t.logger.Error("snapshot failed", slog.Any("err", err))
	}
}

// log appends a line to the project event log and publishes it.
func (t *Timeline) log(msg string) {
	t.Project().Log(msg)
	t.emit(Event{Type: EventLogged, Message: msg})
}

func (t *Timeline) changed() {
	t.emit(Event{Type: EventDataChanged})
}

// replaced resets everything that may reference the old document.
func (t *Timeline) replaced() {
	t.cancelDrag()
	t.recording = 0
	t.hoverSection, t.hoverEdge = 0, EdgeNone
	t.scope.Reset()
	t.refreshScope(true)
	t.setCursor(CursorDefault)
	t.emit(Event{Type: EventProjectReplaced})
}

func (t *Timeline) hitTester() *HitTester {
	sections, bookmarks := t.VisibleItems()
	return &HitTester{
		Project:   t.Project(),
		Sections:  sections,
		Bookmarks: bookmarks,
		Viewport:  &t.view,
		Layout:    t.layout,
		Layers:    t.Layers(),
		Playhead:  t.position,
		Radius:    t.cfg.HitRadius,
	}
}

// HitTest resolves a widget-space point against the current scope.
func (t *Timeline) HitTest(x, y float64) Hit {
	return t.hitTester().At(x, y)
}

// --- Frame loop ---

// Update advances one frame: scripted and injected input, scroll animation,
// finished exports and the autosave timer. dt is in seconds.
func (t *Timeline) Update(dt float32) {
	t.frame++
	if t.runner != nil {
		t.runner.step(t)
	}
	t.processInjectedInput()
	t.view.Update(dt)
	t.drainExports()
	t.tickAutosave(dt)
	if t.debug && t.frame%600 == 0 {
		t.logger.LogAttrs(context.Background(), slog.LevelDebug, "timeline frame", t.DebugSummary()...)
	}
}

func (t *Timeline) drainExports() {
	for {
		select {
		case r := <-t.exports:
			t.pending--
			if r.err != nil {
				t.logger.Error("export failed", slog.String("output", r.output), slog.Any("err", r.err))
			}
			t.emit(Event{Type: EventExportFinished, Path: r.output, Err: r.err})
		default:
			return
		}
	}
}

// PendingExports returns the number of exports still running.
func (t *Timeline) PendingExports() int { return t.pending }

// VideoAvailable reports whether the project's video file exists. A missing
// video is not an error; playback simply has no source.
func (t *Timeline) VideoAvailable() bool {
	p := t.Project().VideoPath
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}
