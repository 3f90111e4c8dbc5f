package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/reelmark"
)

// messageFrames is how long a status message stays on screen.
const messageFrames = 180

// Game is an ebiten.Game that shows one timeline filling the window.
type Game struct {
	tl     *reelmark.Timeline
	logger *slog.Logger
	ctx    context.Context

	keys   []ebiten.Key
	cursor reelmark.Cursor
	menu   *Menu
	// pointerX and pointerY are the last polled cursor position.
	pointerX, pointerY float64

	message    string
	messageTTL int

	// ShowFPS draws the FPS/TPS counter in the top-right corner. F3 toggles it.
	ShowFPS bool
	// ScreenshotDir is where F12 screenshots go.
	ScreenshotDir   string
	screenshotQueue []string

	keyHandlers map[string]func()
	clock       *Clock

	// OnUpdate, if set, runs after the timeline has advanced each tick.
	OnUpdate func()

	handles []reelmark.ListenerHandle
}

// NewGame wraps tl. The timeline is resized to the window on the first
// Layout call.
func NewGame(tl *reelmark.Timeline) *Game {
	g := &Game{
		tl:            tl,
		logger:        slog.New(slog.DiscardHandler),
		ctx:           context.Background(),
		ScreenshotDir: "screenshots",
	}
	g.handles = append(g.handles,
		tl.On(reelmark.EventContextMenu, func(e reelmark.Event) {
			g.menu = &Menu{Hit: e.Hit, X: g.pointerX, Y: g.pointerY, Actions: e.Actions}
		}),
		tl.On(reelmark.EventLogged, func(e reelmark.Event) { g.flash(e.Message) }),
		tl.On(reelmark.EventExportFinished, func(e reelmark.Event) {
			if e.Err != nil {
				g.flash("export failed: " + e.Err.Error())
				return
			}
			g.flash("exported " + e.Path)
		}),
	)
	return g
}

// SetLogger sets the logger for screenshot and shortcut failures.
func (g *Game) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	g.logger = l
}

// SetContext sets the context exports started from the menu run under.
func (g *Game) SetContext(ctx context.Context) { g.ctx = ctx }

// Timeline returns the wrapped timeline.
func (g *Game) Timeline() *reelmark.Timeline { return g.tl }

// Menu returns the open context menu, or nil.
func (g *Game) Menu() *Menu { return g.menu }

// Message returns the current status message.
func (g *Game) Message() string { return g.message }

// Close detaches the game's timeline listeners.
func (g *Game) Close() {
	for _, h := range g.handles {
		h.Remove()
	}
	g.handles = nil
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTTL = messageFrames
}

// SetKeyHandler runs fn when chord is pressed, ahead of the built-in
// shortcuts and the project keybinds. A nil fn removes the handler.
func (g *Game) SetKeyHandler(chord string, fn func()) {
	norm, err := reelmark.NormalizeChord(chord)
	if err != nil {
		g.logger.Warn("bad key handler chord", "chord", chord, "err", err)
		return
	}
	if fn == nil {
		delete(g.keyHandlers, norm)
		return
	}
	if g.keyHandlers == nil {
		g.keyHandlers = map[string]func(){}
	}
	g.keyHandlers[norm] = fn
}

// AttachClock drives the playhead with a Clock and binds Space to play and
// pause it.
func (g *Game) AttachClock() *Clock {
	g.clock = NewClock(g.tl)
	g.SetKeyHandler("Space", g.clock.Toggle)
	return g.clock
}

// Clock returns the attached clock, or nil.
func (g *Game) Clock() *Clock { return g.clock }

// Update polls input and advances the timeline one tick.
func (g *Game) Update() error {
	mods := readModifiers()
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.HandleKey(mods, keyName(k))
	}

	if !g.tl.PendingInput() {
		if g.menu != nil && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.menu = nil
		}
		mx, my := ebiten.CursorPosition()
		g.pointerX, g.pointerY = float64(mx), float64(my)
		pollPointer(g.tl, g.pointerX, g.pointerY, mods)
	}
	dt := 1.0 / float64(ebiten.TPS())
	if g.clock != nil {
		g.clock.Tick(dt)
	}
	g.tl.Update(float32(dt))
	if g.OnUpdate != nil {
		g.OnUpdate()
	}

	if c := g.tl.Cursor(); c != g.cursor {
		g.cursor = c
		ebiten.SetCursorShape(cursorShape(c))
	}
	if g.messageTTL > 0 {
		g.messageTTL--
		if g.messageTTL == 0 {
			g.message = ""
		}
	}
	return nil
}

// HandleKey routes one key press: the open menu first, then handlers set
// with SetKeyHandler, then the viewer's own keys and shortcuts, then the
// project keybinds.
func (g *Game) HandleKey(mods reelmark.KeyModifiers, key string) {
	chord := reelmark.FormatChord(mods, key)
	if chord == "" {
		return
	}
	if g.menu != nil {
		if chord == "Escape" {
			g.menu = nil
			return
		}
		if len(chord) == 1 && chord[0] >= '1' && chord[0] <= '9' {
			m := g.menu
			g.menu = nil
			msg, err := m.Choose(g.ctx, g.tl, int(chord[0]-'1'))
			if err != nil {
				g.flash(err.Error())
				return
			}
			if msg != "" {
				g.flash(msg)
			}
			return
		}
	}
	if fn, ok := g.keyHandlers[chord]; ok {
		fn()
		return
	}
	switch chord {
	case "F3":
		g.ShowFPS = !g.ShowFPS
		return
	case "F12":
		g.Screenshot("timeline")
		return
	}
	handled, err := Shortcut(g.tl, chord)
	if err != nil {
		g.logger.Error("shortcut failed", "chord", chord, "err", err)
		g.flash(err.Error())
	}
	if !handled {
		g.tl.KeyPress(mods, key)
	}
}

// Draw renders the timeline, the open menu and the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	cmds := Build(g.tl)
	if g.menu != nil {
		lay := g.tl.Layout()
		cmds = append(cmds, g.menu.Commands(lay.Width, lay.Height)...)
	}
	for _, c := range cmds {
		drawCommand(screen, c)
	}
	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, 4, int(g.tl.Layout().BandHeight)+2)
	}
	if g.ShowFPS {
		w := screen.Bounds().Dx()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), w-100, 4)
	}
	g.flushScreenshots(screen)
}

// Layout keeps the timeline the size of the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	lay := g.tl.Layout()
	if lay.Width != float64(outsideWidth) || lay.Height != float64(outsideHeight) {
		g.tl.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func drawCommand(screen *ebiten.Image, c Command) {
	switch c.Type {
	case CommandRect:
		vector.DrawFilledRect(screen, c.X, c.Y, c.W, c.H, c.Color, false)
	case CommandLine:
		vector.StrokeLine(screen, c.X, c.Y, c.X2, c.Y2, c.W, c.Color, false)
	case CommandCircle:
		vector.DrawFilledCircle(screen, c.X, c.Y, c.W, c.Color, true)
	case CommandText:
		ebitenutil.DebugPrintAt(screen, c.Text, int(c.X), int(c.Y))
	}
}

func cursorShape(c reelmark.Cursor) ebiten.CursorShapeType {
	if c == reelmark.CursorResize {
		return ebiten.CursorShapeEWResize
	}
	return ebiten.CursorShapeDefault
}

// Run opens a window titled title and blocks until it is closed.
func Run(title string, g *Game, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
