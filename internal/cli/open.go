package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/reelmark"
	"github.com/phanxgames/reelmark/ecs"
	"github.com/phanxgames/reelmark/render"
)

type openOptions struct {
	width, height int
	autosave      bool
	script        string
	duration      int64
}

func newOpenCmd(app *App) *cobra.Command {
	var opts openOptions
	cmd := &cobra.Command{
		Use:   "open <project|video>",
		Short: "Open the timeline editor",
		Long: `Open the timeline editor on a project file or a video.

No video is decoded. A clock stands in for the player: Space plays and
pauses it, and the playhead advances in real time while it runs.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.prepareGame(cmd, args[0], opts)
			if err != nil {
				return err
			}
			defer g.Close()
			return app.runGame(windowTitle(g.Timeline(), ""), g, opts.width, opts.height)
		},
	}
	cmd.Flags().IntVar(&opts.width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&opts.height, "height", 360, "Window height")
	cmd.Flags().BoolVar(&opts.autosave, "autosave", true, "Save the project periodically")
	cmd.Flags().StringVar(&opts.script, "script", "", "Replay a JSON input script after opening")
	cmd.Flags().Int64Var(&opts.duration, "duration", 0, "Video duration in ms (default: probe with ffprobe)")
	return cmd
}

// prepareGame builds the editor for path without opening a window.
func (app *App) prepareGame(cmd *cobra.Command, path string, opts openOptions) (*render.Game, error) {
	tl := app.timeline(float64(opts.width), float64(opts.height))
	if err := app.openDocument(tl, path); err != nil {
		return nil, err
	}
	tl.SetDuration(app.duration(cmd.Context(), tl.Project(), opts.duration))
	if !tl.VideoAvailable() {
		app.logger.Warn("video not found; the timeline works without playback", "video", tl.Project().VideoPath)
	}
	tl.SetAutosave(opts.autosave)
	if exp, err := app.newExporter(app.FFmpeg, app.logger); err == nil {
		tl.SetExporter(exp)
	} else {
		app.logger.Warn("exports disabled", "err", err)
	}
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return nil, err
		}
		r, err := reelmark.LoadScript(data)
		if err != nil {
			return nil, err
		}
		tl.SetScript(r)
	}

	world := donburi.NewWorld()
	tl.SetSink(ecs.NewDonburiSink(world))
	status := ecs.TrackStatus(world)

	g := render.NewGame(tl)
	g.SetLogger(app.logger)
	g.AttachClock()
	g.SetContext(cmd.Context())
	lastTitle := ""
	g.OnUpdate = func() {
		ecs.TimelineEventType.ProcessEvents(world)
		st := ecs.Status.Get(status)
		if title := windowTitle(tl, st.LastLog); title != lastTitle {
			lastTitle = title
			ebiten.SetWindowTitle(title)
		}
	}
	return g, nil
}

// windowTitle shows the project file and the last logged action.
func windowTitle(tl *reelmark.Timeline, last string) string {
	name := "untitled"
	if tl.Path() != "" {
		name = filepath.Base(tl.Path())
	} else if v := tl.Project().VideoPath; v != "" {
		name = filepath.Base(v)
	}
	if last == "" {
		return "reelmark - " + name
	}
	return fmt.Sprintf("reelmark - %s - %s", name, last)
}
