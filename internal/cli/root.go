// Package cli implements the reelmark command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reelmark"
	"github.com/phanxgames/reelmark/export"
	"github.com/phanxgames/reelmark/render"
	"github.com/phanxgames/reelmark/statsview"
)

// App holds the global flags and the collaborators commands use. Tests
// replace the collaborators.
type App struct {
	ConfigPath string
	FFmpeg     string
	Debug      bool
	LogLevel   string

	cfg    reelmark.Config
	logger *slog.Logger

	newExporter func(ffmpeg string, logger *slog.Logger) (reelmark.Exporter, error)
	probe       func(ctx context.Context, ffmpeg, media string) (int64, error)
	runGame     func(title string, g *render.Game, width, height int) error
	runStats    func(p *reelmark.Project, total int64) error
}

// NewRootCmd builds the reelmark command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{
		newExporter: defaultExporter,
		probe:       defaultProbe,
		runGame:     render.Run,
		runStats:    statsview.Run,
	})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reelmark",
		Short:         "Annotate videos with nested sections and bookmarks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start a review of a video
  reelmark new match.mp4 -o match.json
  reelmark open match.json

  # Time spent per category, as markdown
  reelmark stats match.json --markdown

  # Cut every "Good Take" section into one clip
  reelmark export match.json --category "Good Take" -o takes.mp4
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if app.Debug {
			level = slog.LevelDebug
		} else if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		app.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		app.cfg = reelmark.DefaultConfig()
		if app.ConfigPath != "" {
			cfg, err := reelmark.LoadConfig(app.ConfigPath)
			if err != nil {
				return err
			}
			app.cfg = cfg
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("REELMARK_CONFIG", ""), "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&app.FFmpeg, "ffmpeg", envOr("REELMARK_FFMPEG", ""), "Path to the ffmpeg binary (default: search PATH)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Log state transitions and frame counters")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newKeybindsCmd(app))
	cmd.AddCommand(newBindCmd(app))
	cmd.AddCommand(newUnbindCmd(app))
	cmd.AddCommand(newRunCmd(app))

	return cmd
}

// timeline creates a headless-capable timeline with the app's config and
// logger.
func (app *App) timeline(width, height float64) *reelmark.Timeline {
	tl := reelmark.NewTimeline(nil, app.cfg, width, height)
	tl.SetLogger(app.logger)
	tl.SetDebugMode(app.Debug)
	return tl
}

// openDocument loads a project file, or starts a new project when path is
// a video.
func (app *App) openDocument(tl *reelmark.Timeline, path string) error {
	if isProjectFile(path) {
		return tl.Load(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	tl.NewDocument(abs)
	return nil
}

// duration returns the video length in ms: the flag value when set,
// otherwise ffprobe's answer, otherwise the end of the annotated content.
func (app *App) duration(ctx context.Context, p *reelmark.Project, flag int64) int64 {
	if flag > 0 {
		return flag
	}
	if p.VideoPath != "" {
		ms, err := app.probe(ctx, app.FFmpeg, p.VideoPath)
		if err == nil {
			return ms
		}
		app.logger.Warn("could not probe video duration", "video", p.VideoPath, "err", err)
	}
	return contentEnd(p)
}

// contentEnd is the latest section end or bookmark in p.
func contentEnd(p *reelmark.Project) int64 {
	var end int64
	p.WalkSections(func(s, _ *reelmark.Section) bool {
		end = max(end, s.StartTime)
		if s.EndTime != nil {
			end = max(end, *s.EndTime)
		}
		return true
	})
	p.WalkBookmarks(func(b *reelmark.Bookmark, _ *reelmark.Section) bool {
		end = max(end, b.Timestamp)
		return true
	})
	return end
}

func isProjectFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func defaultExporter(ffmpeg string, logger *slog.Logger) (reelmark.Exporter, error) {
	path, err := export.LookupFFmpeg(ffmpeg)
	if err != nil {
		return nil, err
	}
	e := export.New(path)
	e.SetLogger(logger)
	return e, nil
}

func defaultProbe(ctx context.Context, ffmpeg, media string) (int64, error) {
	ffmpegPath, err := export.LookupFFmpeg(ffmpeg)
	if err != nil {
		return 0, err
	}
	ffprobe, err := export.LookupFFprobe(ffmpegPath)
	if err != nil {
		return 0, err
	}
	return export.ProbeDuration(ctx, ffprobe, media)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
