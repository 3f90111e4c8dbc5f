package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reelmark"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		save      bool
		maxFrames int
		width     int
		height    int
		duration  int64
	)
	cmd := &cobra.Command{
		Use:   "run <project> <script.json>",
		Short: "Replay an input script against a project without a window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			r, err := reelmark.LoadScript(data)
			if err != nil {
				return err
			}
			tl := app.timeline(float64(width), float64(height))
			if err := app.openDocument(tl, args[0]); err != nil {
				return err
			}
			tl.SetDuration(app.duration(cmd.Context(), tl.Project(), duration))
			tl.On(reelmark.EventLogged, func(e reelmark.Event) {
				fmt.Fprintln(cmd.OutOrStdout(), e.Message)
			})
			tl.SetScript(r)

			frames := 0
			for !r.Done() {
				if frames >= maxFrames {
					return fmt.Errorf("run: script not finished after %d frames", maxFrames)
				}
				tl.Update(1.0 / 60)
				frames++
			}
			app.logger.Debug("script finished", "frames", frames, "playhead", tl.Position())

			if err := errors.Join(r.Errors()...); err != nil {
				return err
			}
			if save {
				return tl.Save(args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the edited project back")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 36000, "Give up after this many frames")
	cmd.Flags().IntVar(&width, "width", 1000, "Timeline width the script coordinates assume")
	cmd.Flags().IntVar(&height, "height", 200, "Timeline height the script coordinates assume")
	cmd.Flags().Int64Var(&duration, "duration", 0, "Video duration in ms (default: probe with ffprobe)")
	return cmd
}
