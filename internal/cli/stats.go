package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reelmark"
	"github.com/phanxgames/reelmark/statsview"
)

func newStatsCmd(app *App) *cobra.Command {
	var (
		duration int64
		markdown bool
		raw      bool
		plain    bool
		style    string
		width    int
	)
	cmd := &cobra.Command{
		Use:   "stats <project>",
		Short: "Show time spent per category in every scope",
		Long: `Show time spent per category for the whole video and for every section.

Without flags an interactive browser opens. --plain prints every scope as
text, --markdown prints a markdown report (rendered for the terminal unless
--raw is given).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := reelmark.LoadProject(args[0])
			if err != nil {
				return err
			}
			total := app.duration(cmd.Context(), p, duration)
			out := cmd.OutOrStdout()
			switch {
			case markdown:
				md := statsview.Markdown(p, total)
				if !raw {
					md = statsview.RenderMarkdown(md, style, width)
				}
				fmt.Fprintln(out, md)
			case plain:
				for i, sc := range reelmark.StatsScopes(p, total) {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintln(out, statsview.Report(p, sc, width))
				}
			default:
				return app.runStats(p, total)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&duration, "duration", 0, "Video duration in ms (default: probe with ffprobe)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print a markdown report")
	cmd.Flags().BoolVar(&raw, "raw", false, "With --markdown, print the markdown source")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print every scope as plain text")
	cmd.Flags().StringVar(&style, "style", "dark", "Glamour style for --markdown (dark|light|notty|...)")
	cmd.Flags().IntVar(&width, "width", 80, "Output width")
	return cmd
}
