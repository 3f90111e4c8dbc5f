package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reelmark"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		category string
		start    int64
		output   string
	)
	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Cut sections of a category out of the video",
		Long: `Cut sections out of the project's video with ffmpeg.

With --start only the root section of --category starting at that time is
exported. Otherwise every closed root section of the category is merged into
one file, in timeline order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" || output == "" {
				return errors.New("export: --category and --output are required")
			}
			exp, err := app.newExporter(app.FFmpeg, app.logger)
			if err != nil {
				return err
			}
			tl := app.timeline(0, 0)
			if err := tl.Load(args[0]); err != nil {
				return err
			}
			tl.SetExporter(exp)

			var result error
			tl.On(reelmark.EventExportFinished, func(e reelmark.Event) { result = e.Err })

			if cmd.Flags().Changed("start") {
				id, err := findSection(tl.Project(), category, start)
				if err != nil {
					return err
				}
				if err := tl.ExportSection(cmd.Context(), id, output); err != nil {
					return err
				}
			} else if err := tl.ExportCategory(cmd.Context(), category, output); err != nil {
				return err
			}

			for tl.PendingExports() > 0 {
				time.Sleep(20 * time.Millisecond)
				tl.Update(0)
			}
			if result != nil {
				return result
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Section category to export")
	cmd.Flags().Int64Var(&start, "start", 0, "Export only the section starting at this time (ms)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output media file")
	return cmd
}

// findSection returns the root section of category that starts at start.
func findSection(p *reelmark.Project, category string, start int64) (reelmark.ID, error) {
	for _, s := range p.Sections {
		if s.CategoryName == category && s.StartTime == start {
			return s.ID, nil
		}
	}
	return 0, fmt.Errorf("export: no %q section starts at %dms: %w", category, start, reelmark.ErrUnknownSection)
}
