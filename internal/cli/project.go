package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reelmark"
)

func newNewCmd(app *App) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "new <video>",
		Short: "Create an empty project for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl := app.timeline(0, 0)
			if err := app.openDocument(tl, args[0]); err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
			}
			if err := tl.Save(output); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Project file to write (default: <video>.json)")
	return cmd
}

func newEventsCmd(app *App) *cobra.Command {
	var tail int
	cmd := &cobra.Command{
		Use:   "events <project>",
		Short: "Print the project's event log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := reelmark.LoadProject(args[0])
			if err != nil {
				return err
			}
			lines := p.Events
			if tail > 0 && len(lines) > tail {
				lines = lines[len(lines)-tail:]
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&tail, "tail", "n", 0, "Only print the last n lines")
	return cmd
}

func newKeybindsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keybinds <project>",
		Short: "List the bookmark keybinds of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := reelmark.LoadProject(args[0])
			if err != nil {
				return err
			}
			for _, kb := range reelmark.SortedKeybinds(p) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", kb.Chord, kb.Category)
			}
			return nil
		},
	}
}

func newBindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bind <project> <chord> <category>",
		Short: "Bind a key chord to a bookmark category",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl := app.timeline(0, 0)
			if err := tl.Load(args[0]); err != nil {
				return err
			}
			if err := tl.BindKey(args[1], args[2]); err != nil {
				return err
			}
			return tl.Save(args[0])
		},
	}
}

func newUnbindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unbind <project> <chord>",
		Short: "Remove a key chord binding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl := app.timeline(0, 0)
			if err := tl.Load(args[0]); err != nil {
				return err
			}
			if !tl.UnbindKey(args[1]) {
				return fmt.Errorf("unbind: %q is not bound", args[1])
			}
			return tl.Save(args[0])
		},
	}
}
