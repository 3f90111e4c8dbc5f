package statsview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/phanxgames/reelmark"
)

// Markdown renders every scope of a project as markdown, one section per
// scope with a table per layer.
func Markdown(p *reelmark.Project, total int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Review: %s\n", p.VideoPath)
	for _, sc := range reelmark.StatsScopes(p, total) {
		st := sc.Stats(p)
		fmt.Fprintf(&b, "\n%s %s (%s)\n", strings.Repeat("#", min(sc.Depth+2, 6)), strings.TrimSpace(sc.Label), FormatMillis(st.Duration))
		for _, ls := range st.Layers {
			fmt.Fprintf(&b, "\n**%s**\n\n| Category | Duration | Share |\n|---|---:|---:|\n", ls.Layer)
			for _, e := range ls.Entries {
				fmt.Fprintf(&b, "| %s | %s | %.1f%% |\n", escapeCell(e.Label), FormatMillis(e.Duration), Percent(e.Duration, st.Duration))
			}
		}
		if len(st.Bookmarks) > 0 {
			b.WriteString("\n| Bookmark | Count |\n|---|---:|\n")
			for _, bc := range st.Bookmarks {
				fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(bc.Category), bc.Count)
			}
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders md for a terminal of the given width with a fixed
// glamour style. Rendering failures fall back to the raw markdown.
func RenderMarkdown(md, style string, width int) string {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
