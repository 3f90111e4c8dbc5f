// Package statsview renders per-scope review statistics for terminals: a
// plain report, a markdown report and an interactive bubbletea browser.
package statsview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/phanxgames/reelmark"
)

const labelWidth = 18

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	layerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// FormatMillis formats a millisecond duration the way the reports show it.
func FormatMillis(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Report renders the stats of one scope as a block of text at most width
// columns wide. Bars are colored with each category's color.
func Report(p *reelmark.Project, sc reelmark.StatsScope, width int) string {
	st := sc.Stats(p)
	width = max(width, labelWidth+24)
	barWidth := width - labelWidth - 22

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.TrimSpace(sc.Label)))
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(FormatMillis(st.Duration)))

	if len(st.Layers) == 0 {
		b.WriteString(dimStyle.Render("no sections") + "\n")
	}
	for _, ls := range st.Layers {
		b.WriteString("\n" + layerStyle.Render(ls.Layer) + "\n")
		for _, e := range ls.Entries {
			pct := Percent(e.Duration, st.Duration)
			b.WriteString(entryLine(e.Label, e.Color, e.Duration, pct, barWidth))
			b.WriteByte('\n')
		}
	}

	if len(st.Bookmarks) > 0 {
		b.WriteString("\n" + layerStyle.Render("Bookmarks") + "\n")
		for _, bc := range st.Bookmarks {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(bc.Color.Hex())).Render("●")
			fmt.Fprintf(&b, "%s %s %d\n", swatch, pad(bc.Category, labelWidth), bc.Count)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func entryLine(label string, c reelmark.Color, d int64, pct float64, barWidth int) string {
	n := int(pct / 100 * float64(barWidth))
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(strings.Repeat("█", n))
	rest := strings.Repeat("░", max(0, barWidth-n))
	return fmt.Sprintf("%s %10s %5.1f%% %s%s", pad(label, labelWidth), FormatMillis(d), pct, bar, dimStyle.Render(rest))
}

// pad truncates or right-pads s to exactly w cells.
func pad(s string, w int) string {
	if xansi.StringWidth(s) > w {
		return xansi.Truncate(s, w, "…")
	}
	return s + strings.Repeat(" ", w-xansi.StringWidth(s))
}
