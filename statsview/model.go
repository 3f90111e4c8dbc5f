package statsview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/phanxgames/reelmark"
)

type scopeItem struct {
	scope reelmark.StatsScope
}

func (i scopeItem) FilterValue() string { return strings.TrimSpace(i.scope.Label) }
func (i scopeItem) Title() string       { return i.scope.Label }

type scopeDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newScopeDelegate() scopeDelegate {
	return scopeDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Bold(true),
	}
}

func (d scopeDelegate) Height() int                             { return 1 }
func (d scopeDelegate) Spacing() int                            { return 0 }
func (d scopeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d scopeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}
	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	line := fmt.Sprint(item)
	if t, ok := item.(interface{ Title() string }); ok {
		line = t.Title()
	}
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}
	fmt.Fprint(w, style.Render(line))
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// Model is a two-pane stats browser: the scope list on the left and the
// selected scope's report on the right.
type Model struct {
	project *reelmark.Project
	list    list.Model
	width   int
	height  int
}

// New builds a browser over every scope of p. total is the video duration
// in milliseconds.
func New(p *reelmark.Project, total int64) Model {
	scopes := reelmark.StatsScopes(p, total)
	items := make([]list.Item, len(scopes))
	for i, sc := range scopes {
		items[i] = scopeItem{scope: sc}
	}
	l := list.New(items, newScopeDelegate(), 0, 0)
	l.Title = "Scopes"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return Model{project: p, list: l, width: 100, height: 30}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(m.listWidth(), max(1, m.height-2))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) listWidth() int {
	return min(40, max(12, m.width/3))
}

// Selected returns the highlighted scope.
func (m Model) Selected() reelmark.StatsScope {
	if it, ok := m.list.SelectedItem().(scopeItem); ok {
		return it.scope
	}
	return reelmark.StatsScope{}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.list.Width() == 0 {
		m.list.SetSize(m.listWidth(), max(1, m.height-2))
	}
	reportW := max(20, m.width-m.listWidth()-4)
	report := Report(m.project, m.Selected(), reportW-4)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.list.View(),
		panelStyle.Width(reportW).Render(report),
	)
}

// Run opens the browser on the terminal and blocks until the user quits.
func Run(p *reelmark.Project, total int64) error {
	_, err := tea.NewProgram(New(p, total), tea.WithAltScreen()).Run()
	return err
}
