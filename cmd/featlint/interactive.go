package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/featlint/featlint/internal/report"
	"github.com/featlint/featlint/internal/taxonomy"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	sevErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	sevWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	sevInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// warningsModel is the Bubble Tea model for browsing warnings.
type warningsModel struct {
	warnings []taxonomy.Warning
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newWarningsModel(warnings []taxonomy.Warning) warningsModel {
	h := help.New()
	content := renderWarningsContent(warnings)
	return warningsModel{
		warnings: warnings,
		help:     h,
		keys:     defaultKeyMap,
		content:  content,
	}
}

func renderWarningsContent(warnings []taxonomy.Warning) string {
	var sb strings.Builder

	errs := 0
	for _, w := range warnings {
		if w.Severity == taxonomy.SeverityError {
			errs++
		}
	}

	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("Featlint: %d warning(s), %d error(s)",
			len(warnings), errs)))
	sb.WriteString("\n\n")

	for _, group := range groupWarnings(warnings) {
		header := group.feature
		if header == "" {
			header = "corpus"
		}
		sb.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("=== %s ===", header)))
		sb.WriteString("\n")

		rows := make([][]string, 0, len(group.warnings))
		for _, w := range group.warnings {
			msg := report.Truncate(w.Message, 50)
			rows = append(rows, []string{
				string(w.Severity),
				string(w.Kind),
				w.Scenario,
				msg,
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(tuiBorderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tuiHeaderStyle
				}
				if col == 0 && row >= 0 && row < len(rows) {
					switch rows[row][0] {
					case string(taxonomy.SeverityError):
						return sevErrorStyle
					case string(taxonomy.SeverityWarning):
						return sevWarningStyle
					case string(taxonomy.SeverityInfo):
						return sevInfoStyle
					}
				}
				return lipgloss.NewStyle()
			}).
			Headers("SEVERITY", "KIND", "SCENARIO", "MESSAGE").
			Rows(rows...)

		sb.WriteString(t.String())
		sb.WriteString("\n\n")
	}

	if len(warnings) == 0 {
		sb.WriteString(statusStyle.Render("No warnings."))
		sb.WriteString("\n")
	}

	return sb.String()
}

type warningGroup struct {
	feature  string
	warnings []taxonomy.Warning
}

func groupWarnings(warnings []taxonomy.Warning) []warningGroup {
	var groups []warningGroup
	for _, w := range warnings {
		n := len(groups)
		if n == 0 || groups[n-1].feature != w.Feature {
			groups = append(groups, warningGroup{feature: w.Feature})
			n++
		}
		groups[n-1].warnings = append(groups[n-1].warnings, w)
	}
	return groups
}

func (m warningsModel) Init() tea.Cmd {
	return nil
}

func (m warningsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 0
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m warningsModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveWarnings launches the Bubble Tea TUI for browsing
// warnings.
func runInteractiveWarnings(warnings []taxonomy.Warning) error {
	model := newWarningsModel(warnings)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
