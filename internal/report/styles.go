package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/featlint/featlint/internal/taxonomy"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers.
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// SevError, SevWarning, and SevInfo color-code warning severities.
	SevError   lipgloss.Style
	SevWarning lipgloss.Style
	SevInfo    lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		SevError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		SevWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		SevInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// SeverityStyle returns the appropriate style for a severity.
func (s Styles) SeverityStyle(severity taxonomy.Severity) lipgloss.Style {
	switch severity {
	case taxonomy.SeverityError:
		return s.SevError
	case taxonomy.SeverityWarning:
		return s.SevWarning
	case taxonomy.SeverityInfo:
		return s.SevInfo
	default:
		return s.Muted
	}
}
