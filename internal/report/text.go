package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/taxonomy"
)

// Truncate shortens s to at most max runes, appending "..." when text
// was cut. Cutting happens on rune boundaries so multi-byte text never
// ends up split mid-character. max must be at least 3.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}

// textRenderer writes human-readable styled text. Output uses lipgloss
// for color when the destination is a TTY and degrades gracefully for
// pipes and CI.
type textRenderer struct {
	styles Styles
}

func (r textRenderer) RenderWarnings(w io.Writer, warnings []taxonomy.Warning) error {
	s := r.styles

	for _, group := range groupByFeature(warnings) {
		header := group.feature
		if header == "" {
			header = "corpus"
		}
		fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %s ===", header)))
		fmt.Fprintln(w)

		// Budget: 100 cols. Borders and padding take ~12.
		// SEVERITY=8, KIND=22, SCENARIO=20, MESSAGE=38.
		const maxMessage = 38
		rows := make([][]string, 0, len(group.warnings))
		for _, warning := range group.warnings {
			msg := Truncate(warning.Message, maxMessage)
			rows = append(rows, []string{
				string(warning.Severity),
				string(warning.Kind),
				warning.Scenario,
				msg,
			})
		}

		t := table.New().
			Width(96).
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.Border).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.TableHeader
				}
				if col == 0 && row >= 0 && row < len(rows) {
					return s.SeverityStyle(taxonomy.Severity(rows[row][0]))
				}
				return s.TableCell
			}).
			Headers("SEVERITY", "KIND", "SCENARIO", "MESSAGE").
			Rows(rows...)

		fmt.Fprintln(w, t)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n", s.Header.Render(summaryLine(warnings)))
	return nil
}

func (r textRenderer) RenderConcordance(w io.Writer, conc *concordance.Concordance) error {
	s := r.styles

	fmt.Fprintln(w, s.Header.Render("=== Tag frequency ==="))
	fmt.Fprintln(w)

	counts := conc.SortedByFrequency()
	rows := make([][]string, 0, len(counts))
	for _, tc := range counts {
		rows = append(rows, []string{
			tc.Tag.Name(),
			string(tc.Tag.Category()),
			fmt.Sprintf("%d", tc.Count),
			fmt.Sprintf("%d", conc.FeatureSpread(tc.Tag)),
			fmt.Sprintf("%.2f", conc.SignificanceOf(tc.Tag)),
		})
	}

	t := table.New().
		Width(80).
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers("TAG", "CATEGORY", "COUNT", "FEATURES", "SIGNIFICANCE").
		Rows(rows...)
	fmt.Fprintln(w, t)

	if pairs := conc.Pairs(); len(pairs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render("=== Co-occurrence ==="))
		fmt.Fprintln(w)
		prows := make([][]string, 0, len(pairs))
		for _, p := range pairs {
			prows = append(prows, []string{
				p.A.Name(),
				p.B.Name(),
				fmt.Sprintf("%d", p.Count),
				fmt.Sprintf("%.2f", p.Jaccard),
			})
		}
		pt := table.New().
			Width(72).
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.Border).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.TableHeader
				}
				return s.TableCell
			}).
			Headers("TAG", "WITH", "COUNT", "JACCARD").
			Rows(prows...)
		fmt.Fprintln(w, pt)
	}

	if orphans := conc.Orphans(); len(orphans) > 0 {
		names := make([]string, 0, len(orphans))
		for _, o := range orphans {
			names = append(names, o.Name())
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n",
			s.SubHeader.Render("Orphans:"),
			s.Muted.Render(strings.Join(names, ", ")))
	}

	fmt.Fprintf(w, "\n%s\n", s.Header.Render(fmt.Sprintf(
		"%d unique tag(s), %d occurrence(s)",
		conc.UniqueCount(), conc.TotalOccurrences())))
	return nil
}

type featureGroup struct {
	feature  string
	warnings []taxonomy.Warning
}

// groupByFeature splits warnings into contiguous per-feature sections,
// preserving input order.
func groupByFeature(warnings []taxonomy.Warning) []featureGroup {
	var groups []featureGroup
	for _, warning := range warnings {
		n := len(groups)
		if n == 0 || groups[n-1].feature != warning.Feature {
			groups = append(groups, featureGroup{feature: warning.Feature})
			n++
		}
		groups[n-1].warnings = append(groups[n-1].warnings, warning)
	}
	return groups
}

func summaryLine(warnings []taxonomy.Warning) string {
	files := make(map[string]bool)
	errs := 0
	for _, warning := range warnings {
		if warning.Feature != "" {
			files[warning.Feature] = true
		}
		if warning.Severity == taxonomy.SeverityError {
			errs++
		}
	}
	return fmt.Sprintf("%d warning(s) across %d file(s), %d error(s)",
		len(warnings), len(files), errs)
}
