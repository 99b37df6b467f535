package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/taxonomy"
)

type markdownRenderer struct{}

func (markdownRenderer) RenderWarnings(w io.Writer, warnings []taxonomy.Warning) error {
	fmt.Fprintln(w, "# Analysis report")
	fmt.Fprintln(w)

	if len(warnings) == 0 {
		fmt.Fprintln(w, "No warnings.")
		return nil
	}

	for _, group := range groupByFeature(warnings) {
		header := group.feature
		if header == "" {
			header = "Corpus"
		}
		fmt.Fprintf(w, "## %s\n\n", header)
		fmt.Fprintln(w, "| Severity | Kind | Scenario | Message |")
		fmt.Fprintln(w, "| --- | --- | --- | --- |")
		for _, warning := range group.warnings {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
				warning.Severity,
				warning.Kind,
				mdEscape(warning.Scenario),
				mdEscape(warning.Message))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n", summaryLine(warnings))
	return nil
}

func (markdownRenderer) RenderConcordance(w io.Writer, conc *concordance.Concordance) error {
	fmt.Fprintln(w, "# Tag concordance")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Tag | Category | Count | Features | Significance |")
	fmt.Fprintln(w, "| --- | --- | ---: | ---: | ---: |")
	for _, tc := range conc.SortedByFrequency() {
		fmt.Fprintf(w, "| %s | %s | %d | %d | %.2f |\n",
			mdEscape(tc.Tag.Name()),
			tc.Tag.Category(),
			tc.Count,
			conc.FeatureSpread(tc.Tag),
			conc.SignificanceOf(tc.Tag))
	}

	if pairs := conc.Pairs(); len(pairs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "## Co-occurrence")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Tag | With | Count | Jaccard |")
		fmt.Fprintln(w, "| --- | --- | ---: | ---: |")
		for _, p := range pairs {
			fmt.Fprintf(w, "| %s | %s | %d | %.2f |\n",
				mdEscape(p.A.Name()), mdEscape(p.B.Name()), p.Count, p.Jaccard)
		}
	}

	if orphans := conc.Orphans(); len(orphans) > 0 {
		names := make([]string, 0, len(orphans))
		for _, o := range orphans {
			names = append(names, mdEscape(o.Name()))
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Orphans: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(w, "\n%d unique tag(s), %d occurrence(s)\n",
		conc.UniqueCount(), conc.TotalOccurrences())
	return nil
}

// mdEscape neutralizes the pipe, the only character that breaks a
// table cell.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
