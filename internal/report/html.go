package report

import (
	"html/template"
	"io"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/taxonomy"
)

// htmlRenderer writes a self-contained HTML document: embedded CSS, no
// external assets, safe to archive as a CI artifact.
type htmlRenderer struct{}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; color: #1f2328; }
h1, h2 { font-weight: 600; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #d1d9e0; padding: 0.4rem 0.6rem; text-align: left; font-size: 0.9rem; }
th { background: #f6f8fa; }
.severity-error { color: #d1242f; font-weight: 600; }
.severity-warning { color: #9a6700; }
.severity-info { color: #0969da; }
.muted { color: #59636e; }
</style>
</head>
<body>
`

var warningsTemplate = template.Must(template.New("warnings").Parse(htmlHead + `<h1>Analysis report</h1>
{{if not .Groups}}<p class="muted">No warnings.</p>{{end}}
{{range .Groups}}<h2>{{if .Feature}}{{.Feature}}{{else}}Corpus{{end}}</h2>
<table>
<tr><th>Severity</th><th>Kind</th><th>Scenario</th><th>Message</th></tr>
{{range .Warnings}}<tr><td class="severity-{{.Severity}}">{{.Severity}}</td><td>{{.Kind}}</td><td>{{.Scenario}}</td><td>{{.Message}}</td></tr>
{{end}}</table>
{{end}}<p class="muted">{{.Summary}}</p>
</body>
</html>
`))

var concordanceTemplate = template.Must(template.New("concordance").Parse(htmlHead + `<h1>Tag concordance</h1>
<table>
<tr><th>Tag</th><th>Category</th><th>Count</th><th>Features</th><th>Significance</th></tr>
{{range .Tags}}<tr><td>{{.Name}}</td><td>{{.Category}}</td><td>{{.Count}}</td><td>{{.FeatureSpread}}</td><td>{{printf "%.2f" .Significance}}</td></tr>
{{end}}</table>
{{if .Pairs}}<h2>Co-occurrence</h2>
<table>
<tr><th>Tag</th><th>With</th><th>Count</th><th>Jaccard</th></tr>
{{range .Pairs}}<tr><td>{{.A}}</td><td>{{.B}}</td><td>{{.Count}}</td><td>{{printf "%.2f" .Jaccard}}</td></tr>
{{end}}</table>
{{end}}{{if .Orphans}}<p>Orphans: {{range $i, $o := .Orphans}}{{if $i}}, {{end}}{{$o}}{{end}}</p>
{{end}}<p class="muted">{{.UniqueTags}} unique tag(s), {{.TotalOccurrences}} occurrence(s)</p>
</body>
</html>
`))

type htmlWarningsData struct {
	Title   string
	Groups  []htmlGroup
	Summary string
}

type htmlGroup struct {
	Feature  string
	Warnings []taxonomy.Warning
}

type htmlConcordanceData struct {
	Title            string
	Tags             []JSONTag
	Pairs            []JSONPair
	Orphans          []string
	UniqueTags       int
	TotalOccurrences int
}

func (htmlRenderer) RenderWarnings(w io.Writer, warnings []taxonomy.Warning) error {
	data := htmlWarningsData{
		Title:   "Analysis report",
		Summary: summaryLine(warnings),
	}
	for _, g := range groupByFeature(warnings) {
		data.Groups = append(data.Groups, htmlGroup{Feature: g.feature, Warnings: g.warnings})
	}
	return warningsTemplate.Execute(w, data)
}

func (htmlRenderer) RenderConcordance(w io.Writer, conc *concordance.Concordance) error {
	data := htmlConcordanceData{
		Title:            "Tag concordance",
		UniqueTags:       conc.UniqueCount(),
		TotalOccurrences: conc.TotalOccurrences(),
	}
	for _, tc := range conc.SortedByFrequency() {
		data.Tags = append(data.Tags, JSONTag{
			Name:          tc.Tag.Name(),
			Category:      string(tc.Tag.Category()),
			Count:         tc.Count,
			FeatureSpread: conc.FeatureSpread(tc.Tag),
			Significance:  conc.SignificanceOf(tc.Tag),
		})
	}
	for _, p := range conc.Pairs() {
		data.Pairs = append(data.Pairs, JSONPair{
			A: p.A.Name(), B: p.B.Name(), Count: p.Count, Jaccard: p.Jaccard,
		})
	}
	for _, o := range conc.Orphans() {
		data.Orphans = append(data.Orphans, o.Name())
	}
	return concordanceTemplate.Execute(w, data)
}
