package report

import (
	"encoding/json"
	"io"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/taxonomy"
)

// JSONReport is the top-level JSON output for warnings.
type JSONReport struct {
	Version  string             `json:"version"`
	Warnings []taxonomy.Warning `json:"warnings"`
}

// JSONTagReport is the top-level JSON output for a concordance.
type JSONTagReport struct {
	Version          string     `json:"version"`
	TotalOccurrences int        `json:"total_occurrences"`
	UniqueTags       int        `json:"unique_tags"`
	Tags             []JSONTag  `json:"tags"`
	Pairs            []JSONPair `json:"pairs"`
	Orphans          []string   `json:"orphans"`
}

// JSONTag is one concordance entry.
type JSONTag struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	FeatureSpread int     `json:"feature_spread"`
	Significance  float64 `json:"significance"`
}

// JSONPair is one co-occurrence entry.
type JSONPair struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Count   int     `json:"count"`
	Jaccard float64 `json:"jaccard"`
}

type jsonRenderer struct{}

func (jsonRenderer) RenderWarnings(w io.Writer, warnings []taxonomy.Warning) error {
	if warnings == nil {
		warnings = []taxonomy.Warning{}
	}
	report := JSONReport{
		Version:  Version,
		Warnings: warnings,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func (jsonRenderer) RenderConcordance(w io.Writer, conc *concordance.Concordance) error {
	report := JSONTagReport{
		Version:          Version,
		TotalOccurrences: conc.TotalOccurrences(),
		UniqueTags:       conc.UniqueCount(),
		Tags:             []JSONTag{},
		Pairs:            []JSONPair{},
		Orphans:          []string{},
	}

	for _, tc := range conc.SortedByFrequency() {
		report.Tags = append(report.Tags, JSONTag{
			Name:          tc.Tag.Name(),
			Category:      string(tc.Tag.Category()),
			Count:         tc.Count,
			FeatureSpread: conc.FeatureSpread(tc.Tag),
			Significance:  conc.SignificanceOf(tc.Tag),
		})
	}
	for _, p := range conc.Pairs() {
		report.Pairs = append(report.Pairs, JSONPair{
			A:       p.A.Name(),
			B:       p.B.Name(),
			Count:   p.Count,
			Jaccard: p.Jaccard,
		})
	}
	for _, o := range conc.Orphans() {
		report.Orphans = append(report.Orphans, o.Name())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
