// Package antipattern inspects scenario structure — step sequences,
// step text, examples tables — and emits warnings for authoring
// anti-patterns that reduce maintainability and clarity.
package antipattern

import (
	"github.com/featlint/featlint/internal/config"
	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/taxonomy"
)

// Options configures an anti-pattern analysis pass.
type Options struct {
	// Config supplies rule toggles, severities, and thresholds.
	Config config.Config

	// Constructed, when non-nil, is invoked once per warning at
	// construction time. Test hook: proves disabled kinds are never
	// constructed rather than filtered later.
	Constructed func(taxonomy.Kind)
}

// Analyze runs every enabled structural rule over the features and
// returns the findings in deterministic order.
func Analyze(features []gherkin.Feature, cfg config.Config) []taxonomy.Warning {
	return AnalyzeWithOptions(features, Options{Config: cfg})
}

// AnalyzeWithOptions is Analyze with an explicit Options value.
func AnalyzeWithOptions(features []gherkin.Feature, opts Options) []taxonomy.Warning {
	var warnings []taxonomy.Warning
	for i := range features {
		warnings = append(warnings, AnalyzeFeature(features[i], opts)...)
	}
	taxonomy.Sort(warnings)
	return warnings
}

// AnalyzeFeature evaluates the structural rules for one feature.
// Every rule is a pure function of a single scenario plus config — no
// rule depends on another rule's output — so per-feature evaluation
// can run concurrently.
func AnalyzeFeature(f gherkin.Feature, opts Options) []taxonomy.Warning {
	var warnings []taxonomy.Warning
	for _, s := range f.Scenarios {
		if s.Background {
			continue
		}
		sc := scenarioContext{scenario: s, cfg: opts.Config}
		for _, r := range rules {
			if !opts.Config.KindEnabled(r.kind) {
				continue
			}
			if r.outlineOnly && !s.Outline {
				continue
			}
			for _, fd := range r.check(sc) {
				if opts.Constructed != nil {
					opts.Constructed(r.kind)
				}
				warnings = append(warnings, taxonomy.New(
					r.kind, opts.Config.SeverityOf(r.kind),
					f.Filename, s.Name, fd.message, fd.recs...))
			}
		}
	}
	return warnings
}
