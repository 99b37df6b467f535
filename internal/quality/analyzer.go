// Package quality inspects features, scenarios, and the tag
// concordance to emit tag-hygiene warnings: missing, weak, duplicate,
// excessive, and typo'd tags.
package quality

import (
	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/config"
	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/tag"
	"github.com/featlint/featlint/internal/taxonomy"
)

// Options configures a quality analysis pass.
type Options struct {
	// Config supplies rule toggles, severities, thresholds, and
	// category word-lists.
	Config config.Config

	// Constructed, when non-nil, is invoked once per warning at
	// construction time with the warning's kind. It exists so tests
	// can prove that disabled kinds are never constructed, not merely
	// filtered from output.
	Constructed func(taxonomy.Kind)
}

// Analyze runs every enabled tag-quality rule over the features and
// concordance and returns the findings in deterministic order.
func Analyze(features []gherkin.Feature, conc *concordance.Concordance, cfg config.Config) []taxonomy.Warning {
	return AnalyzeWithOptions(features, conc, Options{Config: cfg})
}

// AnalyzeWithOptions is Analyze with an explicit Options value.
func AnalyzeWithOptions(features []gherkin.Feature, conc *concordance.Concordance, opts Options) []taxonomy.Warning {
	var warnings []taxonomy.Warning
	for i := range features {
		warnings = append(warnings, AnalyzeFeature(features[i], conc, opts)...)
	}
	warnings = append(warnings, CorpusWarnings(conc, opts)...)
	taxonomy.Sort(warnings)
	return warnings
}

// AnalyzeFeature evaluates the per-feature and per-scenario rules for
// a single feature. Rules are pure functions of one scenario plus the
// shared read-only concordance, which is what makes per-feature
// evaluation safe to parallelize.
func AnalyzeFeature(f gherkin.Feature, conc *concordance.Concordance, opts Options) []taxonomy.Warning {
	var warnings []taxonomy.Warning
	cats := opts.Config.Categories()
	featureTags := parseTags(f.Tags, cats)

	for _, r := range featureRules {
		if !opts.Config.KindEnabled(r.kind) {
			continue
		}
		fc := featureContext{
			feature: f,
			tags:    featureTags,
			conc:    conc,
			cfg:     opts.Config,
		}
		for _, fd := range r.check(fc) {
			warnings = append(warnings, opts.emit(r.kind, f.Filename, "", fd))
		}
	}

	for _, s := range f.Scenarios {
		if s.Background {
			continue
		}
		sc := scenarioContext{
			feature:      f,
			scenario:     s,
			featureTags:  featureTags,
			scenarioTags: parseTags(s.Tags, cats),
			conc:         conc,
			cfg:          opts.Config,
		}
		for _, r := range scenarioRules {
			if !opts.Config.KindEnabled(r.kind) {
				continue
			}
			for _, fd := range r.check(sc) {
				warnings = append(warnings, opts.emit(r.kind, f.Filename, s.Name, fd))
			}
		}
	}

	return warnings
}

// CorpusWarnings evaluates the rules that look at the whole corpus
// rather than a single scenario (orphaned tags).
func CorpusWarnings(conc *concordance.Concordance, opts Options) []taxonomy.Warning {
	var warnings []taxonomy.Warning
	if !opts.Config.KindEnabled(taxonomy.OrphanedTag) {
		return warnings
	}
	for _, orphan := range conc.Orphans() {
		warnings = append(warnings, opts.emit(taxonomy.OrphanedTag, "", "", finding{
			message: "tag " + orphan.Name() + " occurs only once across the corpus",
			recs: []string{
				"check whether " + orphan.Name() + " is a typo of an established tag",
				"remove the tag if it labels nothing worth filtering on",
			},
		}))
	}
	return warnings
}

// MalformedWarnings converts malformed-tag records from the
// concordance build into warnings. A malformed tag on one scenario
// must not abort analysis of other scenarios, so these surface as
// findings rather than errors.
func MalformedWarnings(malformed []concordance.Malformed, opts Options) []taxonomy.Warning {
	var warnings []taxonomy.Warning
	if !opts.Config.KindEnabled(taxonomy.MalformedTag) {
		return warnings
	}
	for _, m := range malformed {
		warnings = append(warnings, opts.emit(taxonomy.MalformedTag, m.Feature, m.Scenario, finding{
			message: "malformed tag " + quoted(m.Raw) + ": " + m.Err.Error(),
			recs:    []string{"remove the tag or replace it with a valid token"},
		}))
	}
	return warnings
}

func (o Options) emit(kind taxonomy.Kind, feature, scenario string, fd finding) taxonomy.Warning {
	if o.Constructed != nil {
		o.Constructed(kind)
	}
	return taxonomy.New(kind, o.Config.SeverityOf(kind), feature, scenario, fd.message, fd.recs...)
}

// parseTags constructs tags, dropping malformed tokens: those are
// reported once by the concordance build, not per rule.
func parseTags(raws []string, cats tag.Categories) []tag.Tag {
	out := make([]tag.Tag, 0, len(raws))
	for _, raw := range raws {
		t, err := tag.NewWith(raw, cats)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

func quoted(s string) string {
	return "\"" + s + "\""
}
