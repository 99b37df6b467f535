package quality

import (
	"fmt"
	"regexp"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/config"
	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/tag"
	"github.com/featlint/featlint/internal/taxonomy"
)

// finding is one detected condition: the message plus remediation
// suggestions. The analyzer attaches kind, severity, and location.
type finding struct {
	message string
	recs    []string
}

// scenarioContext carries everything a per-scenario rule may inspect.
type scenarioContext struct {
	feature      gherkin.Feature
	scenario     gherkin.Scenario
	featureTags  []tag.Tag
	scenarioTags []tag.Tag
	conc         *concordance.Concordance
	cfg          config.Config
}

// featureContext carries the inputs of per-feature rules, which run
// once per feature over its feature-level tags.
type featureContext struct {
	feature gherkin.Feature
	tags    []tag.Tag
	conc    *concordance.Concordance
	cfg     config.Config
}

// combined returns feature-level plus scenario-level tags.
func (sc scenarioContext) combined() []tag.Tag {
	out := make([]tag.Tag, 0, len(sc.featureTags)+len(sc.scenarioTags))
	out = append(out, sc.featureTags...)
	out = append(out, sc.scenarioTags...)
	return out
}

// scenarioRules is the open rule table: each warning kind pairs with
// a pure predicate over one scenario. Rules never depend on another
// rule's output.
var scenarioRules = []struct {
	kind  taxonomy.Kind
	check func(scenarioContext) []finding
}{
	{taxonomy.MissingPriorityTag, checkMissingPriority},
	{taxonomy.MissingTypeTag, checkMissingType},
	{taxonomy.LowValueTag, checkLowValueScenario},
	{taxonomy.DuplicateTag, checkDuplicate},
	{taxonomy.ExcessiveTags, checkExcessive},
	{taxonomy.TagTypo, checkTypoScenario},
	{taxonomy.AmbiguousTag, checkAmbiguousScenario},
}

// featureRules run once per feature over its own tags, so a weak
// feature-level tag is reported once rather than per scenario.
var featureRules = []struct {
	kind  taxonomy.Kind
	check func(featureContext) []finding
}{
	{taxonomy.LowValueTag, checkLowValueFeature},
	{taxonomy.TagTypo, checkTypoFeature},
	{taxonomy.AmbiguousTag, checkAmbiguousFeature},
}

func checkMissingPriority(sc scenarioContext) []finding {
	for _, t := range sc.combined() {
		if t.IsPriority() {
			return nil
		}
	}
	return []finding{{
		message: "scenario has no priority tag on itself or its feature",
		recs:    []string{"tag the scenario or feature with a priority such as @P0-@P4"},
	}}
}

func checkMissingType(sc scenarioContext) []finding {
	for _, t := range sc.combined() {
		if t.IsType() {
			return nil
		}
	}
	return []finding{{
		message: "scenario has no test-type tag on itself or its feature",
		recs:    []string{"tag the scenario or feature with a type such as @API, @UI, or @Smoke"},
	}}
}

func checkLowValueScenario(sc scenarioContext) []finding {
	return lowValueFindings(sc.scenarioTags, sc.cfg)
}

func checkLowValueFeature(fc featureContext) []finding {
	return lowValueFindings(fc.tags, fc.cfg)
}

func lowValueFindings(tags []tag.Tag, cfg config.Config) []finding {
	var out []finding
	for _, t := range tags {
		for _, w := range cfg.Tags.LowValueWords {
			if t.Normalized() == w {
				out = append(out, finding{
					message: "tag " + t.Name() + " carries no information",
					recs:    []string{"replace " + t.Name() + " with a tag that aids filtering"},
				})
				break
			}
		}
	}
	return out
}

func checkDuplicate(sc scenarioContext) []finding {
	var out []finding
	onFeature := make(map[string]bool, len(sc.featureTags))
	for _, t := range sc.featureTags {
		onFeature[t.Normalized()] = true
	}

	seen := make(map[string]bool)
	reported := make(map[string]bool)
	for _, t := range sc.scenarioTags {
		n := t.Normalized()
		if reported[n] {
			continue
		}
		switch {
		case seen[n]:
			reported[n] = true
			out = append(out, finding{
				message: "tag " + t.Name() + " appears more than once on the scenario",
				recs:    []string{"remove the repeated " + t.Name()},
			})
		case onFeature[n]:
			reported[n] = true
			out = append(out, finding{
				message: "tag " + t.Name() + " repeats a tag already on the feature",
				recs:    []string{"drop " + t.Name() + " from the scenario; the feature tag already applies"},
			})
		}
		seen[n] = true
	}
	return out
}

func checkExcessive(sc scenarioContext) []finding {
	distinct := make(map[string]bool)
	for _, t := range sc.combined() {
		distinct[t.Normalized()] = true
	}
	if len(distinct) <= sc.cfg.Rules.MaxTags {
		return nil
	}
	return []finding{{
		message: fmt.Sprintf("scenario carries %d distinct tags, more than the configured maximum of %d",
			len(distinct), sc.cfg.Rules.MaxTags),
		recs: []string{"keep one priority, one type, and at most a few domain tags"},
	}}
}

func checkTypoScenario(sc scenarioContext) []finding {
	return typoFindings(sc.scenarioTags, sc.conc, sc.cfg)
}

func checkTypoFeature(fc featureContext) []finding {
	return typoFindings(fc.tags, fc.conc, fc.cfg)
}

// typoFindings flags tags that resemble a strictly more frequent
// corpus tag; the more frequent spelling is assumed canonical.
func typoFindings(tags []tag.Tag, conc *concordance.Concordance, cfg config.Config) []finding {
	var out []finding
	for _, t := range tags {
		for _, other := range conc.All() {
			if !t.IsSimilarTo(other, cfg.Tags.SimilarityDistance, cfg.Tags.SimilarityMinLength) {
				continue
			}
			if conc.Count(other) <= conc.Count(t) {
				continue
			}
			out = append(out, finding{
				message: "tag " + t.Name() + " looks like a typo of the more frequent " + other.Name(),
				recs:    []string{"rename " + t.Name() + " to " + other.Name()},
			})
			break
		}
	}
	return out
}

// priorityShorthand matches the P0-P4 shorthands exempt from the
// ambiguity rule.
var priorityShorthand = regexp.MustCompile(`^p[0-4]$`)

func checkAmbiguousScenario(sc scenarioContext) []finding {
	return ambiguousFindings(sc.scenarioTags)
}

func checkAmbiguousFeature(fc featureContext) []finding {
	return ambiguousFindings(fc.tags)
}

func ambiguousFindings(tags []tag.Tag) []finding {
	var out []finding
	for _, t := range tags {
		if len(t.Normalized()) >= 3 || priorityShorthand.MatchString(t.Normalized()) {
			continue
		}
		out = append(out, finding{
			message: "tag " + t.Name() + " is too short to convey meaning",
			recs:    []string{"expand " + t.Name() + " to a descriptive name"},
		})
	}
	return out
}
