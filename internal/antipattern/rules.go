package antipattern

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/featlint/featlint/internal/config"
	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/taxonomy"
)

// finding is one detected condition; the analyzer attaches kind,
// severity, and location.
type finding struct {
	message string
	recs    []string
}

type scenarioContext struct {
	scenario gherkin.Scenario
	cfg      config.Config
}

// rules is the open rule table: warning kind plus a pure predicate
// over one scenario. Outline-only rules are gated before evaluation.
var rules = []struct {
	kind        taxonomy.Kind
	outlineOnly bool
	check       func(scenarioContext) []finding
}{
	{taxonomy.LongScenario, false, checkLongScenario},
	{taxonomy.TooFewSteps, false, checkTooFewSteps},
	{taxonomy.MissingGiven, false, checkMissingGiven},
	{taxonomy.MissingWhen, false, checkMissingWhen},
	{taxonomy.MissingThen, false, checkMissingThen},
	{taxonomy.UIFocusedStep, false, checkUIFocused},
	{taxonomy.ImplementationDetail, false, checkImplementationDetail},
	{taxonomy.LongScenarioName, false, checkLongScenarioName},
	{taxonomy.LongStepText, false, checkLongStepText},
	{taxonomy.IncorrectStepOrder, false, checkStepOrder},
	{taxonomy.AmbiguousPronoun, false, checkAmbiguousPronoun},
	{taxonomy.InconsistentTense, false, checkInconsistentTense},
	{taxonomy.ConjunctionInStep, false, checkConjunction},
	{taxonomy.MissingExamples, true, checkMissingExamples},
	{taxonomy.TooFewExamples, true, checkTooFewExamples},
}

func checkLongScenario(sc scenarioContext) []finding {
	if len(sc.scenario.Steps) <= sc.cfg.Rules.MaxSteps {
		return nil
	}
	return []finding{{
		message: fmt.Sprintf("scenario has %d steps, more than the configured maximum of %d",
			len(sc.scenario.Steps), sc.cfg.Rules.MaxSteps),
		recs: []string{"split the scenario or push setup into a background"},
	}}
}

func checkTooFewSteps(sc scenarioContext) []finding {
	if len(sc.scenario.Steps) >= sc.cfg.Rules.MinSteps {
		return nil
	}
	return []finding{{
		message: fmt.Sprintf("scenario has %d steps, fewer than the configured minimum of %d",
			len(sc.scenario.Steps), sc.cfg.Rules.MinSteps),
		recs: []string{"a scenario should state at least an action and an outcome"},
	}}
}

func checkMissingGiven(sc scenarioContext) []finding {
	return missingRole(sc, gherkin.RoleGiven, "no Given step establishes context")
}

func checkMissingWhen(sc scenarioContext) []finding {
	return missingRole(sc, gherkin.RoleWhen, "no When step performs an action")
}

func checkMissingThen(sc scenarioContext) []finding {
	return missingRole(sc, gherkin.RoleThen, "no Then step verifies an outcome")
}

func missingRole(sc scenarioContext, role gherkin.Role, message string) []finding {
	for _, r := range gherkin.Roles(sc.scenario.Steps) {
		if r == role {
			return nil
		}
	}
	return []finding{{
		message: message,
		recs:    []string{"add a " + role.String() + " step"},
	}}
}

func checkUIFocused(sc scenarioContext) []finding {
	return keywordFindings(sc.scenario.Steps, sc.cfg.Rules.UIKeywords,
		"describes UI mechanics instead of business intent",
		"rewrite the step in terms of what the user achieves, not how")
}

func checkImplementationDetail(sc scenarioContext) []finding {
	return keywordFindings(sc.scenario.Steps, sc.cfg.Rules.ImplementationKeywords,
		"references implementation mechanics",
		"state the observable business outcome instead of the mechanism")
}

// keywordFindings is the shared lexical matcher: a step is flagged
// once when its lowercased text contains any listed keyword. Pattern
// matching, not NLP.
func keywordFindings(steps []gherkin.Step, keywords []string, what, rec string) []finding {
	var out []finding
	for _, s := range steps {
		lower := strings.ToLower(s.Text)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, finding{
					message: "step " + quote(s.Text) + " " + what + " (" + quote(kw) + ")",
					recs:    []string{rec},
				})
				break
			}
		}
	}
	return out
}

func checkLongScenarioName(sc scenarioContext) []finding {
	max := sc.cfg.Rules.MaxScenarioNameLen
	if len(sc.scenario.Name) <= max {
		return nil
	}
	return []finding{{
		message: fmt.Sprintf("scenario name is %d characters, longer than the configured maximum of %d",
			len(sc.scenario.Name), max),
		recs: []string{"shorten the name to the behavior under test"},
	}}
}

func checkLongStepText(sc scenarioContext) []finding {
	var out []finding
	max := sc.cfg.Rules.MaxStepLength
	for _, s := range sc.scenario.Steps {
		if len(s.Text) > max {
			out = append(out, finding{
				message: fmt.Sprintf("step text is %d characters, longer than the configured maximum of %d",
					len(s.Text), max),
				recs: []string{"move detail into an examples table or background"},
			})
		}
	}
	return out
}

// checkStepOrder flags phase regressions: a Given after a When or
// Then, or a When after a Then. One finding per scenario.
func checkStepOrder(sc scenarioContext) []finding {
	phase := func(r gherkin.Role) int {
		switch r {
		case gherkin.RoleGiven:
			return 1
		case gherkin.RoleWhen:
			return 2
		case gherkin.RoleThen:
			return 3
		default:
			return 0
		}
	}
	highest := 0
	for _, r := range gherkin.Roles(sc.scenario.Steps) {
		p := phase(r)
		if p == 0 {
			continue
		}
		if p < highest {
			return []finding{{
				message: "steps regress from " + roleName(highest) + " back to " + r.String(),
				recs:    []string{"order steps Given, When, Then"},
			}}
		}
		if p > highest {
			highest = p
		}
	}
	return nil
}

func roleName(phase int) string {
	switch phase {
	case 1:
		return "Given"
	case 2:
		return "When"
	default:
		return "Then"
	}
}

// barePronouns are flagged when no candidate noun precedes them in
// the same step.
var barePronouns = map[string]bool{
	"it": true, "they": true, "this": true, "them": true,
}

// functionWords never count as the noun a pronoun could refer to.
var functionWords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "with": true,
	"should": true, "must": true, "will": true, "not": true, "has": true,
	"have": true, "been": true, "when": true, "then": true, "given": true,
	"that": true, "into": true, "from": true, "are": true, "was": true,
}

// checkAmbiguousPronoun flags a bare pronoun with no preceding noun
// in the same step. Heuristic: false positives are expected and
// acceptable.
func checkAmbiguousPronoun(sc scenarioContext) []finding {
	var out []finding
	for _, s := range sc.scenario.Steps {
		sawNoun := false
		for _, word := range tokenize(s.Text) {
			if barePronouns[word] && !sawNoun {
				out = append(out, finding{
					message: "step " + quote(s.Text) + " opens with the pronoun " + quote(word) + " with no referent",
					recs:    []string{"name the subject explicitly"},
				})
				break
			}
			if len(word) >= 3 && !functionWords[word] {
				sawNoun = true
			}
		}
	}
	return out
}

// tense markers. Heuristic suffix/word checks, documented as such:
// "will" marks future, a non-trivial "-ed" word marks past, anything
// else counts as present.
func tenseOf(text string) string {
	lower := " " + strings.ToLower(text) + " "
	if strings.Contains(lower, " will ") {
		return "future"
	}
	for _, word := range tokenize(text) {
		if len(word) >= 5 && strings.HasSuffix(word, "ed") {
			return "past"
		}
	}
	return "present"
}

// checkInconsistentTense flags a scenario whose steps mix tense
// markers. One finding per scenario.
func checkInconsistentTense(sc scenarioContext) []finding {
	seen := make(map[string]bool)
	var order []string
	for _, s := range sc.scenario.Steps {
		tense := tenseOf(s.Text)
		if !seen[tense] {
			seen[tense] = true
			order = append(order, tense)
		}
	}
	if len(order) < 2 {
		return nil
	}
	return []finding{{
		message: "steps mix tenses (" + strings.Join(order, ", ") + ")",
		recs:    []string{"pick one tense: past for Given, present for When and Then is conventional"},
	}}
}

// checkConjunction flags a coordinating conjunction joining two
// clauses inside one step — a sign the step does two things. The
// Gherkin And/But keywords live in the keyword field, never in text,
// so any mid-sentence connector counts.
func checkConjunction(sc scenarioContext) []finding {
	var out []finding
	for _, s := range sc.scenario.Steps {
		lower := " " + strings.ToLower(s.Text) + " "
		if strings.Contains(lower, " and ") || strings.Contains(lower, " but ") {
			out = append(out, finding{
				message: "step " + quote(s.Text) + " joins two clauses with a conjunction",
				recs:    []string{"split the step into one step per action or assertion"},
			})
		}
	}
	return out
}

func checkMissingExamples(sc scenarioContext) []finding {
	if len(sc.scenario.Examples) > 0 {
		return nil
	}
	return []finding{{
		message: "scenario outline has no examples table",
		recs:    []string{"add an Examples table or convert the outline to a plain scenario"},
	}}
}

func checkTooFewExamples(sc scenarioContext) []finding {
	if len(sc.scenario.Examples) == 0 {
		return nil // MissingExamples covers the zero-table case
	}
	rows := sc.scenario.RowCount()
	if rows >= sc.cfg.Rules.MinExamples {
		return nil
	}
	return []finding{{
		message: fmt.Sprintf("scenario outline has %d example rows, fewer than the configured minimum of %d",
			rows, sc.cfg.Rules.MinExamples),
		recs: []string{"an outline with one row is a plain scenario in disguise"},
	}}
}

// tokenize splits text into lowercase words, stripping punctuation.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

func quote(s string) string {
	if utf8.RuneCountInString(s) > 40 {
		s = string([]rune(s)[:37]) + "..."
	}
	return "\"" + s + "\""
}
