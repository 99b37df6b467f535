package antipattern

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/featlint/featlint/internal/config"
	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/taxonomy"
)

// wellFormed returns a scenario that trips no rules: a clean
// Given/When/Then with business-intent, single-clause, present-tense
// steps.
func wellFormed(name string) gherkin.Scenario {
	return gherkin.Scenario{
		Name: name,
		Steps: []gherkin.Step{
			{Keyword: "Given", Text: "a cart with one item"},
			{Keyword: "When", Text: "the user checks out"},
			{Keyword: "Then", Text: "the order appears in the order history"},
		},
	}
}

func feature(scenarios ...gherkin.Scenario) []gherkin.Feature {
	return []gherkin.Feature{{Filename: "f.feature", Scenarios: scenarios}}
}

func ofKind(warnings []taxonomy.Warning, kind taxonomy.Kind) []taxonomy.Warning {
	var out []taxonomy.Warning
	for _, w := range warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func steps(n int) []gherkin.Step {
	out := make([]gherkin.Step, 0, n)
	out = append(out, gherkin.Step{Keyword: "Given", Text: "a starting state"})
	for i := 1; i < n-1; i++ {
		out = append(out, gherkin.Step{Keyword: "When", Text: "the user performs an action"})
	}
	out = append(out, gherkin.Step{Keyword: "Then", Text: "the outcome is visible to the user"})
	return out
}

func TestAnalyze_CleanScenarioNoWarnings(t *testing.T) {
	warnings := Analyze(feature(wellFormed("clean")), config.Default())
	if len(warnings) != 0 {
		t.Errorf("well-formed scenario should produce no warnings, got %v", warnings)
	}
}

func TestLongScenario_Boundary(t *testing.T) {
	cfg := config.Default() // MaxSteps: 10

	atLimit := gherkin.Scenario{Name: "ten", Steps: steps(10)}
	if got := ofKind(Analyze(feature(atLimit), cfg), taxonomy.LongScenario); len(got) != 0 {
		t.Errorf("exactly maxSteps steps must not warn, got %v", got)
	}

	over := gherkin.Scenario{Name: "eleven", Steps: steps(11)}
	got := ofKind(Analyze(feature(over), cfg), taxonomy.LongScenario)
	if len(got) != 1 {
		t.Errorf("maxSteps+1 steps should warn exactly once, got %d", len(got))
	}
}

func TestTooFewSteps(t *testing.T) {
	s := gherkin.Scenario{Name: "thin", Steps: []gherkin.Step{
		{Keyword: "Then", Text: "the order appears in the order history"},
	}}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.TooFewSteps)
	if len(got) != 1 {
		t.Errorf("1 step against minSteps 2 should warn, got %d", len(got))
	}
}

func TestMissingRoles(t *testing.T) {
	s := gherkin.Scenario{Name: "actionless", Steps: []gherkin.Step{
		{Keyword: "Given", Text: "a cart with one item"},
		{Keyword: "Then", Text: "the cart total is visible to the user"},
	}}
	warnings := Analyze(feature(s), config.Default())

	if got := ofKind(warnings, taxonomy.MissingWhen); len(got) != 1 {
		t.Errorf("expected 1 MissingWhen, got %d", len(got))
	}
	if got := ofKind(warnings, taxonomy.MissingGiven); len(got) != 0 {
		t.Errorf("Given is present, got %v", got)
	}
	if got := ofKind(warnings, taxonomy.MissingThen); len(got) != 0 {
		t.Errorf("Then is present, got %v", got)
	}
}

func TestMissingRoles_ContinuationInherits(t *testing.T) {
	s := gherkin.Scenario{Name: "inherits", Steps: []gherkin.Step{
		{Keyword: "Given", Text: "a cart with one item"},
		{Keyword: "When", Text: "the user checks out"},
		{Keyword: "And", Text: "the user confirms the purchase"},
		{Keyword: "Then", Text: "the order appears in the order history"},
	}}
	warnings := Analyze(feature(s), config.Default())
	for _, kind := range []taxonomy.Kind{taxonomy.MissingGiven, taxonomy.MissingWhen, taxonomy.MissingThen} {
		if got := ofKind(warnings, kind); len(got) != 0 {
			t.Errorf("unexpected %s: %v", kind, got)
		}
	}
}

func TestUIFocusedStep(t *testing.T) {
	s := wellFormed("ui")
	s.Steps[1] = gherkin.Step{Keyword: "When", Text: "the user clicks the checkout button"}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.UIFocusedStep)
	if len(got) != 1 {
		t.Fatalf("expected 1 UIFocusedStep, got %d", len(got))
	}
	if !strings.Contains(got[0].Message, "clicks") {
		t.Errorf("message should name the matched keyword, got %q", got[0].Message)
	}
}

func TestUIFocusedStep_MultibyteMessageIsValid(t *testing.T) {
	s := wellFormed("ui unicode")
	s.Steps[1] = gherkin.Step{
		Keyword: "When",
		Text:    "the user clicks " + strings.Repeat("確認ボタン", 12),
	}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.UIFocusedStep)
	if len(got) != 1 {
		t.Fatalf("expected 1 UIFocusedStep, got %d", len(got))
	}
	if !utf8.ValidString(got[0].Message) {
		t.Errorf("quoted step text was cut mid-character: %q", got[0].Message)
	}
}

func TestQuote_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("注文履歴", 20)
	got := quote(long)
	if !strings.HasSuffix(got, "...\"") {
		t.Fatalf("long text should be shortened, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("quote produced invalid UTF-8: %q", got)
	}
	if got := quote("short"); got != `"short"` {
		t.Errorf("short text must pass through unchanged, got %q", got)
	}
}

func TestImplementationDetail(t *testing.T) {
	s := wellFormed("impl")
	s.Steps[2] = gherkin.Step{Keyword: "Then", Text: "the response status code is 200"}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.ImplementationDetail)
	if len(got) != 1 {
		t.Errorf("expected 1 ImplementationDetail, got %d", len(got))
	}
}

func TestLongScenarioName(t *testing.T) {
	s := wellFormed(strings.Repeat("x", 81))
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.LongScenarioName)
	if len(got) != 1 {
		t.Errorf("expected 1 LongScenarioName, got %d", len(got))
	}

	ok := wellFormed(strings.Repeat("x", 80))
	if got := ofKind(Analyze(feature(ok), config.Default()), taxonomy.LongScenarioName); len(got) != 0 {
		t.Errorf("name at the limit must not warn, got %v", got)
	}
}

func TestLongStepText(t *testing.T) {
	s := wellFormed("long step")
	s.Steps[0].Text = "a " + strings.Repeat("very ", 30) + "long precondition"
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.LongStepText)
	if len(got) != 1 {
		t.Errorf("expected 1 LongStepText, got %d", len(got))
	}
}

func TestIncorrectStepOrder(t *testing.T) {
	s := gherkin.Scenario{Name: "backwards", Steps: []gherkin.Step{
		{Keyword: "When", Text: "the user checks out"},
		{Keyword: "Given", Text: "a cart with one item"},
		{Keyword: "Then", Text: "the order appears in the order history"},
	}}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.IncorrectStepOrder)
	if len(got) != 1 {
		t.Errorf("When before Given should warn once, got %d", len(got))
	}
}

func TestIncorrectStepOrder_ThenBeforeWhen(t *testing.T) {
	s := gherkin.Scenario{Name: "assert first", Steps: []gherkin.Step{
		{Keyword: "Given", Text: "a cart with one item"},
		{Keyword: "Then", Text: "the order appears in the order history"},
		{Keyword: "When", Text: "the user checks out"},
	}}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.IncorrectStepOrder)
	if len(got) != 1 {
		t.Errorf("Then before When should warn once, got %d", len(got))
	}
}

func TestAmbiguousPronoun(t *testing.T) {
	s := wellFormed("pronoun")
	s.Steps[2] = gherkin.Step{Keyword: "Then", Text: "it shows a confirmation"}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.AmbiguousPronoun)
	if len(got) != 1 {
		t.Fatalf("bare leading pronoun should warn, got %d", len(got))
	}

	anchored := wellFormed("anchored")
	anchored.Steps[2] = gherkin.Step{Keyword: "Then", Text: "the receipt page shows a confirmation for it"}
	if got := ofKind(Analyze(feature(anchored), config.Default()), taxonomy.AmbiguousPronoun); len(got) != 0 {
		t.Errorf("pronoun with preceding noun must not warn, got %v", got)
	}
}

func TestInconsistentTense(t *testing.T) {
	s := gherkin.Scenario{Name: "mixed", Steps: []gherkin.Step{
		{Keyword: "Given", Text: "the user entered a shipping address"},
		{Keyword: "When", Text: "the user will confirm the purchase"},
		{Keyword: "Then", Text: "the order appears in the order history"},
	}}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.InconsistentTense)
	if len(got) != 1 {
		t.Errorf("mixed tenses should warn once per scenario, got %d", len(got))
	}

	if got := ofKind(Analyze(feature(wellFormed("uniform")), config.Default()), taxonomy.InconsistentTense); len(got) != 0 {
		t.Errorf("uniform tense must not warn, got %v", got)
	}
}

func TestConjunctionInStep(t *testing.T) {
	s := wellFormed("conjunction")
	s.Steps[1] = gherkin.Step{Keyword: "When", Text: "the user checks out and empties the cart"}
	got := ofKind(Analyze(feature(s), config.Default()), taxonomy.ConjunctionInStep)
	if len(got) != 1 {
		t.Errorf("mid-step conjunction should warn, got %d", len(got))
	}
}

func TestOutlineRules(t *testing.T) {
	cfg := config.Default() // MinExamples: 2

	noTables := wellFormed("outline without examples")
	noTables.Outline = true
	got := ofKind(Analyze(feature(noTables), cfg), taxonomy.MissingExamples)
	if len(got) != 1 {
		t.Errorf("outline with zero tables should warn MissingExamples, got %d", len(got))
	}
	if got := ofKind(Analyze(feature(noTables), cfg), taxonomy.TooFewExamples); len(got) != 0 {
		t.Errorf("zero tables is MissingExamples' job, got %v", got)
	}

	oneRow := wellFormed("outline with one row")
	oneRow.Outline = true
	oneRow.Examples = []gherkin.ExampleTable{
		{Header: []string{"qty"}, Rows: [][]string{{"1"}}},
	}
	if got := ofKind(Analyze(feature(oneRow), cfg), taxonomy.TooFewExamples); len(got) != 1 {
		t.Errorf("one row against minExamples 2 should warn, got %d", len(got))
	}

	plain := wellFormed("not an outline")
	if got := ofKind(Analyze(feature(plain), cfg), taxonomy.MissingExamples); len(got) != 0 {
		t.Errorf("outline rules must not fire for plain scenarios, got %v", got)
	}
}

func TestBackgroundSkipped(t *testing.T) {
	bg := gherkin.Scenario{Name: "setup", Background: true, Steps: []gherkin.Step{
		{Keyword: "When", Text: "it clicks the admin button and sleeps"},
	}}
	warnings := Analyze(feature(bg), config.Default())
	if len(warnings) != 0 {
		t.Errorf("background pseudo-scenarios must be skipped, got %v", warnings)
	}
}

func TestDisabledKindNeverConstructed(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Disabled = []string{string(taxonomy.TooFewSteps)}

	s := gherkin.Scenario{Name: "thin", Steps: []gherkin.Step{
		{Keyword: "Then", Text: "the order appears in the order history"},
	}}

	constructed := make(map[taxonomy.Kind]int)
	warnings := AnalyzeWithOptions(feature(s), Options{
		Config:      cfg,
		Constructed: func(k taxonomy.Kind) { constructed[k]++ },
	})

	if constructed[taxonomy.TooFewSteps] != 0 {
		t.Errorf("disabled kind constructed %d times", constructed[taxonomy.TooFewSteps])
	}
	if got := ofKind(warnings, taxonomy.TooFewSteps); len(got) != 0 {
		t.Errorf("disabled kind leaked into output: %v", got)
	}
	// The scenario still misses Given and When: those must construct.
	if constructed[taxonomy.MissingGiven] == 0 || constructed[taxonomy.MissingWhen] == 0 {
		t.Error("enabled kinds should still be constructed")
	}
}
