package concordance

import (
	"math"
	"testing"

	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/tag"
)

func TestPairs_FixtureP1Payment(t *testing.T) {
	c := build(t, paymentFixture())

	p, ok := c.PairFor(tag.Must("@P1"), tag.Must("@Payment"))
	if !ok {
		t.Fatal("expected a co-occurrence entry for (@P1, @Payment)")
	}
	if p.Count != 2 {
		t.Errorf("pair count = %d, want 2", p.Count)
	}
	if p.Jaccard != 1.0 {
		t.Errorf("pair coefficient = %g, want 1.0", p.Jaccard)
	}
}

func TestPairs_JaccardSymmetricAndBounded(t *testing.T) {
	c := build(t, paymentFixture())

	ab, okAB := c.PairFor(tag.Must("@P1"), tag.Must("@Payment"))
	ba, okBA := c.PairFor(tag.Must("@Payment"), tag.Must("@P1"))
	if !okAB || !okBA {
		t.Fatal("pair lookup should be order-independent")
	}
	if ab.Jaccard != ba.Jaccard {
		t.Errorf("coefficient not symmetric: %g vs %g", ab.Jaccard, ba.Jaccard)
	}

	for _, p := range c.Pairs() {
		if p.Jaccard < 0 || p.Jaccard > 1 {
			t.Errorf("coefficient out of [0,1]: %g for (%s,%s)", p.Jaccard, p.A, p.B)
		}
		if p.Count < 1 {
			t.Errorf("pairs with count < 1 must not be reported: (%s,%s)", p.A, p.B)
		}
	}
}

func TestPairs_SortedByCoefficientThenCount(t *testing.T) {
	features := []gherkin.Feature{
		{
			Filename: "f.feature",
			Scenarios: []gherkin.Scenario{
				// (@A,@B) always together: coefficient 1.
				{Name: "s1", Tags: []string{"@Alpha", "@Beta"}},
				{Name: "s2", Tags: []string{"@Alpha", "@Beta"}},
				// @Gamma pairs with @Delta once but @Gamma also occurs alone.
				{Name: "s3", Tags: []string{"@Gamma", "@Delta"}},
				{Name: "s4", Tags: []string{"@Gamma"}},
			},
		},
	}
	c := build(t, features)
	pairs := c.Pairs()

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].A.Normalized() != "alpha" || pairs[0].Jaccard != 1.0 {
		t.Errorf("first pair should be (alpha,beta) at 1.0, got (%s,%s) %g",
			pairs[0].A, pairs[0].B, pairs[0].Jaccard)
	}
	if pairs[1].Jaccard >= pairs[0].Jaccard {
		t.Error("pairs must be sorted by coefficient descending")
	}
}

func TestTrendOf_SingleRunIsStable(t *testing.T) {
	c := build(t, paymentFixture())
	tr := c.TrendOf(tag.Must("@P1"), nil)
	if tr.Direction != Stable || tr.Growth != 0 {
		t.Errorf("single-run trend = %s/%g, want stable/0", tr.Direction, tr.Growth)
	}
}

func TestTrendOf_AgainstPrevious(t *testing.T) {
	prev := build(t, []gherkin.Feature{
		{
			Filename: "f.feature",
			Scenarios: []gherkin.Scenario{
				{Name: "s1", Tags: []string{"@Smoke"}},
				{Name: "s2", Tags: []string{"@Smoke"}},
				{Name: "s3", Tags: []string{"@Legacy", "@Legacy2"}},
			},
		},
	})
	cur := build(t, []gherkin.Feature{
		{
			Filename: "f.feature",
			Scenarios: []gherkin.Scenario{
				{Name: "s1", Tags: []string{"@Smoke"}},
				{Name: "s2", Tags: []string{"@Smoke"}},
				{Name: "s3", Tags: []string{"@Smoke", "@Legacy"}},
				{Name: "s4", Tags: []string{"@Brand-New"}},
			},
		},
	})

	tests := []struct {
		raw       string
		direction Direction
	}{
		{"@Smoke", Rising},      // 2 -> 3
		{"@Legacy", Stable},     // 1 -> 1
		{"@Legacy2", Declining}, // 1 -> 0
		{"@Brand-New", Rising},  // 0 -> 1, capped growth
	}
	for _, tt := range tests {
		tr := cur.TrendOf(tag.Must(tt.raw), prev)
		if tr.Direction != tt.direction {
			t.Errorf("TrendOf(%s) = %s, want %s", tt.raw, tr.Direction, tt.direction)
		}
	}

	if tr := cur.TrendOf(tag.Must("@Brand-New"), prev); tr.Growth != GrowthCap {
		t.Errorf("new-tag growth = %g, want cap %g", tr.Growth, GrowthCap)
	}
}

func TestSignificance_Monotonicity(t *testing.T) {
	// @Hot occurs 4 times in one feature; @Spread occurs 4 times
	// across four features. Same count, wider spread: lower score.
	features := []gherkin.Feature{
		{Filename: "a.feature", Scenarios: []gherkin.Scenario{
			{Name: "s1", Tags: []string{"@Hot", "@Spread"}},
			{Name: "s2", Tags: []string{"@Hot"}},
			{Name: "s3", Tags: []string{"@Hot"}},
			{Name: "s4", Tags: []string{"@Hot"}},
		}},
		{Filename: "b.feature", Scenarios: []gherkin.Scenario{{Name: "s", Tags: []string{"@Spread"}}}},
		{Filename: "c.feature", Scenarios: []gherkin.Scenario{{Name: "s", Tags: []string{"@Spread"}}}},
		{Filename: "d.feature", Scenarios: []gherkin.Scenario{{Name: "s", Tags: []string{"@Spread"}}}},
	}
	c := build(t, features)

	hot := c.SignificanceOf(tag.Must("@Hot"))
	spread := c.SignificanceOf(tag.Must("@Spread"))
	if hot <= spread {
		t.Errorf("concentrated tag should outscore spread tag: %g <= %g", hot, spread)
	}

	// More occurrences at fixed spread raise the score.
	single := build(t, []gherkin.Feature{
		{Filename: "a.feature", Scenarios: []gherkin.Scenario{
			{Name: "s1", Tags: []string{"@Hot"}},
		}},
	})
	if got := single.SignificanceOf(tag.Must("@Hot")); got >= hot {
		t.Errorf("fewer occurrences should not raise the score: %g >= %g", got, hot)
	}
}

func TestSignificanceOf_AbsentTag(t *testing.T) {
	c := build(t, paymentFixture())
	if got := c.SignificanceOf(tag.Must("@Nowhere")); !math.IsInf(got, -1) {
		t.Errorf("absent tag score = %g, want -Inf", got)
	}
}

func TestSignificantTags_TopQuartile(t *testing.T) {
	c := build(t, paymentFixture())

	got := c.SignificantTags(0.25)
	want := int(math.Ceil(float64(c.UniqueCount()) * 0.25))
	if len(got) != want {
		t.Errorf("SignificantTags(0.25) returned %d tags, want %d", len(got), want)
	}
}

func TestSignificantTags_AtLeastOne(t *testing.T) {
	c := build(t, []gherkin.Feature{
		{Filename: "f.feature", Scenarios: []gherkin.Scenario{{Name: "s", Tags: []string{"@Only"}}}},
	})
	if got := c.SignificantTags(0.01); len(got) != 1 {
		t.Errorf("non-empty concordance must yield at least one significant tag, got %d", len(got))
	}

	empty, _ := Build(nil, tag.DefaultCategories())
	if got := empty.SignificantTags(0.25); got != nil {
		t.Errorf("empty concordance should yield nil, got %v", got)
	}
}

func TestSimilarTags(t *testing.T) {
	c := build(t, []gherkin.Feature{
		{Filename: "f.feature", Scenarios: []gherkin.Scenario{
			{Name: "s1", Tags: []string{"@Regression"}},
			{Name: "s2", Tags: []string{"@Regresion"}},
			{Name: "s3", Tags: []string{"@P0"}},
			{Name: "s4", Tags: []string{"@P1"}},
		}},
	})

	sims := c.SimilarTags(tag.DefaultSimilarityDistance, tag.DefaultSimilarityMinLength)
	if len(sims) != 2 {
		t.Fatalf("expected 2 entries (each spelling), got %d", len(sims))
	}
	for _, s := range sims {
		if len(s.Similar) != 1 {
			t.Errorf("%s should have exactly 1 similar tag, got %d", s.Tag, len(s.Similar))
		}
		for _, other := range s.Similar {
			if other.Equal(s.Tag) {
				t.Errorf("self-match leaked for %s", s.Tag)
			}
		}
	}
}
