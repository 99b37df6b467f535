package concordance

import (
	"math"
	"sort"

	"github.com/featlint/featlint/internal/tag"
)

// Direction classifies how a tag's usage is moving between runs.
type Direction string

// Trend direction constants.
const (
	Rising    Direction = "rising"
	Declining Direction = "declining"
	Stable    Direction = "stable"
)

// GrowthCap is the sentinel growth rate for tags that appear in the
// current run but not in the previous one.
const GrowthCap = 1e9

// Growth-rate boundaries for trend classification.
const (
	risingThreshold    = 0.05
	decliningThreshold = -0.05
)

// Trend is a tag's growth classification against an optional prior run.
type Trend struct {
	Direction Direction
	Growth    float64
}

// TrendOf classifies a tag's trend. Without a previous concordance
// there is no history, so the trend is necessarily Stable with growth
// 0. With one, growth = (current − previous) / previous; a previous
// count of 0 classifies Rising with growth capped at GrowthCap.
func (c *Concordance) TrendOf(t tag.Tag, previous *Concordance) Trend {
	if previous == nil {
		return Trend{Direction: Stable, Growth: 0}
	}
	cur := float64(c.Count(t))
	prev := float64(previous.Count(t))
	if prev == 0 {
		if cur > 0 {
			return Trend{Direction: Rising, Growth: GrowthCap}
		}
		return Trend{Direction: Stable, Growth: 0}
	}
	growth := (cur - prev) / prev
	switch {
	case growth > risingThreshold:
		return Trend{Direction: Rising, Growth: growth}
	case growth < decliningThreshold:
		return Trend{Direction: Declining, Growth: growth}
	default:
		return Trend{Direction: Stable, Growth: growth}
	}
}

// Score pairs a tag with its significance score.
type Score struct {
	Tag   tag.Tag
	Score float64
}

// SignificanceOf computes a TF-IDF-style weight for one tag:
// ln(count) − ln(1 + featureSpread). Common, evenly spread tags score
// negative; tags concentrated in few features relative to their
// frequency score closer to zero or positive. The exact formula is a
// tunable heuristic; the contract is monotonicity — more occurrences
// raise the score, wider spread lowers it — not a fixed value.
func (c *Concordance) SignificanceOf(t tag.Tag) float64 {
	count := c.Count(t)
	if count == 0 {
		return math.Inf(-1)
	}
	return math.Log(float64(count)) - math.Log(1+float64(c.FeatureSpread(t)))
}

// Significance returns every tag scored, descending by score, ties
// by tag natural ordering.
func (c *Concordance) Significance() []Score {
	out := make([]Score, 0, len(c.byNorm))
	for _, t := range c.byNorm {
		out = append(out, Score{Tag: t, Score: c.SignificanceOf(t)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Tag.Compare(out[j].Tag) < 0
	})
	return out
}

// SignificantTags returns the top quantile of tags by significance
// score. The quantile is in (0, 1]; at least one tag is returned when
// the concordance is non-empty.
func (c *Concordance) SignificantTags(quantile float64) []tag.Tag {
	scored := c.Significance()
	if len(scored) == 0 {
		return nil
	}
	n := int(math.Ceil(float64(len(scored)) * quantile))
	if n < 1 {
		n = 1
	}
	if n > len(scored) {
		n = len(scored)
	}
	out := make([]tag.Tag, n)
	for i := 0; i < n; i++ {
		out[i] = scored[i].Tag
	}
	return out
}

// Similarity maps one tag to the other corpus tags it resembles.
type Similarity struct {
	Tag     tag.Tag
	Similar []tag.Tag
}

// SimilarTags compares every distinct tag against every other and
// returns those with at least one similar counterpart, self-matches
// excluded. O(n²) over unique tags, which stays cheap for the tens to
// low hundreds of tags real suites carry. Output is sorted by tag
// natural order, and each Similar list likewise.
func (c *Concordance) SimilarTags(maxDist, minLen int) []Similarity {
	tags := c.All()
	var out []Similarity
	for _, t := range tags {
		var similar []tag.Tag
		for _, other := range tags {
			if t.IsSimilarTo(other, maxDist, minLen) {
				similar = append(similar, other)
			}
		}
		if len(similar) > 0 {
			out = append(out, Similarity{Tag: t, Similar: similar})
		}
	}
	return out
}
