package concordance

import (
	"sort"

	"github.com/featlint/featlint/internal/tag"
)

// Pair is one unordered tag pair that appears together on the same
// feature or scenario, with its event count and Jaccard coefficient.
// The coefficient is count / (countA + countB − count), always in
// [0, 1]; 1.0 means the tags never appear apart.
type Pair struct {
	A       tag.Tag
	B       tag.Tag
	Count   int
	Jaccard float64
}

// Pairs computes the co-occurrence table: every unordered pair of
// distinct tags sharing at least one occurrence event. Sorted by
// coefficient descending, ties by count descending, then by pair key
// so the order is fully deterministic.
func (c *Concordance) Pairs() []Pair {
	type key struct{ a, b string }
	pairCounts := make(map[key]int)

	for _, ev := range c.events {
		// Event tag sets are deduplicated and sorted at build time,
		// so a < b holds for every generated key.
		for i := 0; i < len(ev); i++ {
			for j := i + 1; j < len(ev); j++ {
				pairCounts[key{ev[i], ev[j]}]++
			}
		}
	}

	out := make([]Pair, 0, len(pairCounts))
	for k, n := range pairCounts {
		ca, cb := c.counts[k.a], c.counts[k.b]
		union := ca + cb - n
		j := 0.0
		if union > 0 {
			j = float64(n) / float64(union)
		}
		out = append(out, Pair{
			A:       c.byNorm[k.a],
			B:       c.byNorm[k.b],
			Count:   n,
			Jaccard: j,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Jaccard != out[j].Jaccard {
			return out[i].Jaccard > out[j].Jaccard
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].A.Normalized() != out[j].A.Normalized() {
			return out[i].A.Normalized() < out[j].A.Normalized()
		}
		return out[i].B.Normalized() < out[j].B.Normalized()
	})
	return out
}

// PairFor returns the co-occurrence entry for two tags, if any.
func (c *Concordance) PairFor(a, b tag.Tag) (Pair, bool) {
	na, nb := a.Normalized(), b.Normalized()
	for _, p := range c.Pairs() {
		pa, pb := p.A.Normalized(), p.B.Normalized()
		if (pa == na && pb == nb) || (pa == nb && pb == na) {
			return p, true
		}
	}
	return Pair{}, false
}
