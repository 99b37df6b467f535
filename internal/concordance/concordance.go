// Package concordance aggregates tag occurrence counts over a set of
// features and derives the statistics the analyzers consume:
// frequency views, co-occurrence, trend, and significance. A
// concordance is built once per run and never mutated afterwards, so
// it can be shared read-only across concurrent rule evaluations.
package concordance

import (
	"sort"

	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/tag"
)

// Concordance is an immutable aggregate of tag occurrences. Any
// filtered or sub view is a new instance.
type Concordance struct {
	counts map[string]int     // normalized form -> occurrence count
	byNorm map[string]tag.Tag // normalized form -> first-seen Tag
	spread map[string]int     // normalized form -> distinct features containing it
	total  int
	events [][]string // deduplicated normalized tag sets, one per feature/scenario

	cats tag.Categories
}

// Malformed records a raw tag token that failed construction during
// Build. The engine turns these into MalformedTag warnings; the build
// itself continues, so one bad tag never aborts the run.
type Malformed struct {
	Feature  string
	Scenario string
	Raw      string
	Err      error
}

// TagCount pairs a tag with its occurrence count for sorted views.
type TagCount struct {
	Tag   tag.Tag
	Count int
}

// Build constructs a concordance from parsed features: one occurrence
// per feature-level tag per feature, one per scenario-level tag per
// non-background scenario. A tag appearing twice on the same scenario
// counts twice — duplicate detection is the quality analyzer's job.
func Build(features []gherkin.Feature, cats tag.Categories) (*Concordance, []Malformed) {
	c := &Concordance{
		counts: make(map[string]int),
		byNorm: make(map[string]tag.Tag),
		spread: make(map[string]int),
		cats:   cats,
	}
	var malformed []Malformed

	for _, f := range features {
		seenInFeature := make(map[string]bool)

		featureTags := c.addEvent(f.Tags, f.Filename, "", &malformed)
		for _, n := range featureTags {
			if !seenInFeature[n] {
				seenInFeature[n] = true
				c.spread[n]++
			}
		}

		for _, s := range f.Scenarios {
			if s.Background {
				continue
			}
			scenarioTags := c.addEvent(s.Tags, f.Filename, s.Name, &malformed)
			for _, n := range scenarioTags {
				if !seenInFeature[n] {
					seenInFeature[n] = true
					c.spread[n]++
				}
			}
		}
	}

	return c, malformed
}

// addEvent counts one occurrence event (a feature's or scenario's tag
// list), records the deduplicated tag set for co-occurrence, and
// returns the normalized forms that were counted.
func (c *Concordance) addEvent(raws []string, feature, scenario string, malformed *[]Malformed) []string {
	var norms []string
	dedup := make(map[string]bool)

	for _, raw := range raws {
		t, err := tag.NewWith(raw, c.cats)
		if err != nil {
			*malformed = append(*malformed, Malformed{
				Feature:  feature,
				Scenario: scenario,
				Raw:      raw,
				Err:      err,
			})
			continue
		}
		n := t.Normalized()
		c.counts[n]++
		c.total++
		if _, ok := c.byNorm[n]; !ok {
			c.byNorm[n] = t
		}
		norms = append(norms, n)
		dedup[n] = true
	}

	if len(dedup) > 1 {
		set := make([]string, 0, len(dedup))
		for n := range dedup {
			set = append(set, n)
		}
		sort.Strings(set)
		c.events = append(c.events, set)
	}
	return norms
}

// Count returns the occurrence count for a tag, 0 when absent.
func (c *Concordance) Count(t tag.Tag) int {
	return c.counts[t.Normalized()]
}

// TotalOccurrences returns the sum of all tag counts.
func (c *Concordance) TotalOccurrences() int { return c.total }

// UniqueCount returns the number of distinct normalized tags.
func (c *Concordance) UniqueCount() int { return len(c.counts) }

// FeatureSpread returns the number of distinct features that carry
// the tag (on the feature itself or on any of its scenarios).
func (c *Concordance) FeatureSpread(t tag.Tag) int {
	return c.spread[t.Normalized()]
}

// All returns every distinct tag in natural order (category rank,
// then alphabetical by normalized form).
func (c *Concordance) All() []tag.Tag {
	tags := make([]tag.Tag, 0, len(c.byNorm))
	for _, t := range c.byNorm {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Compare(tags[j]) < 0 })
	return tags
}

// SortedByFrequency returns tags with counts, descending by count,
// ties broken by tag natural ordering for determinism.
func (c *Concordance) SortedByFrequency() []TagCount {
	out := c.tagCounts()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag.Compare(out[j].Tag) < 0
	})
	return out
}

// SortedAlphabetically returns tags with counts in natural tag order.
func (c *Concordance) SortedAlphabetically() []TagCount {
	out := c.tagCounts()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Tag.Compare(out[j].Tag) < 0
	})
	return out
}

func (c *Concordance) tagCounts() []TagCount {
	out := make([]TagCount, 0, len(c.byNorm))
	for n, t := range c.byNorm {
		out = append(out, TagCount{Tag: t, Count: c.counts[n]})
	}
	return out
}

// FilterByCategory returns a new concordance containing only tags of
// the given category, counts unchanged. Co-occurrence events are
// narrowed to the surviving tags.
func (c *Concordance) FilterByCategory(cat tag.Category) *Concordance {
	out := &Concordance{
		counts: make(map[string]int),
		byNorm: make(map[string]tag.Tag),
		spread: make(map[string]int),
		cats:   c.cats,
	}
	for n, t := range c.byNorm {
		if t.Category() != cat {
			continue
		}
		out.byNorm[n] = t
		out.counts[n] = c.counts[n]
		out.spread[n] = c.spread[n]
		out.total += c.counts[n]
	}
	for _, ev := range c.events {
		var kept []string
		for _, n := range ev {
			if _, ok := out.byNorm[n]; ok {
				kept = append(kept, n)
			}
		}
		if len(kept) > 1 {
			out.events = append(out.events, kept)
		}
	}
	return out
}

// Orphans returns tags occurring exactly once across the whole
// corpus, in natural order. Orphans signal likely one-off or typo tags.
func (c *Concordance) Orphans() []tag.Tag {
	var out []tag.Tag
	for n, t := range c.byNorm {
		if c.counts[n] == 1 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// TagsAboveThreshold returns tags with count strictly greater than n.
// Together with TagsBelowThreshold it partitions the tag set: a tag
// with count == n lands in the Below view.
func (c *Concordance) TagsAboveThreshold(n int) []TagCount {
	return c.filterCounts(func(count int) bool { return count > n })
}

// TagsBelowThreshold returns tags with count less than or equal to n.
func (c *Concordance) TagsBelowThreshold(n int) []TagCount {
	return c.filterCounts(func(count int) bool { return count <= n })
}

func (c *Concordance) filterCounts(keep func(int) bool) []TagCount {
	var out []TagCount
	for n, t := range c.byNorm {
		if keep(c.counts[n]) {
			out = append(out, TagCount{Tag: t, Count: c.counts[n]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag.Compare(out[j].Tag) < 0
	})
	return out
}
