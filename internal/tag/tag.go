// Package tag implements the normalized, categorized, comparable tag
// value used throughout the analytics engine. Tags are immutable:
// constructed once from a raw token, never mutated.
package tag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Marker is the token prefix that introduces a tag.
const Marker = "@"

// Similarity defaults. Distance ≤ 2 balances typo detection against
// false positives; the length floor keeps short tags like @P0/@P1
// from being flagged as typos of each other. Both are tunable via
// configuration.
const (
	DefaultSimilarityDistance  = 2
	DefaultSimilarityMinLength = 4
)

// ErrInvalidTag reports a malformed raw tag token (empty or blank
// after trimming).
var ErrInvalidTag = errors.New("invalid tag")

// Tag is an immutable tag value. Two tags are equal iff their
// normalized forms are equal; use Equal, not ==, since the name
// preserves original casing.
type Tag struct {
	name       string
	normalized string
	category   Category
}

// New constructs a Tag from a raw token using the default category
// word-lists. It fails with an error wrapping ErrInvalidTag when the
// token is blank after trimming. A missing marker is prepended;
// repeated leading markers collapse to one.
func New(raw string) (Tag, error) {
	return NewWith(raw, DefaultCategories())
}

// NewWith constructs a Tag using explicit category word-lists.
func NewWith(raw string, cats Categories) (Tag, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.TrimLeft(trimmed, Marker) == "" {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, raw)
	}

	body := strings.TrimLeft(trimmed, Marker)
	norm := normalize(body)
	return Tag{
		name:       Marker + body,
		normalized: norm,
		category:   cats.CategoryOf(norm),
	}, nil
}

// Must constructs a Tag and panics on malformed input. Test helper.
func Must(raw string) Tag {
	t, err := New(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// normalize lowercases the tag body and strips the separators - _ .
// so that @smoke-test, @Smoke_Test and @smoke.test all compare equal.
func normalize(body string) string {
	lower := strings.ToLower(body)
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.':
			return -1
		}
		return r
	}, lower)
}

// Name returns the tag with its marker and original casing, e.g. "@P0".
func (t Tag) Name() string { return t.name }

// Normalized returns the lowercase, separator-stripped form used for
// equality and map keys.
func (t Tag) Normalized() string { return t.normalized }

// Category returns the tag's category.
func (t Tag) Category() Category { return t.category }

// IsPriority reports whether the tag is a priority tag.
func (t Tag) IsPriority() bool { return t.category == CategoryPriority }

// IsType reports whether the tag is a test-type tag.
func (t Tag) IsType() bool { return t.category == CategoryType }

// IsStatus reports whether the tag is a status tag.
func (t Tag) IsStatus() bool { return t.category == CategoryStatus }

// Equal reports whether two tags have the same normalized form,
// making equality case- and separator-insensitive.
func (t Tag) Equal(other Tag) bool { return t.normalized == other.normalized }

// DistanceTo returns the Levenshtein edit distance between the two
// tags' normalized forms.
func (t Tag) DistanceTo(other Tag) int {
	return levenshtein.ComputeDistance(t.normalized, other.normalized)
}

// IsSimilarTo reports whether the tags look like variants of one
// another: edit distance in (0, maxDist] with both normalized forms
// at least minLen long. A tag is never similar to itself or to an
// equal-normalized tag (distance 0). Symmetric by construction.
func (t Tag) IsSimilarTo(other Tag, maxDist, minLen int) bool {
	if len(t.normalized) < minLen || len(other.normalized) < minLen {
		return false
	}
	d := t.DistanceTo(other)
	return d > 0 && d <= maxDist
}

// Compare orders tags for deterministic reports: category rank
// (PRIORITY < TYPE < STATUS < OTHER), then alphabetical by normalized
// form. Returns a negative number, zero, or a positive number as t
// sorts before, equal to, or after other.
func (t Tag) Compare(other Tag) int {
	if ra, rb := t.category.Rank(), other.category.Rank(); ra != rb {
		return ra - rb
	}
	return strings.Compare(t.normalized, other.normalized)
}

// String implements fmt.Stringer.
func (t Tag) String() string { return t.name }
