package tag

// Category classifies a tag by its role in the suite's labeling
// scheme. Ordering for reports is PRIORITY < TYPE < STATUS < OTHER.
type Category string

// Category constants.
const (
	CategoryPriority Category = "priority"
	CategoryType     Category = "type"
	CategoryStatus   Category = "status"
	CategoryOther    Category = "other"
)

// Rank returns the sort rank of the category for report ordering.
func (c Category) Rank() int {
	switch c {
	case CategoryPriority:
		return 0
	case CategoryType:
		return 1
	case CategoryStatus:
		return 2
	default:
		return 3
	}
}

// Categories holds the word-lists that drive tag categorization.
// Words are matched against normalized tag forms, so entries here
// must be lowercase with separators stripped. The zero value
// categorizes everything as OTHER; callers usually start from
// DefaultCategories and override lists via configuration.
type Categories struct {
	Priority []string
	Type     []string
	Status   []string
}

// DefaultCategories returns the built-in category word-lists.
func DefaultCategories() Categories {
	return Categories{
		Priority: []string{
			"p0", "p1", "p2", "p3", "p4",
			"critical", "high", "medium", "low",
		},
		Type: []string{
			"ui", "api", "integration", "unit", "smoke",
			"regression", "e2e", "endtoend", "functional",
			"performance", "security", "acceptance",
		},
		Status: []string{
			"wip", "ready", "flaky", "deprecated", "blocked",
			"manual", "automated", "skip", "pending",
		},
	}
}

// CategoryOf returns the category of a normalized tag form.
// Membership tests are exact matches against the word-lists; anything
// unlisted is OTHER.
func (c Categories) CategoryOf(normalized string) Category {
	switch {
	case contains(c.Priority, normalized):
		return CategoryPriority
	case contains(c.Type, normalized):
		return CategoryType
	case contains(c.Status, normalized):
		return CategoryStatus
	default:
		return CategoryOther
	}
}

func contains(words []string, s string) bool {
	for _, w := range words {
		if w == s {
			return true
		}
	}
	return false
}
