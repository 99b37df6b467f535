// Package gherkin defines the parsed behavior-specification model the
// analyzers consume. Parsing raw feature text is an external
// collaborator's job; this package only describes the delivered shape
// and resolves step roles.
package gherkin

// Feature is a named document grouping one or more scenarios,
// carrying its own tags. Tags are raw tokens as delivered by the
// parser; tag construction (and malformed-tag containment) happens in
// the engine.
type Feature struct {
	Name      string     `yaml:"feature" json:"feature"`
	Filename  string     `yaml:"filename" json:"filename"`
	Tags      []string   `yaml:"tags" json:"tags"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario is a named sequence of steps, optionally an outline with
// example tables.
type Scenario struct {
	Name       string         `yaml:"name" json:"name"`
	Tags       []string       `yaml:"tags" json:"tags"`
	Background bool           `yaml:"background" json:"background"`
	Outline    bool           `yaml:"outline" json:"outline"`
	Steps      []Step         `yaml:"steps" json:"steps"`
	Examples   []ExampleTable `yaml:"examples" json:"examples"`
}

// Step is one Given/When/Then/And/But line.
type Step struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Text    string `yaml:"text" json:"text"`
}

// ExampleTable holds the examples of a scenario outline.
type ExampleTable struct {
	Name   string     `yaml:"name" json:"name"`
	Header []string   `yaml:"header" json:"header"`
	Rows   [][]string `yaml:"rows" json:"rows"`
}

// Role is the resolved Given/When/Then role of a step after
// And/But inheritance.
type Role int

// Step role constants. RoleNone marks a step whose role cannot be
// resolved (an And/But with no preceding primary keyword, or an
// unrecognized keyword).
const (
	RoleNone Role = iota
	RoleGiven
	RoleWhen
	RoleThen
)

// String returns the primary keyword for the role.
func (r Role) String() string {
	switch r {
	case RoleGiven:
		return "Given"
	case RoleWhen:
		return "When"
	case RoleThen:
		return "Then"
	default:
		return "None"
	}
}

// Roles resolves the role of every step in order. Continuation
// keywords (And, But, and the "*" shorthand) inherit the preceding
// primary keyword's role.
func Roles(steps []Step) []Role {
	roles := make([]Role, len(steps))
	current := RoleNone
	for i, s := range steps {
		switch s.Keyword {
		case "Given":
			current = RoleGiven
		case "When":
			current = RoleWhen
		case "Then":
			current = RoleThen
		case "And", "But", "*":
			// inherit current
		default:
			current = RoleNone
		}
		roles[i] = current
	}
	return roles
}

// RowCount returns the total number of example rows across all of the
// scenario's example tables.
func (s Scenario) RowCount() int {
	n := 0
	for _, t := range s.Examples {
		n += len(t.Rows)
	}
	return n
}
