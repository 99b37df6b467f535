// Package config holds the analysis configuration: rule toggles,
// severity overrides, numeric thresholds, and tag category word-lists.
// Configuration errors are fatal to the whole run — thresholds affect
// every rule's outcome — so Load validates before any analysis starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/featlint/featlint/internal/tag"
	"github.com/featlint/featlint/internal/taxonomy"
)

// ErrInvalidConfig reports a configuration that cannot drive a run:
// non-positive thresholds, unknown warning kinds, unknown severities.
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration wraps time.Duration with YAML support for values like "30s".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the complete analysis configuration.
type Config struct {
	Tags     TagsConfig     `yaml:"tags"`
	Rules    RulesConfig    `yaml:"rules"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// TagsConfig controls tag categorization and similarity heuristics.
type TagsConfig struct {
	// Word-lists matched against normalized tag forms. Empty lists
	// fall back to the built-in defaults.
	PriorityWords []string `yaml:"priority_words"`
	TypeWords     []string `yaml:"type_words"`
	StatusWords   []string `yaml:"status_words"`

	// LowValueWords lists tags that add no information (@test, @temp).
	LowValueWords []string `yaml:"low_value_words"`

	// SimilarityDistance is the maximum Levenshtein distance for two
	// tags to count as variants of one another.
	SimilarityDistance int `yaml:"similarity_distance"`

	// SimilarityMinLength is the normalized-length floor below which
	// tags are never considered similar.
	SimilarityMinLength int `yaml:"similarity_min_length"`

	// SignificanceQuantile selects the top fraction of tags by
	// significance score, in (0, 1].
	SignificanceQuantile float64 `yaml:"significance_quantile"`
}

// RulesConfig controls which warnings fire and at what severity.
type RulesConfig struct {
	// Disabled lists warning kind names that are skipped entirely:
	// the rule never runs, no Warning object is constructed.
	Disabled []string `yaml:"disabled"`

	// Severities overrides the default severity per kind name.
	Severities map[string]string `yaml:"severities"`

	MaxTags            int `yaml:"max_tags"`
	MaxSteps           int `yaml:"max_steps"`
	MinSteps           int `yaml:"min_steps"`
	MaxScenarioNameLen int `yaml:"max_scenario_name_length"`
	MaxStepLength      int `yaml:"max_step_length"`
	MinExamples        int `yaml:"min_examples"`

	// UIKeywords flags UI-implementation vocabulary in step text.
	UIKeywords []string `yaml:"ui_keywords"`

	// ImplementationKeywords flags HTTP/API and timing mechanics.
	ImplementationKeywords []string `yaml:"implementation_keywords"`
}

// AnalysisConfig controls the execution model.
type AnalysisConfig struct {
	// Workers bounds the analysis pool. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// ParallelThreshold is the feature count above which the pool is
	// used; at or below it analysis runs sequentially, since pool
	// overhead dominates for small inputs.
	ParallelThreshold int `yaml:"parallel_threshold"`

	// Timeout bounds the whole batch. Zero disables the deadline.
	// On timeout the run fails; partial analytics would be misleading.
	Timeout Duration `yaml:"timeout"`

	// Sequential forces the sequential path regardless of input size.
	Sequential bool `yaml:"sequential"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tags: TagsConfig{
			LowValueWords:        []string{"test", "temp", "todo", "foo", "misc"},
			SimilarityDistance:   tag.DefaultSimilarityDistance,
			SimilarityMinLength:  tag.DefaultSimilarityMinLength,
			SignificanceQuantile: 0.25,
		},
		Rules: RulesConfig{
			MaxTags:            5,
			MaxSteps:           10,
			MinSteps:           2,
			MaxScenarioNameLen: 80,
			MaxStepLength:      120,
			MinExamples:        2,
			UIKeywords: []string{
				"click", "clicks", "type into", "types into", "button",
				"field", "dropdown", "checkbox", "scroll", "hover",
			},
			ImplementationKeywords: []string{
				"status code", "header", "endpoint", "json", "payload",
				"milliseconds", "sleep", "database row", "sql",
			},
		},
		Analysis: AnalysisConfig{
			ParallelThreshold: 5,
		},
	}
}

// Load reads a YAML config file, merges it over the defaults, and
// validates the result. An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w: %v", path, ErrInvalidConfig, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		if path != "" {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field the rules depend on. It fails fast:
// a bad threshold invalidates the whole run, not a single rule.
func (c Config) Validate() error {
	type bound struct {
		name string
		v    int
	}
	for _, b := range []bound{
		{"rules.max_tags", c.Rules.MaxTags},
		{"rules.max_steps", c.Rules.MaxSteps},
		{"rules.min_steps", c.Rules.MinSteps},
		{"rules.max_scenario_name_length", c.Rules.MaxScenarioNameLen},
		{"rules.max_step_length", c.Rules.MaxStepLength},
		{"rules.min_examples", c.Rules.MinExamples},
		{"tags.similarity_distance", c.Tags.SimilarityDistance},
		{"tags.similarity_min_length", c.Tags.SimilarityMinLength},
	} {
		if b.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, b.name, b.v)
		}
	}
	if c.Rules.MinSteps > c.Rules.MaxSteps {
		return fmt.Errorf("%w: rules.min_steps (%d) exceeds rules.max_steps (%d)",
			ErrInvalidConfig, c.Rules.MinSteps, c.Rules.MaxSteps)
	}
	if q := c.Tags.SignificanceQuantile; q <= 0 || q > 1 {
		return fmt.Errorf("%w: tags.significance_quantile must be in (0, 1], got %g",
			ErrInvalidConfig, q)
	}
	for _, name := range c.Rules.Disabled {
		if !taxonomy.IsKnownKind(name) {
			return fmt.Errorf("%w: unknown warning kind %q in rules.disabled",
				ErrInvalidConfig, name)
		}
	}
	for name, sev := range c.Rules.Severities {
		if !taxonomy.IsKnownKind(name) {
			return fmt.Errorf("%w: unknown warning kind %q in rules.severities",
				ErrInvalidConfig, name)
		}
		if !taxonomy.IsKnownSeverity(sev) {
			return fmt.Errorf("%w: unknown severity %q for kind %q",
				ErrInvalidConfig, sev, name)
		}
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("%w: analysis.workers must not be negative, got %d",
			ErrInvalidConfig, c.Analysis.Workers)
	}
	if time.Duration(c.Analysis.Timeout) < 0 {
		return fmt.Errorf("%w: analysis.timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// KindEnabled reports whether warnings of the given kind may be
// constructed at all. Disabled kinds are skipped before rule
// evaluation, not filtered at output.
func (c Config) KindEnabled(k taxonomy.Kind) bool {
	for _, name := range c.Rules.Disabled {
		if name == string(k) {
			return false
		}
	}
	return true
}

// SeverityOf returns the configured severity for a kind, falling back
// to the built-in default.
func (c Config) SeverityOf(k taxonomy.Kind) taxonomy.Severity {
	if s, ok := c.Rules.Severities[string(k)]; ok {
		return taxonomy.Severity(s)
	}
	return taxonomy.DefaultSeverityOf(k)
}

// Categories builds the tag category word-lists, substituting the
// built-in defaults for any list left empty.
func (c Config) Categories() tag.Categories {
	cats := tag.DefaultCategories()
	if len(c.Tags.PriorityWords) > 0 {
		cats.Priority = c.Tags.PriorityWords
	}
	if len(c.Tags.TypeWords) > 0 {
		cats.Type = c.Tags.TypeWords
	}
	if len(c.Tags.StatusWords) > 0 {
		cats.Status = c.Tags.StatusWords
	}
	return cats
}
