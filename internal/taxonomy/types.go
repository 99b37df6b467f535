// Package taxonomy defines the warning kind system, severity levels,
// core data structures, and stable ID generation for featlint
// analysis results.
package taxonomy

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// Kind enumerates all warning categories the analyzers can emit.
type Kind string

// Tag quality kinds.
const (
	MissingPriorityTag Kind = "MissingPriorityTag"
	MissingTypeTag     Kind = "MissingTypeTag"
	LowValueTag        Kind = "LowValueTag"
	DuplicateTag       Kind = "DuplicateTag"
	ExcessiveTags      Kind = "ExcessiveTags"
	TagTypo            Kind = "TagTypo"
	OrphanedTag        Kind = "OrphanedTag"
	AmbiguousTag       Kind = "AmbiguousTag"
	MalformedTag       Kind = "MalformedTag"
)

// Structural anti-pattern kinds.
const (
	LongScenario         Kind = "LongScenario"
	TooFewSteps          Kind = "TooFewSteps"
	MissingGiven         Kind = "MissingGiven"
	MissingWhen          Kind = "MissingWhen"
	MissingThen          Kind = "MissingThen"
	UIFocusedStep        Kind = "UIFocusedStep"
	ImplementationDetail Kind = "ImplementationDetail"
	LongScenarioName     Kind = "LongScenarioName"
	LongStepText         Kind = "LongStepText"
	IncorrectStepOrder   Kind = "IncorrectStepOrder"
	AmbiguousPronoun     Kind = "AmbiguousPronoun"
	InconsistentTense    Kind = "InconsistentTense"
	ConjunctionInStep    Kind = "ConjunctionInStep"
	MissingExamples      Kind = "MissingExamples"
	TooFewExamples       Kind = "TooFewExamples"
)

// AllKinds returns every known warning kind in declaration order.
// Used by config validation to reject unknown kind names.
func AllKinds() []Kind {
	return []Kind{
		MissingPriorityTag, MissingTypeTag, LowValueTag, DuplicateTag,
		ExcessiveTags, TagTypo, OrphanedTag, AmbiguousTag, MalformedTag,
		LongScenario, TooFewSteps, MissingGiven, MissingWhen, MissingThen,
		UIFocusedStep, ImplementationDetail, LongScenarioName, LongStepText,
		IncorrectStepOrder, AmbiguousPronoun, InconsistentTense,
		ConjunctionInStep, MissingExamples, TooFewExamples,
	}
}

// IsKnownKind reports whether s names a defined warning kind.
func IsKnownKind(s string) bool {
	for _, k := range AllKinds() {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Severity represents the reporting severity of a warning.
type Severity string

// Severity level constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsKnownSeverity reports whether s names a defined severity level.
func IsKnownSeverity(s string) bool {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Warning is a single quality or anti-pattern finding for one
// location. Warnings are created by an analyzer for a single run and
// consumed immediately by a formatter; they are never persisted.
type Warning struct {
	// ID is a stable identifier for diffing across runs.
	// Generated from sha256(kind+feature+scenario+message).
	ID string `json:"id"`

	// Kind is the warning category.
	Kind Kind `json:"kind"`

	// Severity is the configured severity for this kind.
	Severity Severity `json:"severity"`

	// Message is the human-readable explanation.
	Message string `json:"message"`

	// Feature is the feature filename, empty for corpus-level
	// findings (e.g. orphaned tags).
	Feature string `json:"feature,omitempty"`

	// Scenario is the scenario name, empty for feature-level and
	// corpus-level findings.
	Scenario string `json:"scenario,omitempty"`

	// Recommendations lists remediation suggestions in order.
	Recommendations []string `json:"recommendations,omitempty"`
}

// Location renders the warning position for reports: "file: scenario"
// for scenario findings, the filename for feature findings, and
// "corpus" for corpus-level findings.
func (w Warning) Location() string {
	switch {
	case w.Feature == "":
		return "corpus"
	case w.Scenario == "":
		return w.Feature
	default:
		return w.Feature + ": " + w.Scenario
	}
}

// New constructs a Warning with a generated stable ID.
func New(kind Kind, sev Severity, feature, scenario, message string, recommendations ...string) Warning {
	return Warning{
		ID:              GenerateID(kind, feature, scenario, message),
		Kind:            kind,
		Severity:        sev,
		Message:         message,
		Feature:         feature,
		Scenario:        scenario,
		Recommendations: recommendations,
	}
}

// Sort orders warnings deterministically: by feature filename, then
// scenario name, then kind, then message. Corpus-level warnings
// (empty feature) sort last. Concurrent rule evaluation must never
// leak into output ordering, so every analyzer result passes through
// here before rendering.
func Sort(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		a, b := warnings[i], warnings[j]
		if (a.Feature == "") != (b.Feature == "") {
			return b.Feature == ""
		}
		if a.Feature != b.Feature {
			return a.Feature < b.Feature
		}
		if a.Scenario != b.Scenario {
			return a.Scenario < b.Scenario
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Message < b.Message
	})
}

// GenerateID produces a stable, deterministic ID for a warning based
// on its context. The ID is a sha256 hash truncated to 8 hex
// characters, prefixed with "fw-".
func GenerateID(kind Kind, feature, scenario, message string) string {
	input := fmt.Sprintf("%s:%s:%s:%s", kind, feature, scenario, message)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("fw-%x", hash[:4])
}
