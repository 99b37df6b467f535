package taxonomy

import (
	"testing"
)

func TestGenerateID_Deterministic(t *testing.T) {
	id1 := GenerateID(LongScenario, "checkout.feature", "Pay by card", "scenario has 14 steps")
	id2 := GenerateID(LongScenario, "checkout.feature", "Pay by card", "scenario has 14 steps")

	if id1 != id2 {
		t.Errorf("GenerateID not deterministic: %q != %q", id1, id2)
	}
}

func TestGenerateID_Format(t *testing.T) {
	id := GenerateID(DuplicateTag, "checkout.feature", "Pay by card", "tag @smoke repeated")

	if len(id) != 11 { // "fw-" + 8 hex chars
		t.Errorf("expected ID length 11, got %d: %q", len(id), id)
	}
	if id[:3] != "fw-" {
		t.Errorf("expected ID to start with 'fw-', got %q", id)
	}
}

func TestGenerateID_UniqueForDifferentInputs(t *testing.T) {
	id1 := GenerateID(DuplicateTag, "a.feature", "s", "m")
	id2 := GenerateID(TagTypo, "a.feature", "s", "m")
	id3 := GenerateID(DuplicateTag, "b.feature", "s", "m")

	if id1 == id2 {
		t.Errorf("different kinds should produce different IDs")
	}
	if id1 == id3 {
		t.Errorf("different features should produce different IDs")
	}
}

func TestDefaultSeverityOf(t *testing.T) {
	tests := []struct {
		kind Kind
		want Severity
	}{
		{MissingPriorityTag, SeverityError},
		{MissingTypeTag, SeverityError},
		{MalformedTag, SeverityError},
		{OrphanedTag, SeverityInfo},
		{DuplicateTag, SeverityWarning},
		{LongScenario, SeverityWarning},
		{TooFewExamples, SeverityWarning},
	}
	for _, tt := range tests {
		if got := DefaultSeverityOf(tt.kind); got != tt.want {
			t.Errorf("DefaultSeverityOf(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestDefaultSeverityOf_AllKindsCovered(t *testing.T) {
	for _, k := range AllKinds() {
		if _, ok := severityMap[k]; !ok {
			t.Errorf("kind %s missing from default severity map", k)
		}
	}
}

func TestIsKnownKind(t *testing.T) {
	if !IsKnownKind("LongScenario") {
		t.Error("LongScenario should be a known kind")
	}
	if IsKnownKind("NoSuchKind") {
		t.Error("NoSuchKind should not be a known kind")
	}
}

func TestWarning_Location(t *testing.T) {
	tests := []struct {
		name     string
		warning  Warning
		expected string
	}{
		{
			name:     "corpus level",
			warning:  Warning{},
			expected: "corpus",
		},
		{
			name:     "feature level",
			warning:  Warning{Feature: "checkout.feature"},
			expected: "checkout.feature",
		},
		{
			name:     "scenario level",
			warning:  Warning{Feature: "checkout.feature", Scenario: "Pay by card"},
			expected: "checkout.feature: Pay by card",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.warning.Location()
			if got != tt.expected {
				t.Errorf("Location() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSort_Deterministic(t *testing.T) {
	input := []Warning{
		{Kind: OrphanedTag, Message: "z"},
		{Feature: "b.feature", Scenario: "s1", Kind: LongScenario, Message: "m"},
		{Feature: "a.feature", Scenario: "s2", Kind: TagTypo, Message: "m"},
		{Feature: "a.feature", Scenario: "s1", Kind: TagTypo, Message: "m2"},
		{Feature: "a.feature", Scenario: "s1", Kind: TagTypo, Message: "m1"},
		{Feature: "a.feature", Scenario: "s1", Kind: DuplicateTag, Message: "m"},
	}

	Sort(input)

	want := []struct {
		feature, scenario string
		kind              Kind
		message           string
	}{
		{"a.feature", "s1", DuplicateTag, "m"},
		{"a.feature", "s1", TagTypo, "m1"},
		{"a.feature", "s1", TagTypo, "m2"},
		{"a.feature", "s2", TagTypo, "m"},
		{"b.feature", "s1", LongScenario, "m"},
		{"", "", OrphanedTag, "z"}, // corpus-level sorts last
	}

	for i, w := range want {
		got := input[i]
		if got.Feature != w.feature || got.Scenario != w.scenario ||
			got.Kind != w.kind || got.Message != w.message {
			t.Errorf("position %d: got %s/%s/%s/%s, want %s/%s/%s/%s",
				i, got.Feature, got.Scenario, got.Kind, got.Message,
				w.feature, w.scenario, w.kind, w.message)
		}
	}
}

func TestNew_PopulatesID(t *testing.T) {
	w := New(LongScenario, SeverityWarning, "a.feature", "s", "too long", "split the scenario")
	if w.ID == "" {
		t.Fatal("New should generate an ID")
	}
	if len(w.Recommendations) != 1 || w.Recommendations[0] != "split the scenario" {
		t.Errorf("unexpected recommendations: %v", w.Recommendations)
	}
}
