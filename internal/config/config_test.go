package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/featlint/featlint/internal/taxonomy"
)

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Rules.MaxSteps != 10 {
		t.Errorf("max_steps = %d, want default 10", cfg.Rules.MaxSteps)
	}
	if cfg.Tags.SignificanceQuantile != 0.25 {
		t.Errorf("significance_quantile = %g, want 0.25", cfg.Tags.SignificanceQuantile)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".featlint.yaml")
	content := []byte(`rules:
  max_steps: 15
  disabled:
    - OrphanedTag
  severities:
    LongScenario: error
analysis:
  workers: 4
  timeout: 30s
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Rules.MaxSteps != 15 {
		t.Errorf("max_steps = %d, want 15", cfg.Rules.MaxSteps)
	}
	if cfg.Rules.MinSteps != 2 {
		t.Errorf("min_steps = %d, want default 2 preserved", cfg.Rules.MinSteps)
	}
	if cfg.KindEnabled(taxonomy.OrphanedTag) {
		t.Error("OrphanedTag should be disabled")
	}
	if got := cfg.SeverityOf(taxonomy.LongScenario); got != taxonomy.SeverityError {
		t.Errorf("SeverityOf(LongScenario) = %s, want error", got)
	}
	if time.Duration(cfg.Analysis.Timeout) != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", time.Duration(cfg.Analysis.Timeout))
	}
}

func TestLoad_UnknownKindRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".featlint.yaml")
	content := []byte(`rules:
  disabled:
    - NoSuchKind
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown warning kind")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_NonPositiveThresholdRejected(t *testing.T) {
	cfg := Default()
	cfg.Rules.MaxSteps = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for max_steps=0")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_InvertedStepBoundsRejected(t *testing.T) {
	cfg := Default()
	cfg.Rules.MinSteps = 20
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_steps > max_steps")
	}
}

func TestValidate_QuantileBounds(t *testing.T) {
	for _, q := range []float64{0, -0.1, 1.5} {
		cfg := Default()
		cfg.Tags.SignificanceQuantile = q
		if err := cfg.Validate(); err == nil {
			t.Errorf("quantile %g should be rejected", q)
		}
	}
	cfg := Default()
	cfg.Tags.SignificanceQuantile = 1
	if err := cfg.Validate(); err != nil {
		t.Errorf("quantile 1.0 should be accepted: %v", err)
	}
}

func TestValidate_UnknownSeverityRejected(t *testing.T) {
	cfg := Default()
	cfg.Rules.Severities = map[string]string{"LongScenario": "fatal"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown severity name")
	}
}

func TestSeverityOf_DefaultFallback(t *testing.T) {
	cfg := Default()
	if got := cfg.SeverityOf(taxonomy.MissingPriorityTag); got != taxonomy.SeverityError {
		t.Errorf("SeverityOf(MissingPriorityTag) = %s, want error", got)
	}
	if got := cfg.SeverityOf(taxonomy.OrphanedTag); got != taxonomy.SeverityInfo {
		t.Errorf("SeverityOf(OrphanedTag) = %s, want info", got)
	}
}

func TestCategories_OverrideOnlyProvidedLists(t *testing.T) {
	cfg := Default()
	cfg.Tags.PriorityWords = []string{"blocker"}
	cats := cfg.Categories()

	if cats.CategoryOf("blocker") != "priority" {
		t.Error("custom priority word should be honored")
	}
	if cats.CategoryOf("smoke") != "type" {
		t.Error("default type words should survive a priority-only override")
	}
	if cats.CategoryOf("p0") == "priority" {
		t.Error("built-in priority words should be replaced by the override")
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
