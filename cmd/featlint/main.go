package main

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/config"
	"github.com/featlint/featlint/internal/engine"
	"github.com/featlint/featlint/internal/loader"
	"github.com/featlint/featlint/internal/report"
	"github.com/featlint/featlint/internal/tag"
	"github.com/featlint/featlint/internal/taxonomy"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "featlint",
		Short: "Featlint — tag and structure analytics for behavior specs",
		Long: `Featlint analyzes parsed behavior-specification documents: it
audits scenario tagging against a configurable taxonomy, detects
structural anti-patterns, and reports tag usage statistics across
the corpus.`,
		Version: version,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newTagsCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// analyzeParams holds the parsed flags for the analyze command.
type analyzeParams struct {
	paths       []string
	format      string
	configPath  string
	maxTags     int
	maxSteps    int
	interactive bool
	stdout      io.Writer
	stderr      io.Writer
}

// runAnalyze is the extracted, testable body of the analyze command.
func runAnalyze(p analyzeParams) error {
	format, err := report.ParseFormat(p.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(p.configPath)
	if err != nil {
		return err
	}
	if p.maxTags >= 0 {
		cfg.Rules.MaxTags = p.maxTags
	}
	if p.maxSteps >= 0 {
		cfg.Rules.MaxSteps = p.maxSteps
	}

	features, err := loader.Load(p.paths...)
	if err != nil {
		return err
	}
	if len(features) == 0 {
		logger.Warn("no feature documents found")
	}

	logger.Info("analyzing corpus", "features", len(features))
	result, err := engine.Run(context.Background(), features, cfg)
	if err != nil {
		return err
	}
	logger.Info("analysis complete", "warnings", len(result.Warnings))

	if p.interactive {
		return runInteractiveWarnings(result.Warnings)
	}

	renderer, err := report.New(format)
	if err != nil {
		return err
	}
	if err := renderer.RenderWarnings(p.stdout, result.Warnings); err != nil {
		return err
	}

	return checkSeverityGate(p.stderr, result.Warnings)
}

// checkSeverityGate writes a one-line gate verdict to stderr and
// returns an error when any error-severity warning is present, so CI
// runs fail on serious findings.
func checkSeverityGate(stderr io.Writer, warnings []taxonomy.Warning) error {
	errs := 0
	for _, w := range warnings {
		if w.Severity == taxonomy.SeverityError {
			errs++
		}
	}
	if errs > 0 {
		fmt.Fprintf(stderr, "gate: FAIL (%d error-severity warning(s))\n", errs)
		return fmt.Errorf("%d error-severity warning(s) found", errs)
	}
	fmt.Fprintln(stderr, "gate: PASS")
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	var (
		format      string
		configPath  string
		maxTags     int
		maxSteps    int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Analyze feature documents for tag and structure problems",
		Long: `Analyze parsed feature documents (YAML or JSON) and report tag
quality warnings and structural anti-patterns. Exits non-zero when
any error-severity warning is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(analyzeParams{
				paths:       args,
				format:      format,
				configPath:  configPath,
				maxTags:     maxTags,
				maxSteps:    maxSteps,
				interactive: interactive,
				stdout:      os.Stdout,
				stderr:      os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text, markdown, html, json, or junit")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to .featlint.yaml (default: built-in defaults)")
	cmd.Flags().IntVar(&maxTags, "max-tags", -1,
		"override the maximum distinct tags per scenario (-1 = from config)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", -1,
		"override the maximum steps per scenario (-1 = from config)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing warnings")

	return cmd
}

// tagsParams holds the parsed flags for the tags command.
type tagsParams struct {
	paths       []string
	format      string
	configPath  string
	category    string
	orphans     bool
	significant bool
	threshold   int
	stdout      io.Writer
}

// runTags is the extracted, testable body of the tags command.
func runTags(p tagsParams) error {
	format, err := report.ParseFormat(p.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(p.configPath)
	if err != nil {
		return err
	}

	features, err := loader.Load(p.paths...)
	if err != nil {
		return err
	}

	conc, malformed := concordance.Build(features, cfg.Categories())
	if len(malformed) > 0 {
		logger.Warn("skipped malformed tags", "count", len(malformed))
	}

	if p.category != "" {
		cat, err := parseCategory(p.category)
		if err != nil {
			return err
		}
		conc = conc.FilterByCategory(cat)
	}

	if p.orphans {
		for _, o := range conc.Orphans() {
			fmt.Fprintln(p.stdout, o.Name())
		}
		return nil
	}
	if p.significant {
		for _, t := range conc.SignificantTags(cfg.Tags.SignificanceQuantile) {
			fmt.Fprintln(p.stdout, t.Name())
		}
		return nil
	}
	if p.threshold >= 0 {
		for _, tc := range conc.TagsAboveThreshold(p.threshold) {
			fmt.Fprintf(p.stdout, "%s\t%d\n", tc.Tag.Name(), tc.Count)
		}
		return nil
	}

	renderer, err := report.New(format)
	if err != nil {
		return err
	}
	return renderer.RenderConcordance(p.stdout, conc)
}

func parseCategory(s string) (tag.Category, error) {
	switch c := tag.Category(s); c {
	case tag.CategoryPriority, tag.CategoryType, tag.CategoryStatus, tag.CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (want priority, type, status, or other)", s)
}

func newTagsCmd() *cobra.Command {
	var (
		format      string
		configPath  string
		category    string
		orphans     bool
		significant bool
		threshold   int
	)

	cmd := &cobra.Command{
		Use:   "tags [files...]",
		Short: "Report tag usage across feature documents",
		Long: `Build a tag concordance from feature documents and report
frequency, co-occurrence, orphans, and significance.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(tagsParams{
				paths:       args,
				format:      format,
				configPath:  configPath,
				category:    category,
				orphans:     orphans,
				significant: significant,
				threshold:   threshold,
				stdout:      os.Stdout,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text, markdown, html, or json")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to .featlint.yaml (default: built-in defaults)")
	cmd.Flags().StringVar(&category, "category", "",
		"restrict to one category: priority, type, status, or other")
	cmd.Flags().BoolVar(&orphans, "orphans", false,
		"list only tags used exactly once")
	cmd.Flags().BoolVar(&significant, "significant", false,
		"list only tags in the configured top significance quantile")
	cmd.Flags().IntVar(&threshold, "threshold", -1,
		"list only tags used more than N times (-1 = full report)")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	var tags bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for featlint JSON output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of featlint analyze --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := report.Schema
			if tags {
				schema = report.TagSchema
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), schema)
			return err
		},
	}

	cmd.Flags().BoolVar(&tags, "tags", false,
		"print the schema for 'featlint tags --format=json' instead")

	return cmd
}
