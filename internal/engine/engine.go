// Package engine orchestrates a full analysis run: it builds the tag
// concordance for a corpus, fans the per-feature analyzers out over a
// bounded worker pool, and folds the corpus-level passes back in.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/featlint/featlint/internal/antipattern"
	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/config"
	"github.com/featlint/featlint/internal/gherkin"
	"github.com/featlint/featlint/internal/quality"
	"github.com/featlint/featlint/internal/taxonomy"
)

var (
	// ErrTimeout reports that the configured analysis deadline expired
	// before every feature was processed. No partial warnings are
	// returned alongside it.
	ErrTimeout = errors.New("analysis timed out")

	// ErrAnalysis wraps any non-deadline failure of the run.
	ErrAnalysis = errors.New("analysis failed")
)

// errWorker marks a recovered panic inside a pool worker. dispatch sees
// it and retries the unprocessed features sequentially instead of
// failing the whole run.
var errWorker = errors.New("analysis worker failed")

// Result bundles everything one run produces. Warnings are fully
// sorted; Concordance stays available for tag reporting.
type Result struct {
	Warnings    []taxonomy.Warning
	Concordance *concordance.Concordance
	Malformed   []concordance.Malformed
}

// Run validates cfg, analyzes every feature, and returns the combined,
// sorted warnings. Features are processed in parallel once the corpus
// exceeds the configured threshold, unless sequential execution is
// forced.
func Run(ctx context.Context, features []gherkin.Feature, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Analysis.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Analysis.Timeout))
		defer cancel()
	}

	conc, malformed := concordance.Build(features, cfg.Categories())

	qopts := quality.Options{Config: cfg}
	aopts := antipattern.Options{Config: cfg}

	perFeature := make([][]taxonomy.Warning, len(features))
	done := make([]bool, len(features))
	analyze := func(i int) {
		f := features[i]
		warnings := quality.AnalyzeFeature(f, conc, qopts)
		warnings = append(warnings, antipattern.AnalyzeFeature(f, aopts)...)
		perFeature[i] = warnings
		done[i] = true
	}

	if err := dispatch(ctx, cfg, len(features), done, analyze); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, time.Duration(cfg.Analysis.Timeout))
		}
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	var warnings []taxonomy.Warning
	for _, w := range perFeature {
		warnings = append(warnings, w...)
	}
	warnings = append(warnings, quality.MalformedWarnings(malformed, qopts)...)
	warnings = append(warnings, quality.CorpusWarnings(conc, qopts)...)
	taxonomy.Sort(warnings)

	return &Result{Warnings: warnings, Concordance: conc, Malformed: malformed}, nil
}

func parallel(cfg config.Config, n int) bool {
	return !cfg.Analysis.Sequential && n > cfg.Analysis.ParallelThreshold
}

// dispatch runs analyze for every index not yet marked done. When a
// pool worker fails, the unprocessed features are retried on the
// sequential path; deadline and cancellation errors surface as-is.
func dispatch(ctx context.Context, cfg config.Config, n int, done []bool, analyze func(int)) error {
	if parallel(cfg, n) {
		err := runParallel(ctx, n, cfg.Analysis.Workers, done, analyze)
		if err == nil || !errors.Is(err, errWorker) {
			return err
		}
	}
	return runSequential(ctx, n, done, analyze)
}

// runParallel fans analyze out over an errgroup. Each slot writes only
// its own index of the result slice, so no locking is needed. A panic
// in a worker is recovered and reported as errWorker.
func runParallel(ctx context.Context, n, workers int, done []bool, analyze func(int)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: feature %d: %v", errWorker, i, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			if !done[i] {
				analyze(i)
			}
			return nil
		})
	}
	return g.Wait()
}

// runSequential processes the remaining indices in order. A feature
// that still panics here is skipped so one bad input cannot sink the
// rest of the corpus.
func runSequential(ctx context.Context, n int, done []bool, analyze func(int)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if done[i] {
			continue
		}
		func() {
			defer func() {
				recover()
			}()
			analyze(i)
		}()
	}
	return nil
}
