// Package app orchestrates the analysis pipeline: validate, clean,
// summarize, run the selected hypothesis tests, compose the report.
package app

import (
	"context"
	"fmt"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
	"github.com/Tranquil888/ab-testing-app/internal/logging"
	"github.com/Tranquil888/ab-testing-app/ports"
)

// RunConfig is the configuration surface for one analysis run
type RunConfig struct {
	// Tests selects which engines run; empty means both
	Tests []verdict.TestKind `json:"tests,omitempty"`

	Alpha      float64 `json:"alpha,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Seed       *int64  `json:"seed,omitempty"`
}

func (c RunConfig) testKinds() []verdict.TestKind {
	if len(c.Tests) == 0 {
		return []verdict.TestKind{verdict.TestMonteCarlo, verdict.TestZTest}
	}
	return c.Tests
}

// AnalysisService wires the pure pipeline steps to the test engines and the
// optional report store. The service itself is stateless: every call takes
// its dataset explicitly and derived values are recomputed, never cached.
type AnalysisService struct {
	testers map[verdict.TestKind]ports.HypothesisTester
	reports ports.ReportRepository // nil when persistence is not configured
	log     *logging.Logger
}

func NewAnalysisService(testers []ports.HypothesisTester, reports ports.ReportRepository, log *logging.Logger) *AnalysisService {
	byKind := make(map[verdict.TestKind]ports.HypothesisTester, len(testers))
	for _, t := range testers {
		byKind[t.Kind()] = t
	}
	return &AnalysisService{testers: byKind, reports: reports, log: log}
}

// Analyze runs the full pipeline over a raw table. Structural problems
// (missing columns, nothing left after cleaning) abort before any
// statistic is computed. Per-engine failures are recoverable: a degenerate
// z-test does not stop the Monte Carlo result from being composed, and
// vice versa. Only when every selected engine fails is the first failure
// returned.
func (s *AnalysisService) Analyze(ctx context.Context, raw *experiment.RawTable, cfg RunConfig) (*verdict.Report, error) {
	outcome, err := experiment.Validate(raw)
	if err != nil {
		return nil, err
	}
	if !outcome.Valid {
		s.log.Warn("validation flagged %d rows for the cleaner", len(outcome.FlaggedRows))
	}

	ds, err := experiment.Clean(raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("cleaned dataset: %d in, %d misaligned, %d duplicates, %d invalid, %d out",
		ds.Summary.RowsIn, ds.Summary.MisalignedRemoved, ds.Summary.DuplicatesRemoved,
		ds.Summary.InvalidRemoved, ds.Summary.RowsOut)

	sums, err := experiment.Summarize(ds)
	if err != nil {
		return nil, err
	}

	report, err := s.runTests(ctx, sums, cfg)
	if err != nil {
		return nil, err
	}
	report.Cleaning = ds.Summary
	report.DatasetHash = ds.Fingerprint()

	s.persist(ctx, report)
	return report, nil
}

// AnalyzeCounts runs the test engines over pre-aggregated per-arm counts,
// skipping validation and cleaning. This is the path for callers that hold
// conversion totals rather than row-level data.
func (s *AnalysisService) AnalyzeCounts(ctx context.Context, nControl, convControl, nTreatment, convTreatment int, cfg RunConfig) (*verdict.Report, error) {
	sums, err := experiment.NewSummaries(nControl, convControl, nTreatment, convTreatment)
	if err != nil {
		return nil, err
	}
	report, err := s.runTests(ctx, sums, cfg)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, report)
	return report, nil
}

func (s *AnalysisService) runTests(ctx context.Context, sums experiment.Summaries, cfg RunConfig) (*verdict.Report, error) {
	opts := ports.TestOptions{
		Alpha:      cfg.Alpha,
		Iterations: cfg.Iterations,
		Seed:       cfg.Seed,
	}

	var results []verdict.TestResult
	var firstErr error
	for _, kind := range cfg.testKinds() {
		tester, ok := s.testers[kind]
		if !ok {
			return nil, fmt.Errorf("unknown test kind %q", kind)
		}

		res, err := tester.Run(ctx, sums, opts)
		if err != nil {
			if core.IsCancelled(err) || ctx.Err() != nil {
				return nil, err
			}
			if core.IsRecoverableTestError(err) {
				s.log.Warn("%s skipped: %v", kind, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			return nil, err
		}
		results = append(results, res)
	}

	if len(results) == 0 {
		return nil, firstErr
	}

	return verdict.Compose(sums, results, cfg.Alpha)
}

// persist saves the report when a repository is configured. A storage
// failure is logged and swallowed: the computed report is still valid.
func (s *AnalysisService) persist(ctx context.Context, report *verdict.Report) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Save(ctx, report); err != nil {
		s.log.Warn("report %s not persisted: %v", report.RunID, err)
	}
}
