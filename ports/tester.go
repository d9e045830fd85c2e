package ports

import (
	"context"

	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
)

// TestOptions is the configuration surface a caller hands to a test engine
type TestOptions struct {
	// Alpha is the significance threshold, in (0,1). Zero means the default.
	Alpha float64 `json:"alpha,omitempty"`

	// Iterations is the Monte Carlo trial count. Zero means the default.
	// The z-test ignores it.
	Iterations int `json:"iterations,omitempty"`

	// Seed pins the Monte Carlo random stream. Nil means a process-level
	// seed is drawn and recorded in the result.
	Seed *int64 `json:"seed,omitempty"`
}

// HypothesisTester is the contract both test engines implement, letting the
// analysis service and the composer treat them uniformly.
type HypothesisTester interface {
	Kind() verdict.TestKind

	// Run evaluates H0: control rate >= treatment rate against the
	// one-sided alternative that the treatment arm converts better.
	Run(ctx context.Context, sums experiment.Summaries, opts TestOptions) (verdict.TestResult, error)
}
