// Package verdict defines the outcome types of hypothesis testing and the
// composer that merges descriptive statistics with one or more test results
// into a single report.
package verdict

import (
	"github.com/montanaflynn/stats"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
)

// TestKind tags which engine produced a TestResult
type TestKind string

const (
	TestMonteCarlo TestKind = "monte_carlo"
	TestZTest      TestKind = "z_test"
)

// DefaultAlpha is the significance threshold used when the caller supplies none
const DefaultAlpha = 0.05

// TestResult is the tagged union over the two test engines. Exactly one of
// MonteCarlo and ZTest is set, matching Kind.
type TestResult struct {
	Kind TestKind `json:"kind"`

	// PValue is the one-sided probability under the null hypothesis
	// H0: control rate >= treatment rate
	PValue float64 `json:"p_value"`

	// ObservedDifference is control rate minus treatment rate
	ObservedDifference float64 `json:"observed_difference"`

	Alpha      float64 `json:"alpha"`
	RejectNull bool    `json:"reject_null"`

	MonteCarlo *MonteCarloResult `json:"monte_carlo,omitempty"`
	ZTest      *ZTestResult      `json:"z_test,omitempty"`
}

// MonteCarloResult carries the resampling-specific fields
type MonteCarloResult struct {
	Iterations int   `json:"iterations"`
	Seed       int64 `json:"seed"`

	// SimulatedDifferences is the full null distribution, one simulated
	// rate difference per trial, kept for downstream visualization
	SimulatedDifferences []float64 `json:"simulated_differences"`

	NullDistribution NullDistributionSummary `json:"null_distribution"`
}

// ZTestResult carries the closed-form test's fields
type ZTestResult struct {
	ZScore     float64 `json:"z_score"`
	PooledRate float64 `json:"pooled_rate"`
}

// NullDistributionSummary describes the simulated null distribution so a
// chart layer can draw it without holding every sample
type NullDistributionSummary struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
	Percentile99 float64 `json:"percentile_99"`
}

// NewNullDistributionSummary summarizes a simulated null distribution.
// An empty or constant input yields zeros rather than NaNs.
func NewNullDistributionSummary(diffs []float64) NullDistributionSummary {
	if len(diffs) == 0 {
		return NullDistributionSummary{}
	}
	mean, _ := stats.Mean(diffs)
	min, _ := stats.Min(diffs)
	max, _ := stats.Max(diffs)
	p95, _ := stats.Percentile(diffs, 95)
	p99, _ := stats.Percentile(diffs, 99)
	sd := 0.0
	if len(diffs) > 1 {
		sd, _ = stats.StandardDeviationSample(diffs)
	}
	return NullDistributionSummary{
		Mean:         mean,
		StdDev:       sd,
		Min:          min,
		Max:          max,
		Percentile95: p95,
		Percentile99: p99,
	}
}

// Interpretation is the report's human-readable significance tier
type Interpretation string

const (
	Significant    Interpretation = "significant"
	NotSignificant Interpretation = "not significant"
)

// Report is the composed output of one analysis run: descriptive statistics
// plus every test outcome, with the raw numbers for each test preserved so
// the caller can render agreement or disagreement between methods.
type Report struct {
	RunID core.RunID `json:"run_id"`

	Control   experiment.GroupSummary    `json:"control"`
	Treatment experiment.GroupSummary    `json:"treatment"`
	Cleaning  experiment.CleaningSummary `json:"cleaning,omitempty"`

	// DatasetHash fingerprints the cleaned dataset the run was computed
	// from; empty for count-level runs that never saw row data
	DatasetHash core.DatasetHash `json:"dataset_hash,omitempty"`

	ObservedDifference float64 `json:"observed_difference"`
	Alpha              float64 `json:"alpha"`

	Results []TestResult `json:"results"`

	Interpretation Interpretation `json:"interpretation"`
	Recommendation string         `json:"recommendation"`

	CreatedAt core.Timestamp `json:"created_at"`
}
