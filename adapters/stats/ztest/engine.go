// Package ztest implements the closed-form two-proportion z-test under the
// normal approximation.
package ztest

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
	"github.com/Tranquil888/ab-testing-app/ports"
)

// Engine computes the pooled two-proportion z-test. The standard error uses
// the pooled rate p̂: SE = sqrt(p̂(1-p̂)(1/n_control + 1/n_treatment)), and
// the one-sided p-value is the lower normal tail Φ(z), consistent with the
// Monte Carlo engine's alternative that the treatment page converts better.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Kind() verdict.TestKind {
	return verdict.TestZTest
}

// Run evaluates the z-test. A pooled rate of exactly 0 or 1 makes the
// standard error zero and the statistic undefined; that is reported as
// ErrDegenerateVariance, never as a NaN p-value.
func (e *Engine) Run(_ context.Context, sums experiment.Summaries, opts ports.TestOptions) (verdict.TestResult, error) {
	if sums.Control.N == 0 {
		return verdict.TestResult{}, core.NewEmptyGroupError(string(experiment.GroupControl))
	}
	if sums.Treatment.N == 0 {
		return verdict.TestResult{}, core.NewEmptyGroupError(string(experiment.GroupTreatment))
	}

	alpha := opts.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = verdict.DefaultAlpha
	}

	pooled := sums.PooledRate
	se := math.Sqrt(pooled * (1 - pooled) *
		(1/float64(sums.Control.N) + 1/float64(sums.Treatment.N)))
	if se == 0 {
		return verdict.TestResult{}, core.NewDegenerateVarianceError(pooled)
	}

	z := (sums.Control.Rate - sums.Treatment.Rate) / se
	pValue := distuv.UnitNormal.CDF(z)

	return verdict.TestResult{
		Kind:               verdict.TestZTest,
		PValue:             pValue,
		ObservedDifference: sums.ObservedDifference,
		Alpha:              alpha,
		RejectNull:         pValue < alpha,
		ZTest: &verdict.ZTestResult{
			ZScore:     z,
			PooledRate: pooled,
		},
	}, nil
}
