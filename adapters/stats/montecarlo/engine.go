// Package montecarlo implements the resampling hypothesis test: the null
// distribution of the rate difference is simulated by redrawing both arms
// from the pooled conversion rate.
package montecarlo

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
	"github.com/Tranquil888/ab-testing-app/ports"
)

const (
	// DefaultIterations is the trial count used when the caller supplies none
	DefaultIterations = 10000

	batchSize      = 500
	defaultWorkers = 4
)

// Engine runs the Monte Carlo simulation test.
//
// Null model (fixed, by design decision): each trial independently redraws
// each arm's conversion count as Binomial(n_arm, pooled rate) and takes the
// simulated control rate minus the simulated treatment rate. The one-sided
// p-value is the fraction of simulated differences less than or equal to
// the observed difference, consistent with the alternative that the
// treatment page converts better.
//
// Trials run in fixed-size batches across a bounded worker pool. Every
// batch owns a random stream derived from the base seed and its batch
// index and writes results by trial index, so the output is bit-identical
// for a given seed regardless of how many workers run.
type Engine struct {
	rng     ports.RNGPort
	workers int
}

func NewEngine(rngPort ports.RNGPort) *Engine {
	return &Engine{rng: rngPort, workers: defaultWorkers}
}

// SetWorkers bounds the worker pool. Values below 1 force serial execution.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

func (e *Engine) Kind() verdict.TestKind {
	return verdict.TestMonteCarlo
}

// Run simulates the null distribution and estimates the one-sided p-value.
// Cancellation is checked at every batch boundary; a cancelled run returns
// ErrCancelled and no partial result.
func (e *Engine) Run(ctx context.Context, sums experiment.Summaries, opts ports.TestOptions) (verdict.TestResult, error) {
	if sums.Control.N == 0 {
		return verdict.TestResult{}, core.NewEmptyGroupError(string(experiment.GroupControl))
	}
	if sums.Treatment.N == 0 {
		return verdict.TestResult{}, core.NewEmptyGroupError(string(experiment.GroupTreatment))
	}

	iterations := opts.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations < 0 {
		return verdict.TestResult{}, fmt.Errorf("%w: iterations %d", core.ErrInvalidTestOptions, opts.Iterations)
	}
	alpha := opts.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = verdict.DefaultAlpha
	}

	seed := e.rng.ProcessSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	observed := sums.ObservedDifference
	pooled := sums.PooledRate

	// Zero-variance pool: every simulated arm reproduces the pooled rate
	// exactly, so all simulated differences are zero and the p-value is
	// decided without drawing anything.
	if pooled == 0 || pooled == 1 {
		return e.degenerateResult(sums, iterations, seed, alpha), nil
	}

	diffs := make([]float64, iterations)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for start := 0; start < iterations; start += batchSize {
		start := start
		end := start + batchSize
		if end > iterations {
			end = iterations
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stream, err := e.rng.SeededStream(gctx, fmt.Sprintf("montecarlo-batch-%06d", start/batchSize), seed)
			if err != nil {
				return fmt.Errorf("derive random stream: %w", err)
			}
			for i := start; i < end; i++ {
				simControl := float64(binomial(stream, sums.Control.N, pooled)) / float64(sums.Control.N)
				simTreatment := float64(binomial(stream, sums.Treatment.N, pooled)) / float64(sums.Treatment.N)
				diffs[i] = simControl - simTreatment
			}
			completed.Add(int64(end - start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return verdict.TestResult{}, core.NewCancelledError(int(completed.Load()), iterations, ctx.Err())
		}
		return verdict.TestResult{}, err
	}

	atOrBelow := 0
	for _, diff := range diffs {
		if diff <= observed {
			atOrBelow++
		}
	}
	pValue := float64(atOrBelow) / float64(iterations)

	return verdict.TestResult{
		Kind:               verdict.TestMonteCarlo,
		PValue:             pValue,
		ObservedDifference: observed,
		Alpha:              alpha,
		RejectNull:         pValue < alpha,
		MonteCarlo: &verdict.MonteCarloResult{
			Iterations:           iterations,
			Seed:                 seed,
			SimulatedDifferences: diffs,
			NullDistribution:     verdict.NewNullDistributionSummary(diffs),
		},
	}, nil
}

// degenerateResult handles the pooled rate 0 or 1 edge without looping or
// dividing by zero: the simulated differences are all zero, so the p-value
// is exactly 1 when the observed difference is at or above zero and exactly
// 0 otherwise.
func (e *Engine) degenerateResult(sums experiment.Summaries, iterations int, seed int64, alpha float64) verdict.TestResult {
	diffs := make([]float64, iterations)
	pValue := 0.0
	if sums.ObservedDifference >= 0 {
		pValue = 1.0
	}
	return verdict.TestResult{
		Kind:               verdict.TestMonteCarlo,
		PValue:             pValue,
		ObservedDifference: sums.ObservedDifference,
		Alpha:              alpha,
		RejectNull:         pValue < alpha,
		MonteCarlo: &verdict.MonteCarloResult{
			Iterations:           iterations,
			Seed:                 seed,
			SimulatedDifferences: diffs,
			NullDistribution:     verdict.NewNullDistributionSummary(diffs),
		},
	}
}

// binomial draws Binomial(n, p) as a Bernoulli sum. n here is an arm's
// sample size, small enough that the linear draw stays cheap next to the
// surrounding trial loop.
func binomial(stream *rand.Rand, n int, p float64) int {
	successes := 0
	for i := 0; i < n; i++ {
		if stream.Float64() < p {
			successes++
		}
	}
	return successes
}
