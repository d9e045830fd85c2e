package verdict

import (
	"fmt"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
)

// Compose merges the per-arm summaries and one or more test results into a
// single report. The interpretation is "significant" only when every
// supplied result rejects the null at the given alpha; results are never
// collapsed into a lone boolean, so callers can show the two methods
// disagreeing near the boundary. Returns ErrNoTestResults when no result
// is supplied.
func Compose(sums experiment.Summaries, results []TestResult, alpha float64) (*Report, error) {
	if len(results) == 0 {
		return nil, core.ErrNoTestResults
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}

	interpretation := Significant
	for _, res := range results {
		if res.PValue >= alpha {
			interpretation = NotSignificant
			break
		}
	}

	return &Report{
		RunID:              core.NewRunID(),
		Control:            sums.Control,
		Treatment:          sums.Treatment,
		ObservedDifference: sums.ObservedDifference,
		Alpha:              alpha,
		Results:            results,
		Interpretation:     interpretation,
		Recommendation:     recommend(sums, results, interpretation),
		CreatedAt:          core.Now(),
	}, nil
}

// recommend produces the report's one-line guidance. Significance with the
// treatment arm ahead suggests adopting the new page; significance the
// other way or none at all keeps the old page, with a small-sample caveat
// when both arms are thin.
func recommend(sums experiment.Summaries, results []TestResult, tier Interpretation) string {
	const smallSample = 100

	if tier == Significant {
		if sums.ObservedDifference < 0 {
			return fmt.Sprintf("Adopt the new page: treatment converts at %.2f%% vs %.2f%% for control, and every test agrees the lift is real.",
				sums.Treatment.Rate*100, sums.Control.Rate*100)
		}
		return fmt.Sprintf("Keep the old page: control converts at %.2f%% vs %.2f%% for treatment, and every test agrees the gap is real.",
			sums.Control.Rate*100, sums.Treatment.Rate*100)
	}

	if disagreement(results) {
		return "The tests disagree at this threshold; inspect both p-values before deciding."
	}
	if sums.Control.N < smallSample || sums.Treatment.N < smallSample {
		return "No significant difference detected; the sample is small, collect more data before deciding."
	}
	return "No significant difference detected; keep the old page."
}

func disagreement(results []TestResult) bool {
	if len(results) < 2 {
		return false
	}
	first := results[0].RejectNull
	for _, res := range results[1:] {
		if res.RejectNull != first {
			return true
		}
	}
	return false
}
