package ui

import (
	"testing"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"

	"github.com/stretchr/testify/assert"
)

func renderableReport() *verdict.Report {
	return &verdict.Report{
		RunID:              core.NewRunID(),
		Control:            experiment.NewGroupSummary(1000, 100),
		Treatment:          experiment.NewGroupSummary(1000, 130),
		ObservedDifference: -0.03,
		Alpha:              0.05,
		Results: []verdict.TestResult{
			{
				Kind: verdict.TestMonteCarlo, PValue: 0.0175, RejectNull: true,
				MonteCarlo: &verdict.MonteCarloResult{Iterations: 10000, Seed: 42},
			},
			{
				Kind: verdict.TestZTest, PValue: 0.0178, RejectNull: true,
				ZTest: &verdict.ZTestResult{ZScore: -2.1027, PooledRate: 0.115},
			},
		},
		Interpretation: verdict.Significant,
		Recommendation: "Adopt the new page.",
		CreatedAt:      core.Now(),
	}
}

func TestRenderReportMarkdown(t *testing.T) {
	md := RenderReportMarkdown(renderableReport())

	assert.Contains(t, md, "| control | 1000 | 100 | 0.1000 |")
	assert.Contains(t, md, "| treatment | 1000 | 130 | 0.1300 |")
	assert.Contains(t, md, "Monte Carlo simulation")
	assert.Contains(t, md, "seed 42")
	assert.Contains(t, md, "Two-proportion z-test")
	assert.Contains(t, md, "z = -2.1027")
	assert.Contains(t, md, "**significant** at alpha = 0.05")
	assert.Contains(t, md, "Adopt the new page.")
}

func TestRenderReportMarkdown_CleaningLineOnlyForRowLevelRuns(t *testing.T) {
	report := renderableReport()
	assert.NotContains(t, RenderReportMarkdown(report), "Cleaning:")

	report.Cleaning = experiment.CleaningSummary{RowsIn: 100, RowsOut: 90, DuplicatesRemoved: 10}
	assert.Contains(t, RenderReportMarkdown(report), "Cleaning: 100 rows in")
}

func TestRenderReportHTML(t *testing.T) {
	page := string(RenderReportHTML(renderableReport()))

	assert.Contains(t, page, "<html>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "z-test")
}
