// Package export serializes composed reports to delimited files for the
// spreadsheet-bound consumers of an analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Tranquil888/ab-testing-app/domain/verdict"
)

// WriteReportCSV writes one row per arm followed by one row per test
// result. The section column keeps the two shapes distinguishable when the
// file is re-read.
func WriteReportCSV(w io.Writer, report *verdict.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"section", "name", "n", "conversions", "rate", "p_value", "z_score", "reject_null"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	armRows := [][]string{
		{"summary", "control",
			strconv.Itoa(report.Control.N), strconv.Itoa(report.Control.Conversions),
			formatFloat(report.Control.Rate), "", "", ""},
		{"summary", "treatment",
			strconv.Itoa(report.Treatment.N), strconv.Itoa(report.Treatment.Conversions),
			formatFloat(report.Treatment.Rate), "", "", ""},
	}
	for _, row := range armRows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	for _, res := range report.Results {
		z := ""
		if res.ZTest != nil {
			z = formatFloat(res.ZTest.ZScore)
		}
		row := []string{"test", string(res.Kind), "", "", "",
			formatFloat(res.PValue), z, strconv.FormatBool(res.RejectNull)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write test row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSimulatedDifferencesCSV dumps a Monte Carlo null distribution, one
// simulated difference per line, for external charting.
func WriteSimulatedDifferencesCSV(w io.Writer, mc *verdict.MonteCarloResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trial", "simulated_difference"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, diff := range mc.SimulatedDifferences {
		if err := cw.Write([]string{strconv.Itoa(i), formatFloat(diff)}); err != nil {
			return fmt.Errorf("write trial %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
