package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/Tranquil888/ab-testing-app/domain/verdict"
)

// RenderReportMarkdown produces the text report for a composed analysis.
// The same markdown feeds the CLI output and the HTML view.
func RenderReportMarkdown(report *verdict.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# A/B Test Report %s\n\n", report.RunID)
	fmt.Fprintf(&b, "Generated %s\n\n", report.CreatedAt)

	b.WriteString("## Groups\n\n")
	b.WriteString("| Arm | Sample size | Conversions | Rate |\n")
	b.WriteString("| --- | ---: | ---: | ---: |\n")
	fmt.Fprintf(&b, "| control | %d | %d | %.4f |\n",
		report.Control.N, report.Control.Conversions, report.Control.Rate)
	fmt.Fprintf(&b, "| treatment | %d | %d | %.4f |\n\n",
		report.Treatment.N, report.Treatment.Conversions, report.Treatment.Rate)

	fmt.Fprintf(&b, "Observed difference (control − treatment): %+.4f\n\n", report.ObservedDifference)

	if report.Cleaning.RowsIn > 0 {
		fmt.Fprintf(&b, "Cleaning: %d rows in, %d misaligned, %d duplicates, %d invalid removed, %d rows analyzed.\n\n",
			report.Cleaning.RowsIn, report.Cleaning.MisalignedRemoved,
			report.Cleaning.DuplicatesRemoved, report.Cleaning.InvalidRemoved,
			report.Cleaning.RowsOut)
	}

	b.WriteString("## Tests\n\n")
	for _, res := range report.Results {
		switch res.Kind {
		case verdict.TestMonteCarlo:
			fmt.Fprintf(&b, "- **Monte Carlo simulation** (%d iterations, seed %d): p = %.4f, reject H0: %t\n",
				res.MonteCarlo.Iterations, res.MonteCarlo.Seed, res.PValue, res.RejectNull)
		case verdict.TestZTest:
			fmt.Fprintf(&b, "- **Two-proportion z-test**: z = %.4f, pooled rate = %.4f, p = %.4f, reject H0: %t\n",
				res.ZTest.ZScore, res.ZTest.PooledRate, res.PValue, res.RejectNull)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Verdict\n\n**%s** at alpha = %.2f.\n\n%s\n",
		report.Interpretation, report.Alpha, report.Recommendation)

	return b.String()
}

// RenderReportHTML renders the markdown report to a standalone HTML page
func RenderReportHTML(report *verdict.Report) []byte {
	md := RenderReportMarkdown(report)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "A/B Test Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}
