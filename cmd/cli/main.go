// Command cli analyzes an experiment file from the terminal: load, clean,
// test, and print the report as markdown, optionally exporting CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Tranquil888/ab-testing-app/adapters/export"
	"github.com/Tranquil888/ab-testing-app/adapters/rng"
	"github.com/Tranquil888/ab-testing-app/adapters/stats/montecarlo"
	"github.com/Tranquil888/ab-testing-app/adapters/stats/ztest"
	"github.com/Tranquil888/ab-testing-app/adapters/table"
	"github.com/Tranquil888/ab-testing-app/app"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
	"github.com/Tranquil888/ab-testing-app/internal/logging"
	"github.com/Tranquil888/ab-testing-app/internal/testkit"
	"github.com/Tranquil888/ab-testing-app/ports"
	"github.com/Tranquil888/ab-testing-app/ui"
)

func main() {
	var (
		file        = flag.String("file", "", "experiment file (.csv or .xlsx); empty runs a synthetic demo dataset")
		countryFile = flag.String("countries", "", "optional user_id -> country side table for the segmentation view")
		iterations  = flag.Int("iterations", 0, "Monte Carlo iterations (default 10000)")
		seed        = flag.Int64("seed", -1, "random seed; negative draws a process seed")
		alpha       = flag.Float64("alpha", 0, "significance threshold (default 0.05)")
		tests       = flag.String("tests", "", "comma-separated subset of {monte_carlo,z_test}; empty runs both")
		exportPath  = flag.String("export", "", "write the report as CSV to this path")
	)
	flag.Parse()

	logger := logging.NewDefault()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := table.NewReader()
	var raw *experiment.RawTable
	if *file == "" {
		logger.Info("no file supplied, generating a synthetic demo experiment")
		raw = testkit.NewGenerator(testkit.DefaultConfig()).Generate()
	} else {
		var err error
		raw, err = reader.Read(ctx, *file)
		if err != nil {
			log.Fatalf("load %s: %v", *file, err)
		}
	}

	cfg := app.RunConfig{Iterations: *iterations, Alpha: *alpha}
	if *seed >= 0 {
		cfg.Seed = seed
	}
	for _, name := range strings.Split(*tests, ",") {
		switch strings.TrimSpace(name) {
		case "":
		case string(verdict.TestMonteCarlo):
			cfg.Tests = append(cfg.Tests, verdict.TestMonteCarlo)
		case string(verdict.TestZTest):
			cfg.Tests = append(cfg.Tests, verdict.TestZTest)
		default:
			log.Fatalf("unknown test %q", name)
		}
	}

	testers := []ports.HypothesisTester{
		montecarlo.NewEngine(rng.New()),
		ztest.NewEngine(),
	}
	service := app.NewAnalysisService(testers, nil, logger)

	report, err := service.Analyze(ctx, raw, cfg)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	fmt.Print(ui.RenderReportMarkdown(report))

	if *countryFile != "" {
		printCountryBreakdown(ctx, reader, raw, *countryFile)
	}

	if *exportPath != "" {
		out, err := os.Create(*exportPath)
		if err != nil {
			log.Fatalf("create %s: %v", *exportPath, err)
		}
		defer out.Close()
		if err := export.WriteReportCSV(out, report); err != nil {
			log.Fatalf("export report: %v", err)
		}
		logger.Info("report exported to %s", *exportPath)
	}
}

func printCountryBreakdown(ctx context.Context, reader ports.TableReader, raw *experiment.RawTable, path string) {
	countries, err := reader.ReadCountries(ctx, path)
	if err != nil {
		log.Fatalf("load countries: %v", err)
	}
	ds, err := experiment.Clean(raw)
	if err != nil {
		log.Fatalf("clean dataset: %v", err)
	}

	fmt.Println("\n## By country")
	for _, cs := range experiment.SummarizeByCountry(experiment.MergeCountries(ds, countries)) {
		name := cs.Country
		if name == "" {
			name = "(unknown)"
		}
		fmt.Printf("- %s: control %d/%d (%.4f), treatment %d/%d (%.4f)\n",
			name,
			cs.Control.Conversions, cs.Control.N, cs.Control.Rate,
			cs.Treatment.Conversions, cs.Treatment.N, cs.Treatment.Rate)
	}
}
