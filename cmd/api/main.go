package main

import (
	"context"
	"log"

	"github.com/Tranquil888/ab-testing-app/adapters/postgres"
	"github.com/Tranquil888/ab-testing-app/adapters/rng"
	"github.com/Tranquil888/ab-testing-app/adapters/stats/montecarlo"
	"github.com/Tranquil888/ab-testing-app/adapters/stats/ztest"
	"github.com/Tranquil888/ab-testing-app/adapters/table"
	"github.com/Tranquil888/ab-testing-app/app"
	"github.com/Tranquil888/ab-testing-app/internal/config"
	"github.com/Tranquil888/ab-testing-app/internal/logging"
	"github.com/Tranquil888/ab-testing-app/ports"
	"github.com/Tranquil888/ab-testing-app/ui"
)

func main() {
	logger := logging.NewDefault()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	var reports ports.ReportRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(context.Background(), cfg.Database.URL)
		if err != nil {
			log.Fatalf("connect report store: %v", err)
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("prepare report store: %v", err)
		}
		reports = postgres.NewReportRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, reports will not be persisted")
	}

	testers := []ports.HypothesisTester{
		montecarlo.NewEngine(rng.New()),
		ztest.NewEngine(),
	}
	service := app.NewAnalysisService(testers, reports, logger)

	server := ui.NewServer(service, reports, table.NewReader(), logger)
	if err := server.ListenAndServe(cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
