package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
	"github.com/Tranquil888/ab-testing-app/ports"
)

// ReportRepositoryImpl implements ports.ReportRepository for PostgreSQL.
// Test results are stored as JSONB since their shape varies by kind; the
// scalar columns exist so run history can be listed without unmarshaling.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// Connect opens a database handle and verifies the connection
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the reports table when it does not exist yet
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_reports (
			id UUID PRIMARY KEY,
			control_n INT NOT NULL,
			control_conversions INT NOT NULL,
			treatment_n INT NOT NULL,
			treatment_conversions INT NOT NULL,
			observed_difference DOUBLE PRECISION NOT NULL,
			alpha DOUBLE PRECISION NOT NULL,
			interpretation TEXT NOT NULL,
			recommendation TEXT NOT NULL,
			results JSONB NOT NULL,
			cleaning JSONB NOT NULL,
			dataset_hash TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure analysis_reports schema: %w", err)
	}
	return nil
}

func (r *ReportRepositoryImpl) Save(ctx context.Context, report *verdict.Report) error {
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("marshal test results: %w", err)
	}
	cleaningJSON, err := json.Marshal(report.Cleaning)
	if err != nil {
		return fmt.Errorf("marshal cleaning summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analysis_reports (
			id, control_n, control_conversions, treatment_n, treatment_conversions,
			observed_difference, alpha, interpretation, recommendation,
			results, cleaning, dataset_hash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING`,
		report.RunID.String(),
		report.Control.N, report.Control.Conversions,
		report.Treatment.N, report.Treatment.Conversions,
		report.ObservedDifference, report.Alpha,
		string(report.Interpretation), report.Recommendation,
		resultsJSON, cleaningJSON, report.DatasetHash.String(), report.CreatedAt.Time())
	if err != nil {
		return fmt.Errorf("save report %s: %w", report.RunID, err)
	}
	return nil
}

type reportRow struct {
	ID                   string    `db:"id"`
	ControlN             int       `db:"control_n"`
	ControlConversions   int       `db:"control_conversions"`
	TreatmentN           int       `db:"treatment_n"`
	TreatmentConversions int       `db:"treatment_conversions"`
	ObservedDifference   float64   `db:"observed_difference"`
	Alpha                float64   `db:"alpha"`
	Interpretation       string    `db:"interpretation"`
	Recommendation       string    `db:"recommendation"`
	Results              []byte    `db:"results"`
	Cleaning             []byte    `db:"cleaning"`
	DatasetHash          string    `db:"dataset_hash"`
	CreatedAt            time.Time `db:"created_at"`
}

func (r *ReportRepositoryImpl) GetByID(ctx context.Context, id core.RunID) (*verdict.Report, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, control_n, control_conversions, treatment_n, treatment_conversions,
		       observed_difference, alpha, interpretation, recommendation,
		       results, cleaning, dataset_hash, created_at
		FROM analysis_reports WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return row.toReport()
}

func (r *ReportRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*verdict.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, control_n, control_conversions, treatment_n, treatment_conversions,
		       observed_difference, alpha, interpretation, recommendation,
		       results, cleaning, dataset_hash, created_at
		FROM analysis_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]*verdict.Report, 0, len(rows))
	for _, row := range rows {
		report, err := row.toReport()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (row reportRow) toReport() (*verdict.Report, error) {
	report := &verdict.Report{
		RunID:              core.RunID(row.ID),
		ObservedDifference: row.ObservedDifference,
		Alpha:              row.Alpha,
		Interpretation:     verdict.Interpretation(row.Interpretation),
		DatasetHash:        core.DatasetHash(row.DatasetHash),
		Recommendation:     row.Recommendation,
		CreatedAt:          core.NewTimestamp(row.CreatedAt),
	}
	report.Control = experiment.NewGroupSummary(row.ControlN, row.ControlConversions)
	report.Treatment = experiment.NewGroupSummary(row.TreatmentN, row.TreatmentConversions)

	if err := json.Unmarshal(row.Results, &report.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results for report %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Cleaning, &report.Cleaning); err != nil {
		return nil, fmt.Errorf("unmarshal cleaning summary for report %s: %w", row.ID, err)
	}
	return report, nil
}
