package ports

import (
	"context"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
)

// ReportRepository persists composed analysis reports. Persistence is
// ancillary to the analysis itself: the CLI runs without any repository,
// and a save failure never invalidates a computed report.
type ReportRepository interface {
	Save(ctx context.Context, report *verdict.Report) error
	GetByID(ctx context.Context, id core.RunID) (*verdict.Report, error)
	ListRecent(ctx context.Context, limit int) ([]*verdict.Report, error)
}
