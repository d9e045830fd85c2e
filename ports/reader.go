package ports

import (
	"context"

	"github.com/Tranquil888/ab-testing-app/domain/experiment"
)

// TableReader is the loader contract. The core never performs file I/O;
// an adapter parses a delimited or spreadsheet file into a RawTable and
// hands it over.
type TableReader interface {
	Read(ctx context.Context, path string) (*experiment.RawTable, error)

	// ReadCountries loads the optional user_id -> country side table used
	// only for segmentation views, never by the hypothesis tests.
	ReadCountries(ctx context.Context, path string) (map[string]string, error)
}
