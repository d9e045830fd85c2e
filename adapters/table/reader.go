// Package table loads delimited and spreadsheet files into raw tables for
// the analysis core, which never touches the filesystem itself.
package table

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/ports"
)

// columnAliases maps header spellings seen in exported trackers onto the
// canonical schema, so files with "variant" or "conversion" headers load
// without manual renaming.
var columnAliases = map[string]string{
	"id":         experiment.ColUserID,
	"userid":     experiment.ColUserID,
	"user":       experiment.ColUserID,
	"variant":    experiment.ColGroup,
	"arm":        experiment.ColGroup,
	"page":       experiment.ColLandingPage,
	"landing":    experiment.ColLandingPage,
	"conversion": experiment.ColConverted,
	"convert":    experiment.ColConverted,
	"ts":         experiment.ColTimestamp,
	"time":       experiment.ColTimestamp,
}

// Reader reads CSV and XLSX files into raw tables
type Reader struct{}

var _ ports.TableReader = (*Reader)(nil)

func NewReader() *Reader {
	return &Reader{}
}

// Read loads the file at path. The extension picks the format: .xlsx goes
// through excelize, everything else is treated as CSV. The first row is
// the header; header names are trimmed, lowercased and alias-normalized.
func (r *Reader) Read(ctx context.Context, path string) (*experiment.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readExcelRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s has no header row", path)
	}

	columns := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		columns[i] = normalizeHeader(header)
	}

	return &experiment.RawTable{Columns: columns, Rows: rows[1:]}, nil
}

// ReadCountries loads the optional user_id -> country side table. The file
// needs user_id and country columns; later rows win on duplicate ids.
func (r *Reader) ReadCountries(ctx context.Context, path string) (map[string]string, error) {
	table, err := r.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	userIdx := table.ColumnIndex(experiment.ColUserID)
	countryIdx := table.ColumnIndex("country")
	if userIdx < 0 || countryIdx < 0 {
		return nil, fmt.Errorf("country table %s needs user_id and country columns, got %v",
			path, table.Columns)
	}

	countries := make(map[string]string, len(table.Rows))
	for i := range table.Rows {
		userID := strings.TrimSpace(table.Cell(i, userIdx))
		if userID == "" {
			continue
		}
		countries[userID] = strings.TrimSpace(table.Cell(i, countryIdx))
	}
	return countries, nil
}

func normalizeHeader(header string) string {
	name := strings.ToLower(strings.TrimSpace(header))
	if canonical, ok := columnAliases[name]; ok {
		return canonical
	}
	return name
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, the validator flags them
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV file %s: %w", path, err)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
