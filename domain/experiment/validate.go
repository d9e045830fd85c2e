package experiment

import (
	"strings"
	"time"

	"github.com/Tranquil888/ab-testing-app/domain/core"
)

// ValidationOutcome reports what a raw table looks like before cleaning.
// Flagged rows are recorded, not dropped; dropping is the cleaner's job.
type ValidationOutcome struct {
	Valid          bool     `json:"valid"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	FlaggedRows    []int    `json:"flagged_rows,omitempty"`
}

// Validate checks a raw table for the required columns and value domains.
// A missing required column is fatal and returns ErrMissingColumns naming
// every absent column; no row is inspected in that case. Rows with an
// unknown group, unknown landing page, or a converted value that is not
// coercible to 0/1 are flagged by index. Pure function, no side effects.
func Validate(table *RawTable) (ValidationOutcome, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if table.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return ValidationOutcome{Valid: false, MissingColumns: missing},
			core.NewMissingColumnsError(missing)
	}

	groupIdx := table.ColumnIndex(ColGroup)
	pageIdx := table.ColumnIndex(ColLandingPage)
	convIdx := table.ColumnIndex(ColConverted)

	var flagged []int
	for i := range table.Rows {
		if !validGroup(table.Cell(i, groupIdx)) ||
			!validLandingPage(table.Cell(i, pageIdx)) ||
			!validConverted(table.Cell(i, convIdx)) {
			flagged = append(flagged, i)
		}
	}

	return ValidationOutcome{Valid: len(flagged) == 0, FlaggedRows: flagged}, nil
}

func validGroup(raw string) bool {
	switch Group(strings.TrimSpace(raw)) {
	case GroupControl, GroupTreatment:
		return true
	}
	return false
}

func validLandingPage(raw string) bool {
	switch LandingPage(strings.TrimSpace(raw)) {
	case PageOld, PageNew:
		return true
	}
	return false
}

func validConverted(raw string) bool {
	_, ok := parseConverted(raw)
	return ok
}

// parseConverted coerces a cell to a 0/1 conversion outcome. Accepts the
// literal digits plus boolean spellings seen in exported trackers.
func parseConverted(raw string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false":
		return 0, true
	case "1", "true":
		return 1, true
	}
	return 0, false
}

// parseRecord builds a Record from one raw row. The second return value is
// false when any required cell fails its domain check. Timestamps are
// optional and parsed best-effort.
func parseRecord(table *RawTable, row int) (Record, bool) {
	rec := Record{
		UserID:      strings.TrimSpace(table.Cell(row, table.ColumnIndex(ColUserID))),
		Group:       Group(strings.TrimSpace(table.Cell(row, table.ColumnIndex(ColGroup)))),
		LandingPage: LandingPage(strings.TrimSpace(table.Cell(row, table.ColumnIndex(ColLandingPage)))),
	}
	if rec.UserID == "" {
		return rec, false
	}
	if !validGroup(string(rec.Group)) || !validLandingPage(string(rec.LandingPage)) {
		return rec, false
	}

	conv, ok := parseConverted(table.Cell(row, table.ColumnIndex(ColConverted)))
	if !ok {
		return rec, false
	}
	rec.Converted = conv

	if tsIdx := table.ColumnIndex(ColTimestamp); tsIdx >= 0 {
		rec.Timestamp = parseTimestamp(table.Cell(row, tsIdx))
	}

	return rec, true
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
