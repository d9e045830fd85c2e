package experiment

import (
	"strconv"
	"strings"

	"github.com/Tranquil888/ab-testing-app/domain/core"
)

// Clean turns a raw table into a Dataset fit for analysis. Three removal
// passes run in a fixed order, and the summary counts each pass separately:
//
//  1. rows whose cells fail their domain checks (unparseable converted
//     value, unknown group or landing page, blank user id),
//  2. misaligned rows, where group and landing page disagree (treatment on
//     old_page or control on new_page),
//  3. duplicate user ids, keeping the first occurrence in original row
//     order. The tie-break matters: keeping a different representative
//     changes every downstream statistic, so it is fixed and tested.
//
// The input table is never mutated. Identical input always yields an
// identical dataset and summary. Returns ErrEmptyDataset when nothing
// survives.
func Clean(table *RawTable) (*Dataset, error) {
	summary := CleaningSummary{RowsIn: len(table.Rows)}

	parsed := make([]Record, 0, len(table.Rows))
	for i := range table.Rows {
		rec, ok := parseRecord(table, i)
		if !ok {
			summary.InvalidRemoved++
			continue
		}
		parsed = append(parsed, rec)
	}

	aligned := parsed[:0]
	for _, rec := range parsed {
		if !rec.Aligned() {
			summary.MisalignedRemoved++
			continue
		}
		aligned = append(aligned, rec)
	}

	seen := make(map[string]struct{}, len(aligned))
	records := make([]Record, 0, len(aligned))
	for _, rec := range aligned {
		if _, dup := seen[rec.UserID]; dup {
			summary.DuplicatesRemoved++
			continue
		}
		seen[rec.UserID] = struct{}{}
		records = append(records, rec)
	}

	summary.RowsOut = len(records)
	if summary.RowsOut == 0 {
		return nil, core.NewEmptyDatasetError(summary.RowsIn,
			summary.MisalignedRemoved, summary.DuplicatesRemoved, summary.InvalidRemoved)
	}

	return &Dataset{Records: records, Summary: summary}, nil
}

// Fingerprint hashes the cleaned records in order, so a stored report can
// be matched to the exact dataset it was computed from. Cleaning is
// deterministic, so equal raw inputs always fingerprint equally.
func (d *Dataset) Fingerprint() core.DatasetHash {
	var b strings.Builder
	for _, rec := range d.Records {
		b.WriteString(rec.UserID)
		b.WriteByte('|')
		b.WriteString(string(rec.Group))
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(rec.Converted))
		b.WriteByte('\n')
	}
	return core.NewDatasetHash([]byte(b.String()))
}

// Table renders the dataset back into raw-table form, letting Clean be
// re-applied to its own output (cleaning is idempotent) and letting
// exporters treat cleaned data like any other table.
func (d *Dataset) Table() *RawTable {
	table := &RawTable{
		Columns: []string{ColUserID, ColGroup, ColLandingPage, ColConverted, ColTimestamp},
		Rows:    make([][]string, 0, len(d.Records)),
	}
	for _, rec := range d.Records {
		ts := ""
		if !rec.Timestamp.IsZero() {
			ts = rec.Timestamp.Format("2006-01-02 15:04:05")
		}
		conv := "0"
		if rec.Converted == 1 {
			conv = "1"
		}
		table.Rows = append(table.Rows, []string{
			rec.UserID, string(rec.Group), string(rec.LandingPage), conv, ts,
		})
	}
	return table
}
