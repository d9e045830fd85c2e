// Package experiment holds the core data model for two-arm A/B experiments
// and the pure validation, cleaning and summarization steps that prepare a
// raw table for hypothesis testing.
package experiment

import (
	"math"
	"time"
)

// Group identifies the experimental arm a user was assigned to
type Group string

const (
	GroupControl   Group = "control"
	GroupTreatment Group = "treatment"
)

// LandingPage identifies which page variant a user was served
type LandingPage string

const (
	PageOld LandingPage = "old_page"
	PageNew LandingPage = "new_page"
)

// Required columns of a raw experiment table
const (
	ColUserID      = "user_id"
	ColGroup       = "group"
	ColLandingPage = "landing_page"
	ColConverted   = "converted"
	ColTimestamp   = "timestamp"
)

// RequiredColumns lists the columns a raw table must carry before any
// processing is attempted
var RequiredColumns = []string{ColUserID, ColGroup, ColLandingPage, ColConverted}

// Record is one observation: a single user's assignment and outcome.
// Aligned means group and landing page agree: control users see the old
// page, treatment users the new one.
type Record struct {
	UserID      string      `json:"user_id"`
	Group       Group       `json:"group"`
	LandingPage LandingPage `json:"landing_page"`
	Converted   int         `json:"converted"`
	Timestamp   time.Time   `json:"timestamp,omitempty"`
	Country     string      `json:"country,omitempty"`
}

// Aligned reports whether the record satisfies the group/landing-page
// invariant
func (r Record) Aligned() bool {
	switch r.Group {
	case GroupControl:
		return r.LandingPage == PageOld
	case GroupTreatment:
		return r.LandingPage == PageNew
	}
	return false
}

// RawTable is an untrusted tabular dataset as produced by an external
// loader: named columns over rows of string cells
type RawTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of a named column, or -1 when absent
func (t *RawTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column index), tolerating ragged rows
func (t *RawTable) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// CleaningSummary records what the cleaner removed and why
type CleaningSummary struct {
	RowsIn            int `json:"rows_in"`
	InvalidRemoved    int `json:"invalid_removed"`
	MisalignedRemoved int `json:"misaligned_removed"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	RowsOut           int `json:"rows_out"`
}

// Dataset is a cleaned, deduplicated sequence of records plus provenance.
// It is produced by Clean and never mutated afterwards; the raw table the
// caller loaded stays untouched.
type Dataset struct {
	Records []Record        `json:"records"`
	Summary CleaningSummary `json:"summary"`
}

// GroupSummary holds the descriptive statistics for one arm
type GroupSummary struct {
	N           int     `json:"n"`
	Conversions int     `json:"conversions"`
	Rate        float64 `json:"rate"`
}

// NewGroupSummary derives the conversion rate; an empty arm yields NaN so
// the undefined rate can never be mistaken for zero
func NewGroupSummary(n, conversions int) GroupSummary {
	rate := math.NaN()
	if n > 0 {
		rate = float64(conversions) / float64(n)
	}
	return GroupSummary{N: n, Conversions: conversions, Rate: rate}
}

// Summaries pairs the two arms with the derived quantities both test
// engines consume
type Summaries struct {
	Control   GroupSummary `json:"control"`
	Treatment GroupSummary `json:"treatment"`

	// PooledRate is the conversion rate ignoring group assignment
	PooledRate float64 `json:"pooled_rate"`

	// ObservedDifference is control rate minus treatment rate; negative
	// when the new page converts better
	ObservedDifference float64 `json:"observed_difference"`
}
