// Package testkit generates synthetic experiment tables with controllable
// defects, used by tests and the demo mode of the CLI.
package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Tranquil888/ab-testing-app/domain/experiment"
)

// GeneratorConfig controls the synthetic experiment generator
type GeneratorConfig struct {
	Users          int       `json:"users"`
	ControlRate    float64   `json:"control_rate"`
	TreatmentRate  float64   `json:"treatment_rate"`
	MisalignedRows int       `json:"misaligned_rows"`
	DuplicateRows  int       `json:"duplicate_rows"`
	InvalidRows    int       `json:"invalid_rows"`
	StartDate      time.Time `json:"start_date"`
	Seed           int64     `json:"seed"`
}

// DefaultConfig returns a mid-sized experiment with a modest real lift
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Users:         2000,
		ControlRate:   0.10,
		TreatmentRate: 0.12,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:          42,
	}
}

// Generator produces raw experiment tables
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds a raw table: clean alternating control/treatment rows
// first, then the requested number of misaligned, duplicate and invalid
// rows appended at the end so tests can predict exactly what the cleaner
// removes.
func (g *Generator) Generate() *experiment.RawTable {
	table := &experiment.RawTable{
		Columns: []string{
			experiment.ColUserID, experiment.ColGroup,
			experiment.ColLandingPage, experiment.ColConverted, experiment.ColTimestamp,
		},
	}

	for i := 0; i < g.config.Users; i++ {
		group, page := experiment.GroupControl, experiment.PageOld
		rate := g.config.ControlRate
		if i%2 == 1 {
			group, page = experiment.GroupTreatment, experiment.PageNew
			rate = g.config.TreatmentRate
		}
		table.Rows = append(table.Rows, g.row(i, group, page, rate))
	}

	// Misaligned rows get fresh user ids so only the alignment check drops them
	for i := 0; i < g.config.MisalignedRows; i++ {
		row := g.row(g.config.Users+i, experiment.GroupTreatment, experiment.PageOld, g.config.TreatmentRate)
		table.Rows = append(table.Rows, row)
	}

	// Duplicates reuse the first user ids with a flipped outcome, so the
	// keep-first policy is observable
	for i := 0; i < g.config.DuplicateRows && i < g.config.Users; i++ {
		group, page := experiment.GroupControl, experiment.PageOld
		if i%2 == 1 {
			group, page = experiment.GroupTreatment, experiment.PageNew
		}
		row := g.row(i, group, page, 1.0)
		table.Rows = append(table.Rows, row)
	}

	for i := 0; i < g.config.InvalidRows; i++ {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("user_%07d", g.config.Users+g.config.MisalignedRows+i),
			"control", "old_page", "maybe", "",
		})
	}

	return table
}

func (g *Generator) row(userIdx int, group experiment.Group, page experiment.LandingPage, rate float64) []string {
	converted := "0"
	if g.rng.Float64() < rate {
		converted = "1"
	}
	ts := g.config.StartDate.Add(time.Duration(g.rng.Intn(21*24)) * time.Hour)
	return []string{
		fmt.Sprintf("user_%07d", userIdx),
		string(group),
		string(page),
		converted,
		ts.Format("2006-01-02 15:04:05"),
	}
}
