package testkit

import (
	"testing"

	"github.com/Tranquil888/ab-testing-app/domain/experiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ShapeAndDefectCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Users = 100
	cfg.MisalignedRows = 7
	cfg.DuplicateRows = 4
	cfg.InvalidRows = 2

	table := NewGenerator(cfg).Generate()

	assert.Len(t, table.Rows, 113)
	assert.Equal(t, []string{
		experiment.ColUserID, experiment.ColGroup,
		experiment.ColLandingPage, experiment.ColConverted, experiment.ColTimestamp,
	}, table.Columns)

	ds, err := experiment.Clean(table)
	require.NoError(t, err)

	assert.Equal(t, 113, ds.Summary.RowsIn)
	assert.Equal(t, 7, ds.Summary.MisalignedRemoved)
	assert.Equal(t, 4, ds.Summary.DuplicatesRemoved)
	assert.Equal(t, 2, ds.Summary.InvalidRemoved)
	assert.Equal(t, 100, ds.Summary.RowsOut)
}

func TestGenerate_ArmsBalanced(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Users = 100

	ds, err := experiment.Clean(NewGenerator(cfg).Generate())
	require.NoError(t, err)

	sums, err := experiment.Summarize(ds)
	require.NoError(t, err)

	assert.Equal(t, 50, sums.Control.N)
	assert.Equal(t, 50, sums.Treatment.N)
}

func TestGenerate_SameSeedSameTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Users = 50

	a := NewGenerator(cfg).Generate()
	b := NewGenerator(cfg).Generate()

	assert.Equal(t, a.Rows, b.Rows)
}

func TestGenerate_RatesTrackConfiguration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Users = 4000
	cfg.ControlRate = 0.10
	cfg.TreatmentRate = 0.30

	ds, err := experiment.Clean(NewGenerator(cfg).Generate())
	require.NoError(t, err)
	sums, err := experiment.Summarize(ds)
	require.NoError(t, err)

	assert.InDelta(t, 0.10, sums.Control.Rate, 0.03)
	assert.InDelta(t, 0.30, sums.Treatment.Rate, 0.03)
}
