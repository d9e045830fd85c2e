package experiment

import (
	"errors"
	"math"
	"testing"

	"github.com/Tranquil888/ab-testing-app/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_PartitionsByArm(t *testing.T) {
	ds, err := Clean(sampleTable(
		[]string{"u1", "control", "old_page", "1", ""},
		[]string{"u2", "control", "old_page", "0", ""},
		[]string{"u3", "control", "old_page", "0", ""},
		[]string{"u4", "treatment", "new_page", "1", ""},
		[]string{"u5", "treatment", "new_page", "1", ""},
	))
	require.NoError(t, err)

	sums, err := Summarize(ds)
	require.NoError(t, err)

	assert.Equal(t, 3, sums.Control.N)
	assert.Equal(t, 1, sums.Control.Conversions)
	assert.InDelta(t, 1.0/3.0, sums.Control.Rate, 1e-12)

	assert.Equal(t, 2, sums.Treatment.N)
	assert.Equal(t, 2, sums.Treatment.Conversions)
	assert.InDelta(t, 1.0, sums.Treatment.Rate, 1e-12)

	assert.InDelta(t, 3.0/5.0, sums.PooledRate, 1e-12)
	assert.InDelta(t, 1.0/3.0-1.0, sums.ObservedDifference, 1e-12)

	assert.Equal(t, ds.Summary.RowsOut, sums.Control.N+sums.Treatment.N)
}

func TestNewSummaries_EmptyArmNamesTheArm(t *testing.T) {
	_, err := NewSummaries(0, 0, 100, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEmptyGroup))
	assert.Contains(t, err.Error(), "control")

	_, err = NewSummaries(100, 10, 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEmptyGroup))
	assert.Contains(t, err.Error(), "treatment")
}

func TestNewSummaries_ObservedDifferenceSign(t *testing.T) {
	// Treatment converting better must surface as a negative difference.
	sums, err := NewSummaries(1000, 100, 1000, 130)
	require.NoError(t, err)

	assert.InDelta(t, -0.03, sums.ObservedDifference, 1e-12)
	assert.InDelta(t, 0.115, sums.PooledRate, 1e-12)
}

func TestNewGroupSummary_EmptyArmRateIsNaN(t *testing.T) {
	gs := NewGroupSummary(0, 0)
	assert.True(t, math.IsNaN(gs.Rate))

	gs = NewGroupSummary(10, 0)
	assert.Equal(t, 0.0, gs.Rate)
}
