package ztest

import (
	"context"
	"errors"
	"testing"

	"github.com/Tranquil888/ab-testing-app/domain/core"
	"github.com/Tranquil888/ab-testing-app/domain/experiment"
	"github.com/Tranquil888/ab-testing-app/domain/verdict"
	"github.com/Tranquil888/ab-testing-app/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summariesFromCounts(t *testing.T, nC, convC, nT, convT int) experiment.Summaries {
	t.Helper()
	sums, err := experiment.NewSummaries(nC, convC, nT, convT)
	require.NoError(t, err)
	return sums
}

func TestRun_ClearTreatmentLiftIsSignificant(t *testing.T) {
	// 10% vs 13% at n=1000 per arm: z is about -2.10, lower tail about 0.018.
	sums := summariesFromCounts(t, 1000, 100, 1000, 130)

	res, err := NewEngine().Run(context.Background(), sums, ports.TestOptions{Alpha: 0.05})
	require.NoError(t, err)

	assert.Equal(t, verdict.TestZTest, res.Kind)
	require.NotNil(t, res.ZTest)
	assert.InDelta(t, -2.103, res.ZTest.ZScore, 0.01)
	assert.InDelta(t, 0.0178, res.PValue, 0.001)
	assert.InDelta(t, 0.115, res.ZTest.PooledRate, 1e-12)
	assert.True(t, res.RejectNull)
}

func TestRun_SmallSampleIsNotSignificant(t *testing.T) {
	// 10% vs 12% at n=50 per arm is far from significance.
	sums := summariesFromCounts(t, 50, 5, 50, 6)

	res, err := NewEngine().Run(context.Background(), sums, ports.TestOptions{Alpha: 0.05})
	require.NoError(t, err)

	assert.InDelta(t, -0.320, res.ZTest.ZScore, 0.01)
	assert.InDelta(t, 0.375, res.PValue, 0.005)
	assert.False(t, res.RejectNull)
}

func TestRun_ControlAheadGivesUpperTailPValue(t *testing.T) {
	sums := summariesFromCounts(t, 1000, 130, 1000, 100)

	res, err := NewEngine().Run(context.Background(), sums, ports.TestOptions{})
	require.NoError(t, err)

	assert.InDelta(t, 2.103, res.ZTest.ZScore, 0.01)
	assert.InDelta(t, 0.982, res.PValue, 0.001)
	assert.False(t, res.RejectNull)
}

func TestRun_DegenerateVariance(t *testing.T) {
	tests := []struct {
		name         string
		convC, convT int
	}{
		{"nobody converts", 0, 0},
		{"everybody converts", 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sums := summariesFromCounts(t, 50, tt.convC, 50, tt.convT)

			_, err := NewEngine().Run(context.Background(), sums, ports.TestOptions{})

			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrDegenerateVariance))
			assert.True(t, core.IsRecoverableTestError(err))
		})
	}
}

func TestRun_EmptyArm(t *testing.T) {
	_, err := NewEngine().Run(context.Background(), experiment.Summaries{
		Treatment: experiment.NewGroupSummary(100, 10),
	}, ports.TestOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEmptyGroup))
}

func TestRun_DefaultAlphaApplied(t *testing.T) {
	sums := summariesFromCounts(t, 1000, 100, 1000, 130)

	res, err := NewEngine().Run(context.Background(), sums, ports.TestOptions{})
	require.NoError(t, err)

	assert.Equal(t, verdict.DefaultAlpha, res.Alpha)
}
