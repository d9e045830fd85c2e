package experiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyConversions_RollsUpByUTCDay(t *testing.T) {
	ds, err := Clean(sampleTable(
		[]string{"u1", "control", "old_page", "1", "2017-01-02 23:59:59"},
		[]string{"u2", "control", "old_page", "0", "2017-01-02 00:00:01"},
		[]string{"u3", "treatment", "new_page", "1", "2017-01-03 12:00:00"},
		[]string{"u4", "treatment", "new_page", "0", ""}, // no timestamp, skipped
	))
	require.NoError(t, err)

	days := DailyConversions(ds)
	require.Len(t, days, 2)

	assert.Equal(t, time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC), days[0].Day)
	assert.Equal(t, 2, days[0].Control.N)
	assert.Equal(t, 1, days[0].Control.Conversions)
	assert.Equal(t, 0, days[0].Treatment.N)

	assert.Equal(t, time.Date(2017, 1, 3, 0, 0, 0, 0, time.UTC), days[1].Day)
	assert.Equal(t, 1, days[1].Treatment.N)
}

func TestMergeCountries_FillsWithoutMutating(t *testing.T) {
	ds, err := Clean(sampleTable(
		[]string{"u1", "control", "old_page", "0", ""},
		[]string{"u2", "treatment", "new_page", "1", ""},
	))
	require.NoError(t, err)

	merged := MergeCountries(ds, map[string]string{"u1": "US", "u2": "UK"})

	assert.Equal(t, "US", merged.Records[0].Country)
	assert.Equal(t, "UK", merged.Records[1].Country)
	assert.Empty(t, ds.Records[0].Country, "original dataset must stay untouched")
	assert.Equal(t, ds.Summary, merged.Summary)
}

func TestSummarizeByCountry_SortedWithUnknownUnderEmptyKey(t *testing.T) {
	ds, err := Clean(sampleTable(
		[]string{"u1", "control", "old_page", "1", ""},
		[]string{"u2", "treatment", "new_page", "0", ""},
		[]string{"u3", "control", "old_page", "0", ""},
	))
	require.NoError(t, err)

	merged := MergeCountries(ds, map[string]string{"u1": "US", "u2": "CA"})

	byCountry := SummarizeByCountry(merged)
	require.Len(t, byCountry, 3)

	assert.Equal(t, "", byCountry[0].Country)
	assert.Equal(t, 1, byCountry[0].Control.N)
	assert.Equal(t, "CA", byCountry[1].Country)
	assert.Equal(t, 1, byCountry[1].Treatment.N)
	assert.Equal(t, "US", byCountry[2].Country)
	assert.Equal(t, 1, byCountry[2].Control.Conversions)
}
