package table

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tranquil888/ab-testing-app/domain/experiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_CanonicalHeaders(t *testing.T) {
	path := writeTempCSV(t, "ab_data.csv",
		"user_id,group,landing_page,converted,timestamp\n"+
			"851104,control,old_page,0,2017-01-21 22:11:48.556739\n"+
			"804228,treatment,new_page,1,2017-01-12 08:01:45.159739\n")

	table, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"user_id", "group", "landing_page", "converted", "timestamp"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "851104", table.Rows[0][0])
	assert.Equal(t, "treatment", table.Rows[1][1])
}

func TestRead_HeaderAliasesNormalized(t *testing.T) {
	path := writeTempCSV(t, "export.csv",
		"ID,Variant,Page,Conversion,TS\n"+
			"u1,control,old_page,0,\n")

	table, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		experiment.ColUserID, experiment.ColGroup,
		experiment.ColLandingPage, experiment.ColConverted, experiment.ColTimestamp,
	}, table.Columns)

	// The normalized table satisfies the validator's column check.
	outcome, err := experiment.Validate(table)
	require.NoError(t, err)
	assert.True(t, outcome.Valid)
}

func TestRead_RaggedRowsTolerated(t *testing.T) {
	path := writeTempCSV(t, "ragged.csv",
		"user_id,group,landing_page,converted\n"+
			"u1,control,old_page,0\n"+
			"u2,control\n")

	table, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Cell(1, 3), "short rows read as empty cells")
}

func TestRead_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", "")

	_, err := NewReader().Read(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestRead_MissingFile(t *testing.T) {
	_, err := NewReader().Read(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestRead_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader().Read(ctx, "irrelevant.csv")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadCountries(t *testing.T) {
	path := writeTempCSV(t, "countries.csv",
		"user_id,country\n"+
			"u1,US\n"+
			"u2,UK\n"+
			"u1,CA\n"+ // later row wins
			",FR\n") // blank id skipped

	countries, err := NewReader().ReadCountries(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"u1": "CA", "u2": "UK"}, countries)
}

func TestReadCountries_MissingColumns(t *testing.T) {
	path := writeTempCSV(t, "bad.csv", "user_id,region\nu1,west\n")

	_, err := NewReader().ReadCountries(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "country")
}
