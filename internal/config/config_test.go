package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ANALYSIS_ITERATIONS", "")
	t.Setenv("ANALYSIS_ALPHA", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 10000, cfg.Analysis.Iterations)
	assert.Equal(t, 0.05, cfg.Analysis.Alpha)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/ab_test")
	t.Setenv("ANALYSIS_ITERATIONS", "50000")
	t.Setenv("ANALYSIS_ALPHA", "0.01")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/ab_test", cfg.Database.URL)
	assert.Equal(t, 50000, cfg.Analysis.Iterations)
	assert.Equal(t, 0.01, cfg.Analysis.Alpha)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"iterations not a number", "ANALYSIS_ITERATIONS", "lots"},
		{"iterations negative", "ANALYSIS_ITERATIONS", "-1"},
		{"alpha not a number", "ANALYSIS_ALPHA", "strict"},
		{"alpha out of range", "ANALYSIS_ALPHA", "1.5"},
		{"alpha zero", "ANALYSIS_ALPHA", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
