// Package config loads application configuration from the environment,
// with a best-effort .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds report store settings. An empty URL disables
// persistence; the analysis pipeline runs fine without it.
type DatabaseConfig struct {
	URL string
}

// AnalysisConfig holds the default test parameters, overridable per request
type AnalysisConfig struct {
	Iterations int
	Alpha      float64
}

// Load reads configuration from environment variables. A .env file in the
// working directory is merged in when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server:   ServerConfig{Port: envOr("PORT", "8080")},
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Analysis: AnalysisConfig{
			Iterations: 10000,
			Alpha:      0.05,
		},
	}

	if raw := os.Getenv("ANALYSIS_ITERATIONS"); raw != "" {
		iterations, err := strconv.Atoi(raw)
		if err != nil || iterations <= 0 {
			return nil, fmt.Errorf("ANALYSIS_ITERATIONS must be a positive integer, got %q", raw)
		}
		cfg.Analysis.Iterations = iterations
	}

	if raw := os.Getenv("ANALYSIS_ALPHA"); raw != "" {
		alpha, err := strconv.ParseFloat(raw, 64)
		if err != nil || alpha <= 0 || alpha >= 1 {
			return nil, fmt.Errorf("ANALYSIS_ALPHA must be in (0,1), got %q", raw)
		}
		cfg.Analysis.Alpha = alpha
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
