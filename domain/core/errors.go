package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Structural errors (fatal, abort before any statistic is computed)
	ErrMissingColumns = errors.New("required columns missing")
	ErrEmptyDataset   = errors.New("dataset empty after cleaning")

	// Test preconditions (recoverable, surfaced to the caller)
	ErrEmptyGroup         = errors.New("experimental arm has no members")
	ErrDegenerateVariance = errors.New("pooled variance is zero, z-test undefined")
	ErrNoTestResults      = errors.New("no test results to compose")
	ErrInvalidTestOptions = errors.New("invalid test options")

	// Cancellation (partial state discarded, never returned as a result)
	ErrCancelled = errors.New("simulation cancelled")
)

// Error constructors with context

func NewMissingColumnsError(columns []string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(columns, ", "))
}

func NewEmptyDatasetError(rowsIn, misaligned, duplicates, invalid int) error {
	return fmt.Errorf("%w: %d rows in, %d misaligned, %d duplicates, %d invalid removed",
		ErrEmptyDataset, rowsIn, misaligned, duplicates, invalid)
}

func NewEmptyGroupError(arm string) error {
	return fmt.Errorf("%w: %s", ErrEmptyGroup, arm)
}

func NewDegenerateVarianceError(pooledRate float64) error {
	return fmt.Errorf("%w: pooled rate %g", ErrDegenerateVariance, pooledRate)
}

func NewCancelledError(completed, total int, cause error) error {
	return fmt.Errorf("%w after %d of %d trials: %v", ErrCancelled, completed, total, cause)
}

// Error checking helpers

func IsStructuralError(err error) bool {
	return errors.Is(err, ErrMissingColumns) || errors.Is(err, ErrEmptyDataset)
}

func IsRecoverableTestError(err error) bool {
	return errors.Is(err, ErrEmptyGroup) || errors.Is(err, ErrDegenerateVariance)
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
