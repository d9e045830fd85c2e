package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// simulation. The same (name, seed) pair must always yield a stream that
// produces an identical sequence, so resampling runs can be reproduced
// exactly.
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation. Distinct names derive distinct streams from the
	// same base seed, which lets parallel batches share one user-supplied
	// seed without correlating their draws.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// ProcessSeed returns a fresh seed for runs where the caller supplied
	// none. The value is recorded in the result so even unseeded runs can
	// be replayed.
	ProcessSeed() int64
}
