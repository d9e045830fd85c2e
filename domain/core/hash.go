package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic content hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// DatasetHash fingerprints a cleaned dataset so a stored report can be
// matched to the exact data it was computed from
type DatasetHash Hash

func NewDatasetHash(data []byte) DatasetHash {
	return DatasetHash(NewHash(data))
}

func (h DatasetHash) String() string { return Hash(h).String() }
