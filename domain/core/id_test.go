package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestRunIDString tests run ID string conversion
func TestRunIDString(t *testing.T) {
	id := RunID("run-123")
	if id.String() != "run-123" {
		t.Errorf("Expected String() to return 'run-123', got '%s'", id.String())
	}
}

// TestDatasetHashDeterminism tests that equal content hashes equally
func TestDatasetHashDeterminism(t *testing.T) {
	a := NewDatasetHash([]byte("u1|control|0\nu2|treatment|1\n"))
	b := NewDatasetHash([]byte("u1|control|0\nu2|treatment|1\n"))
	c := NewDatasetHash([]byte("u1|control|1\nu2|treatment|1\n"))

	if a != b {
		t.Errorf("Expected identical content to hash identically, got %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("Expected different content to hash differently")
	}
}
