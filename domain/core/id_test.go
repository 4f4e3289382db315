package core

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// TestNewRunIDUniqueness tests that NewRunID generates unique identifiers
func TestNewRunIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[RunID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewRunID()
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

// TestNewRunIDVersion tests that run IDs are time-ordered UUIDs
func TestNewRunIDVersion(t *testing.T) {
	parsed, err := uuid.Parse(NewRunID().String())
	if err != nil {
		t.Fatalf("run ID is not a UUID: %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("Expected UUID version 7, got %d", parsed.Version())
	}
}

// TestRunIDIsEmpty tests ID emptiness check
func TestRunIDIsEmpty(t *testing.T) {
	if !RunID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if NewRunID().IsEmpty() {
		t.Error("Expected generated ID to not be empty")
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	valid := "0190b3e1-6f2a-7cc4-9a1e-3b9d2f4c8e10"
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{valid, RunID(valid), false},
		{"  " + valid + " ", RunID(valid), false},
		{"run-123", "", true},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestFingerprintStable tests that equal values hash equally and different values do not
func TestFingerprintStable(t *testing.T) {
	type scenario struct {
		C float64 `json:"c"`
		K float64 `json:"k"`
	}

	a, err := Fingerprint(scenario{C: 0.1, K: 1.7e-5})
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	b, _ := Fingerprint(scenario{C: 0.1, K: 1.7e-5})
	c, _ := Fingerprint(scenario{C: 0.2, K: 1.7e-5})

	if a != b {
		t.Errorf("Expected equal fingerprints, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different scenarios to have different fingerprints")
	}
	if len(a.String()) != 64 || len(a.Short()) != 12 {
		t.Errorf("Unexpected fingerprint lengths: %d / %d", len(a.String()), len(a.Short()))
	}
}

// TestErrorClassification tests sentinel helpers through wrapping
func TestErrorClassification(t *testing.T) {
	cfg := fmt.Errorf("%w: bad unit", ErrConfiguration)
	if !IsConfigurationError(cfg) {
		t.Error("Expected wrapped ErrConfiguration to be a configuration error")
	}
	if IsFatalComputationError(cfg) {
		t.Error("Configuration error should not be a computation error")
	}
	if !IsFatalComputationError(fmt.Errorf("sweep: %w", ErrEmptyResult)) {
		t.Error("Expected ErrEmptyResult to be a computation error")
	}
	if !IsNotFoundError(fmt.Errorf("run x: %w", ErrNotFound)) {
		t.Error("Expected wrapped ErrNotFound to be recognized")
	}
}
