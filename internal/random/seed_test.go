package random

import (
	"bytes"
	"testing"
	"time"
)

func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct seeds, got %d twice", a)
	}
}

func TestSeedFromShortReader(t *testing.T) {
	if _, err := seedFrom(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Fatal("expected short read error")
	}
}

func TestSeedFromLittleEndian(t *testing.T) {
	seed, err := seedFrom(bytes.NewReader([]byte{1, 0, 0, 0, 0, 0, 0, 0}))
	if err != nil {
		t.Fatalf("seed from reader: %v", err)
	}
	if seed != 1 {
		t.Fatalf("seed = %d, want 1", seed)
	}
}

func TestSeedOrNowReturnsSeed(t *testing.T) {
	fixed := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	// crypto/rand is available in tests, so the clock is not consulted; the
	// call must still succeed with a nil-safe clock.
	_ = SeedOrNow(func() time.Time { return fixed })
	_ = SeedOrNow(nil)
}
