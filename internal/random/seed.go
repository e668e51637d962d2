// Package random provides seed generation for dice sources.
//
// It uses crypto/rand to generate high-entropy seeds for runs that were not
// given an explicit seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	return seedFrom(crand.Reader)
}

// SeedOrNow returns NewSeed, falling back to a time-derived seed when the
// system entropy source is unavailable.
func SeedOrNow(now func() time.Time) int64 {
	seed, err := NewSeed()
	if err == nil {
		return seed
	}
	if now == nil {
		now = time.Now
	}
	return now().UnixNano()
}

func seedFrom(r io.Reader) (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
