// Package entropy provides the random sources quest resolution draws from.
// Deterministic runs use a seeded source; everything else falls back to crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"math"
	mrand "math/rand"
	"sync"
)

// Source supplies uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// Seeded is a deterministic Source. It counts draws so a run can be
// reproduced from (seed, position).
type Seeded struct {
	seed int64

	mu  sync.Mutex
	rng *mrand.Rand
	pos int64
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  mrand.New(mrand.NewSource(seed)),
	}
}

// RestoreSeeded recreates a source and advances it to position.
func RestoreSeeded(seed, position int64) *Seeded {
	s := NewSeeded(seed)
	for i := int64(0); i < position; i++ {
		s.rng.Float64()
	}
	s.pos = position
	return s
}

// Float64 returns the next draw in [0, 1).
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos++
	return s.rng.Float64()
}

// Seed returns the seed the source was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Position returns the number of draws made so far.
func (s *Seeded) Position() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Crypto draws from crypto/rand. The zero value is ready to use.
type Crypto struct{}

// Float64 returns a crypto/rand draw in [0, 1).
func (Crypto) Float64() float64 {
	return cryptoRandFloat()
}

func cryptoRandFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// NewSeed returns a fresh seed from crypto/rand.
func NewSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

// ErrNoWeight is returned when a weighted draw has nothing to choose from.
var ErrNoWeight = errors.New("no positive weight to sample")

// ErrBadWeight is returned for negative or non-finite weights.
var ErrBadWeight = errors.New("weights must be finite and non-negative")

// SampleWeighted returns an index chosen proportionally to weights.
// Zero-weight entries are never chosen and the slice need not be sorted.
func SampleWeighted(src Source, weights []float64) (int, error) {
	total := 0.0
	last := -1
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, ErrBadWeight
		}
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return 0, ErrNoWeight
	}

	roll := src.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i, nil
		}
	}
	// Rounding can leave roll just above the final cumulative sum.
	return last, nil
}
