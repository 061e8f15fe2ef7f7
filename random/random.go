// Package random converts raw xoshiro256** output into bounded integers,
// fixed-width integers and floats.
//
// None of it is suitable where an adversary can observe outputs.
package random

import (
	"fmt"
	"iter"

	"github.com/xtding233/sparkyrng/xoshiro"
)

// Random is an Engine with the sampling helpers attached. Like Engine it has
// a single owner.
type Random struct {
	xoshiro.Engine
}

// New returns a Random seeded with seed.
func New(seed uint64) *Random {
	r := new(Random)
	r.Seed(seed)
	return r
}

// NewDefault returns a Random seeded with xoshiro.DefaultSeed.
func NewDefault() *Random { return New(xoshiro.DefaultSeed) }

// NewSeq returns a Random seeded from an ordered sequence.
func NewSeq(seq iter.Seq[uint64]) *Random {
	r := new(Random)
	r.SeedSeq(seq)
	return r
}

// NewValues is NewSeq over the given values.
func NewValues(values ...uint64) *Random {
	r := new(Random)
	r.SeedValues(values...)
	return r
}

// NewFromMaterial seeds from whatever seed material gather produces, e.g.
// entropy.Gather.
func NewFromMaterial(gather func() ([]uint64, error)) (*Random, error) {
	material, err := gather()
	if err != nil {
		return nil, fmt.Errorf("gather seed material: %w", err)
	}
	return NewValues(material...), nil
}

// Equal reports whether both generators hold the same state.
func (r *Random) Equal(other *Random) bool {
	return r.Engine.Equal(&other.Engine)
}

// Bits returns a uniformly distributed value in [0, 2^64).
func (r *Random) Bits() uint64 { return r.Uint64() }

// BitsN returns a uniformly distributed value in [0, 2^b).
func (r *Random) BitsN(b int) (uint64, error) {
	if err := validateBitWidth(b); err != nil {
		return 0, err
	}
	return r.Uint64() >> (64 - uint(b)), nil
}

// Uint64n returns a uniformly distributed value in [0, n). n == 0 fails with
// ErrInvalidBound without consuming output.
func (r *Random) Uint64n(n uint64) (uint64, error) {
	return Uint64n(r, n)
}

// Uint32 returns a uniformly distributed value in [0, 2^32).
func (r *Random) Uint32() uint32 { return U32(r.Uint64()) }

// Uint32Pair returns two 32-bit values cut from one output.
func (r *Random) Uint32Pair() (uint32, uint32) { return U32Pair(r.Uint64()) }

// F52 returns a value in (0, 1).
func (r *Random) F52() float64 { return F52(r.Uint64()) }

// F53 returns a value in [0, 1).
func (r *Random) F53() float64 { return F53(r.Uint64()) }

// Float64 is F53.
func (r *Random) Float64() float64 { return r.F53() }

// Chance reports a hit with probability p.
// p == 0 never hits and p == 1 always hits, neither consumes output.
func (r *Random) Chance(p float64) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p == 0 {
		return false, nil
	}
	if p == 1 {
		return true, nil
	}
	return r.F53() < p, nil
}
