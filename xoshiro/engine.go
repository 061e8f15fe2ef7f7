// Package xoshiro implements the xoshiro256** generator together with the
// seeding protocol used across sparkyrng.
//
// Based on the public domain reference by David Blackman and Sebastiano Vigna,
// https://prng.di.unimi.it/xoshiro256starstar.c
//
// An Engine is owned by a single goroutine. Callers sharing one across
// goroutines must serialize access themselves, or give each goroutine its own
// independently seeded Engine.
package xoshiro

import (
	"iter"
	"math"
	"math/bits"
	"slices"

	"github.com/xtding233/sparkyrng/splitmix"
)

const (
	// DefaultSeed is used when no seed is supplied.
	DefaultSeed uint64 = 18914

	// Min and Max bound every value returned by Uint64.
	Min uint64 = 0
	Max uint64 = math.MaxUint64

	// BurnIn is the number of outputs discarded after every seeding.
	BurnIn = 256

	// replaces the second word when seeding lands on the all-zero state
	zeroFix uint64 = 0x1615CA18E55EE70C
)

// well mixed starting words, independent of the seed
var initial = State{0x5FAF84EE2AA04CFF, 0xB3A2EF3524D89987, 0x5A82B68EF098F79D, 0x5D7AA03298486D6E}

// Engine holds 256 bits of xoshiro256** state.
//
// The zero Engine is seeded with the all-zero state and only ever returns 0;
// construct one with New, NewSeq or NewValues.
type Engine struct {
	state State
}

// New returns an Engine seeded with seed.
func New(seed uint64) *Engine {
	e := new(Engine)
	e.Seed(seed)
	return e
}

// NewDefault returns an Engine seeded with DefaultSeed.
func NewDefault() *Engine { return New(DefaultSeed) }

// NewSeq returns an Engine seeded from an ordered sequence of values.
func NewSeq(seq iter.Seq[uint64]) *Engine {
	e := new(Engine)
	e.SeedSeq(seq)
	return e
}

// NewValues is NewSeq over the given values.
func NewValues(values ...uint64) *Engine {
	return NewSeq(slices.Values(values))
}

// Seed reinitializes the state from a single value.
func (e *Engine) Seed(seed uint64) {
	e.state = initial
	var m uint64
	e.absorb(&m, seed)
	e.settle()
}

// SeedSeq reinitializes the state from every value of seq, in order. The mixer
// state carries over from one value to the next, so permuting the sequence
// changes the result. A one-element sequence matches Seed. An empty sequence
// leaves only the starting constants, then burns in.
func (e *Engine) SeedSeq(seq iter.Seq[uint64]) {
	e.state = initial
	var m uint64
	for s := range seq {
		e.absorb(&m, s)
	}
	e.settle()
}

// SeedValues is SeedSeq over the given values.
func (e *Engine) SeedValues(values ...uint64) {
	e.SeedSeq(slices.Values(values))
}

// absorb folds s into the running mixer state m, then adds four successive
// mixer outputs, one per state word.
func (e *Engine) absorb(m *uint64, s uint64) {
	*m ^= s
	for i := range e.state {
		e.state[i] += splitmix.Next(m)
	}
}

func (e *Engine) settle() {
	if e.state.IsZero() {
		e.state[1] = zeroFix
	}
	e.Discard(BurnIn)
}

// Uint64 returns the next output and advances the state. The output is taken
// from the state before the transition.
func (e *Engine) Uint64() uint64 {
	s := &e.state
	result := bits.RotateLeft64(s[1]*5, 7) * 9

	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

// Discard advances the engine n times, dropping the outputs.
func (e *Engine) Discard(n uint64) {
	for ; n != 0; n-- {
		e.Uint64()
	}
}

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state }

// SetState replaces the state. The all-zero state is refused with ErrZeroState.
func (e *Engine) SetState(s State) error {
	if s.IsZero() {
		return ErrZeroState
	}
	e.state = s
	return nil
}

// Equal reports whether both engines hold bit-identical state.
func (e *Engine) Equal(other *Engine) bool {
	return e.state == other.state
}
