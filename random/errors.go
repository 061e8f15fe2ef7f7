package random

import (
	"errors"
	"math"
)

var (
	// ErrInvalidBound is returned for a zero upper bound.
	ErrInvalidBound = errors.New("random: bound must be > 0")

	// ErrInvalidBitWidth is returned for a bit width outside 0..64.
	ErrInvalidBitWidth = errors.New("random: bit width must be in 0..64")

	// ErrInvalidProbability is returned for a probability outside [0, 1] or NaN.
	ErrInvalidProbability = errors.New("random: probability must be in 0..1")
)

func validateBound(n uint64) error {
	if n == 0 {
		return ErrInvalidBound
	}
	return nil
}

func validateBitWidth(b int) error {
	if b < 0 || b > 64 {
		return ErrInvalidBitWidth
	}
	return nil
}

func validateProb(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return ErrInvalidProbability
	}
	return nil
}
