package random

import (
	"math"
	"math/bits"
)

// Source is anything producing uniformly distributed 64-bit words.
// *xoshiro.Engine and math/rand/v2 sources satisfy it.
type Source interface {
	Uint64() uint64
}

const (
	one52  = 0x3FF0000000000000  // exponent bits of 1.0
	below1 = 0.99999999999999988 // 1 - 2^-53
	two53  = 1 << 53
)

// F52 relies on the IEEE-754 binary64 layout of float64.
func init() {
	if math.Float64bits(1.0) != one52 {
		panic("random: float64 is not IEEE-754 binary64")
	}
}

// TopBits returns the b high bits of u. b must be in 0..64.
func TopBits(u uint64, b int) (uint64, error) {
	if err := validateBitWidth(b); err != nil {
		return 0, err
	}
	// a shift by 64 yields 0, which is the right answer for b == 0
	return u >> (64 - uint(b)), nil
}

// U32 keeps the high half of u, the better half for xoshiro256**.
func U32(u uint64) uint32 { return uint32(u >> 32) }

// U32Pair splits u into its low and high halves.
func U32Pair(u uint64) (lo, hi uint32) { return uint32(u), uint32(u >> 32) }

// F52 maps u into (0, 1) with 2^-52 spacing: the top 52 bits become the
// mantissa of a value in [1, 2), from which just under 1 is subtracted.
func F52(u uint64) float64 {
	return math.Float64frombits(u>>12|one52) - below1
}

// F53 maps u into [0, 1) using its top 53 bits.
func F53(u uint64) float64 {
	return float64(int64(u>>11)) / two53
}

// Uint64n returns a uniformly distributed value in [0, n), drawing from src
// until the result is free of modulo bias.
//
// Algorithm 5 from Lemire (2018), https://arxiv.org/abs/1805.10941
func Uint64n(src Source, n uint64) (uint64, error) {
	if err := validateBound(n); err != nil {
		return 0, err
	}
	hi, lo := bits.Mul64(src.Uint64(), n)
	if lo < n {
		t := -n % n
		for lo < t {
			hi, lo = bits.Mul64(src.Uint64(), n)
		}
	}
	return hi, nil
}
