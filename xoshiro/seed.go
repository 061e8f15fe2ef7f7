package xoshiro

import (
	"iter"

	"github.com/xtding233/sparkyrng/splitmix"
)

// starting value for MakeSeed
const seedBase uint64 = 0xFD57D105591C980C

// MakeSeed folds an ordered sequence into a single seed. Each value feeds one
// mixer call on its own copy; the outputs are summed onto a fixed base.
func MakeSeed(seq iter.Seq[uint64]) uint64 {
	seed := seedBase
	for s := range seq {
		seed += splitmix.Next(&s)
	}
	return seed
}
