// Package service shares one generator between the network transports.
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/xtding233/sparkyrng/internal/stats"
	"github.com/xtding233/sparkyrng/random"
	"github.com/xtding233/sparkyrng/xoshiro"
)

const (
	// MaxDiscard bounds a single remote discard request.
	MaxDiscard = 1 << 24

	// MaxSelfTestSamples bounds the draws of one self test.
	MaxSelfTestSamples = 10_000_000

	// MaxSummarySamples bounds the floats held by one FloatSummary.
	MaxSummarySamples = 1_000_000
)

var (
	// ErrDiscardTooLarge is returned by Discard for counts above MaxDiscard.
	ErrDiscardTooLarge = fmt.Errorf("service: discard count must be <= %d", MaxDiscard)

	// ErrSelfTestSize is returned for self test sample counts out of range.
	ErrSelfTestSize = fmt.Errorf("service: self test samples must be in 1..%d", MaxSelfTestSamples)

	// ErrSummarySize is returned for float summary sample counts out of range.
	ErrSummarySize = fmt.Errorf("service: summary samples must be in 1..%d", MaxSummarySamples)

	// ErrNoSeed is returned when reseeding from an empty sequence.
	ErrNoSeed = errors.New("service: empty seed sequence")
)

// Generator serializes access to a single Random.
type Generator struct {
	mu sync.Mutex
	r  *random.Random
}

// NewGenerator takes ownership of r.
func NewGenerator(r *random.Random) *Generator {
	return &Generator{r: r}
}

func (g *Generator) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Uint64()
}

func (g *Generator) Bits(b int) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.BitsN(b)
}

func (g *Generator) Uint32() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Uint32()
}

func (g *Generator) Uint32Pair() (uint32, uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Uint32Pair()
}

func (g *Generator) Uint64n(n uint64) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Uint64n(n)
}

func (g *Generator) F52() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.F52()
}

func (g *Generator) F53() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.F53()
}

func (g *Generator) Chance(p float64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Chance(p)
}

// Discard skips n outputs, refusing counts above MaxDiscard.
func (g *Generator) Discard(n uint64) error {
	if n > MaxDiscard {
		return ErrDiscardTooLarge
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.r.Discard(n)
	return nil
}

// Seed reseeds from one value.
func (g *Generator) Seed(seed uint64) xoshiro.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.r.Seed(seed)
	return g.r.State()
}

// SeedValues reseeds from an ordered sequence.
func (g *Generator) SeedValues(values ...uint64) (xoshiro.State, error) {
	if len(values) == 0 {
		return xoshiro.State{}, ErrNoSeed
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.r.SeedValues(values...)
	return g.r.State(), nil
}

func (g *Generator) State() xoshiro.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.State()
}

func (g *Generator) SetState(s xoshiro.State) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.SetState(s)
}

// SelfTest runs a chi-squared uniformity check of Uint64n(k) over n draws on
// a copy of the current state; the shared stream does not move.
func (g *Generator) SelfTest(k uint64, n int) (stats.Uniformity, error) {
	if n <= 0 || n > MaxSelfTestSamples {
		return stats.Uniformity{}, ErrSelfTestSize
	}
	return stats.CheckUniform(g.fork(), k, n)
}

// FloatSummary summarizes n F53 draws taken from a copy of the current state.
func (g *Generator) FloatSummary(n int) (stats.Summary, error) {
	if n <= 0 || n > MaxSummarySamples {
		return stats.Summary{}, ErrSummarySize
	}
	fork := g.fork()
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = fork.F53()
	}
	return stats.Summarize(xs), nil
}

func (g *Generator) fork() *random.Random {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &random.Random{Engine: g.r.Engine}
}
