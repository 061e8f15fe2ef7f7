// Package entropy gathers ambient seed material for default construction of
// generators. Nothing here is deterministic; tests inject their own clock,
// process id and random reader through Gatherer.
package entropy

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"
)

// Tag leads every gathered sequence.
const Tag uint64 = 0xC8F978DB0B32F62E

// Gatherer collects [Tag, clock, pid, 64 random bits].
type Gatherer struct {
	Now  func() time.Time
	PID  func() int
	Rand io.Reader

	// Strict makes a failing Rand an error instead of falling back to
	// math/rand/v2.
	Strict bool
}

// Default reads the wall clock, os.Getpid and crypto/rand.
var Default = Gatherer{Now: time.Now, PID: os.Getpid, Rand: cryptoRand.Reader}

// Gather uses Default.
func Gather() ([]uint64, error) { return Default.Gather() }

// Gather returns the seed material in fixed order.
func (g Gatherer) Gather() ([]uint64, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	pid := os.Getpid
	if g.PID != nil {
		pid = g.PID
	}
	bits, err := g.random()
	if err != nil {
		return nil, err
	}
	return []uint64{Tag, uint64(now().UnixNano()), uint64(pid()), bits}, nil
}

func (g Gatherer) random() (uint64, error) {
	r := g.Rand
	if r == nil {
		r = cryptoRand.Reader
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if g.Strict {
			return 0, fmt.Errorf("entropy: read random source: %w", err)
		}
		// back to math/rand/v2, which is seeded by the runtime
		return rand.Uint64(), nil
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
