package random

import (
	"errors"
	"math"
	"testing"
)

// sliceSource replays fixed words and counts draws.
type sliceSource struct {
	words []uint64
	drawn int
}

func (s *sliceSource) Uint64() uint64 {
	w := s.words[s.drawn]
	s.drawn++
	return w
}

func TestTopBits(t *testing.T) {
	u := uint64(0x4bf21242f5259c4c)
	cases := []struct {
		b    int
		want uint64
	}{
		{0, 0},
		{1, 0},
		{8, 0x4b},
		{32, 0x4bf21242},
		{64, u},
	}
	for _, c := range cases {
		got, err := TopBits(u, c.b)
		if err != nil {
			t.Fatalf("b=%d: %v", c.b, err)
		}
		if got != c.want {
			t.Fatalf("b=%d: got %#x want %#x", c.b, got, c.want)
		}
	}
	for _, b := range []int{-1, 65} {
		if _, err := TopBits(u, b); !errors.Is(err, ErrInvalidBitWidth) {
			t.Fatalf("b=%d: want ErrInvalidBitWidth, got %v", b, err)
		}
	}
}

func TestU32(t *testing.T) {
	u := uint64(0x4bf21242f5259c4c)
	if got := U32(u); got != 0x4bf21242 {
		t.Fatalf("U32: got %#x", got)
	}
	lo, hi := U32Pair(u)
	if lo != 0xf5259c4c || hi != 0x4bf21242 {
		t.Fatalf("U32Pair: got %#x %#x", lo, hi)
	}
}

func TestFloatEdges(t *testing.T) {
	if got := F52(0); !(got > 0) || got != 0x1p-53 {
		t.Fatalf("F52(0): got %g", got)
	}
	if got := F52(math.MaxUint64); got >= 1 || got != 1-0x1p-53 {
		t.Fatalf("F52(max): got %g", got)
	}
	if got := F53(0); got != 0 {
		t.Fatalf("F53(0): got %g", got)
	}
	if got := F53(math.MaxUint64); got >= 1 || got != 1-0x1p-53 {
		t.Fatalf("F53(max): got %g", got)
	}
	// one step of the 53-bit lattice
	if got := F53(1 << 11); got != 0x1p-53 {
		t.Fatalf("F53 granularity: got %g want 2^-53", got)
	}
	if got := F53(1<<24 - 1); got >= 0x1p-40 {
		t.Fatalf("F53 small input: got %g want < 2^-40", got)
	}
	// F52 steps by 2^-52
	if d := F52(1<<12) - F52(0); d != 0x1p-52 {
		t.Fatalf("F52 granularity: got %g want 2^-52", d)
	}
}

func TestUint64nAcceptsWithoutRejection(t *testing.T) {
	// low word 4 is below n=6 but not below the threshold 2^64 mod 6 = 4
	src := &sliceSource{words: []uint64{0x5555555555555556}}
	got, err := Uint64n(src, 6)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 || src.drawn != 1 {
		t.Fatalf("got %d after %d draws, want 2 after 1", got, src.drawn)
	}
}

func TestUint64nRejects(t *testing.T) {
	// low word 2 falls under the threshold and must be redrawn
	src := &sliceSource{words: []uint64{0x2aaaaaaaaaaaaaab, 0, 0x5555555555555556}}
	got, err := Uint64n(src, 6)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 || src.drawn != 3 {
		t.Fatalf("got %d after %d draws, want 2 after 3", got, src.drawn)
	}
}

func TestUint64nZeroBound(t *testing.T) {
	src := &sliceSource{}
	if _, err := Uint64n(src, 0); !errors.Is(err, ErrInvalidBound) {
		t.Fatalf("want ErrInvalidBound, got %v", err)
	}
	if src.drawn != 0 {
		t.Fatalf("zero bound consumed %d words", src.drawn)
	}
}

func TestUint64nFullRangeWords(t *testing.T) {
	src := &sliceSource{words: []uint64{math.MaxUint64, 0}}
	got, err := Uint64n(src, 1<<63)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1<<63-1 {
		t.Fatalf("top word: got %#x", got)
	}
}
