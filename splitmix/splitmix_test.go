package splitmix

import "testing"

func TestNextKnownValues(t *testing.T) {
	// reference outputs of splitmix64 started from zero
	want := []uint64{0xe220a8397b1dcdaf, 0x6e789e6aa1b965f4, 0x06c45d188009454f}
	var state uint64
	for i, w := range want {
		if got := Next(&state); got != w {
			t.Fatalf("draw %d: got %#x want %#x", i, got, w)
		}
	}
	var advanced uint64
	for range want {
		advanced += Increment
	}
	if state != advanced {
		t.Fatalf("state not advanced by increment: got %#x want %#x", state, advanced)
	}
}

func TestNextAvalanche(t *testing.T) {
	a, b := uint64(1), uint64(2)
	x, y := Next(&a), Next(&b)
	diff := x ^ y
	n := 0
	for ; diff != 0; diff &= diff - 1 {
		n++
	}
	if n < 16 {
		t.Fatalf("neighbouring seeds differ in only %d output bits", n)
	}
}
