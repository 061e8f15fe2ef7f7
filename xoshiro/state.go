package xoshiro

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrZeroState is returned when installing the all-zero state, which the
	// generator can never leave.
	ErrZeroState = errors.New("xoshiro: all-zero state")

	// ErrStateLength is returned when decoding a State of the wrong size.
	ErrStateLength = errors.New("xoshiro: encoded state must be 32 bytes")
)

// StateSize is the length of a binary encoded State.
const StateSize = 32

// State is the four-word generator state in fixed order.
type State [4]uint64

// IsZero reports whether every word is zero.
func (s State) IsZero() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

// MarshalBinary encodes the words little endian, word 0 first.
func (s State) MarshalBinary() ([]byte, error) {
	buf := make([]byte, StateSize)
	for i, w := range s {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return buf, nil
}

// UnmarshalBinary decodes the MarshalBinary form.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) != StateSize {
		return ErrStateLength
	}
	var out State
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	if out.IsZero() {
		return ErrZeroState
	}
	*s = out
	return nil
}

// String renders the state as four 16-digit hex words joined by '-'.
func (s State) String() string {
	return fmt.Sprintf("%016x-%016x-%016x-%016x", s[0], s[1], s[2], s[3])
}

// ParseState parses the String form. Words may omit leading zeros.
func ParseState(str string) (State, error) {
	parts := strings.Split(str, "-")
	if len(parts) != 4 {
		return State{}, fmt.Errorf("xoshiro: parse state %q: want 4 words, got %d", str, len(parts))
	}
	var s State
	for i, p := range parts {
		w, err := strconv.ParseUint(p, 16, 64)
		if err != nil {
			return State{}, fmt.Errorf("xoshiro: parse state word %d: %w", i, err)
		}
		s[i] = w
	}
	if s.IsZero() {
		return State{}, ErrZeroState
	}
	return s, nil
}
