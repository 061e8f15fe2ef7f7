// Package splitmix implements the fixed-increment splitmix64 mixer used to
// expand small seed material into well distributed 64-bit words.
//
// See http://dx.doi.org/10.1145/2714064.2660195
package splitmix

// Increment is the golden-ratio step added to the state on every call. It is
// odd, so repeated calls walk the full 2^64 additive cycle.
const Increment = 0x9e3779b97f4a7c15

// Next advances *state by Increment and returns the avalanche of the new value.
func Next(state *uint64) uint64 {
	*state += Increment
	return mix(*state)
}

func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
