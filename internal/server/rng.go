package server

import "math/rand/v2"

// newRNG returns a fresh PCG source for one request. Domain functions
// take the rng as a parameter and tests pass a seeded one.
func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
