package tdigest

import (
	"math/rand"
)

// RNG is the part of a random number generator the digest needs for
// shuffling centroids.
type RNG interface {
	// Intn returns a non-negative pseudo-random int in [0, n).
	Intn(n int) int
}

type globalRNG struct{}

func (globalRNG) Intn(n int) int {
	return rand.Intn(n)
}

type localRNG struct {
	localRand *rand.Rand
}

func newLocalRNG(seed int64) *localRNG {
	return &localRNG{localRand: rand.New(rand.NewSource(seed))}
}

func (r *localRNG) Intn(n int) int {
	return r.localRand.Intn(n)
}
