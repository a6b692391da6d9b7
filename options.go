package tdigest

import "errors"

// Option is a configuration hook for New.
type Option func(*TDigest) error

// Delta sets the digest compression parameter.
//
// Delta rules how big a centroid may grow relative to its position in
// the distribution: smaller values trade a larger sketch (more
// centroids in memory, slower additions) for more precision. It must
// be in the (0, 1] interval; the default is 0.1.
func Delta(delta float64) Option {
	return func(t *TDigest) error {
		if delta <= 0 || delta > 1 {
			return errors.New("delta must be in the (0, 1] interval")
		}
		t.delta = delta
		return nil
	}
}

// RandomNumberGenerator sets the source of randomness used when
// shuffling centroids for compaction and merging.
func RandomNumberGenerator(rng RNG) Option {
	return func(t *TDigest) error {
		t.rng = rng
		return nil
	}
}

// LocalRandomNumberGenerator makes the digest use its own rand.Rand
// seeded with seed, so that compaction is reproducible.
func LocalRandomNumberGenerator(seed int64) Option {
	return RandomNumberGenerator(newLocalRNG(seed))
}
