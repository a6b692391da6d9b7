package tdigest

import (
	"fmt"
	"math"
)

// TDigest is a streaming rank statistics sketch: it ingests weighted
// observations and answers percentile (rank to value) and quantile
// (value to rank) queries from bounded memory, with accuracy that
// improves near the tails of the distribution.
//
// Digests are values: Add, Merge and Compress return a new digest and
// never mutate their receiver. A digest performs no synchronization of
// its own, so concurrent use of one logical digest must be serialized
// by the caller.
type TDigest struct {
	summary *summary
	count   float64
	delta   float64
	rng     RNG
}

const defaultDelta = 0.1

// New builds an empty digest. With no options the compression parameter
// delta defaults to 0.1 and compaction shuffles use the shared
// math/rand source.
func New(options ...Option) (*TDigest, error) {
	t := &TDigest{
		summary: newSummary(32),
		delta:   defaultDelta,
		rng:     globalRNG{},
	}
	for _, option := range options {
		if err := option(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Count returns the total weight of all observations folded in.
func (t *TDigest) Count() float64 {
	return t.count
}

// Len returns the number of centroids backing the digest.
func (t *TDigest) Len() int {
	return t.summary.Len()
}

// Delta returns the compression parameter.
func (t *TDigest) Delta() float64 {
	return t.delta
}

// ForEachCentroid calls f with each (mean, weight) pair in ascending
// mean order, stopping early if f returns false.
func (t *TDigest) ForEachCentroid(f func(mean, weight float64) bool) {
	t.summary.ForEach(f)
}

func (t TDigest) String() string {
	return fmt.Sprintf("TD<delta=%.2f, count=%g, centroids=%d>", t.delta, t.count, t.summary.Len())
}

func (t *TDigest) clone() *TDigest {
	return &TDigest{
		summary: t.summary.Clone(),
		count:   t.count,
		delta:   t.delta,
		rng:     t.rng,
	}
}

// update folds one observation into the digest in place. Public entry
// points clone first so callers never observe aliasing between digests.
func (t *TDigest) update(value, weight float64) {
	t.count += weight
	t.summary.insert(t.count, value, weight, t.delta)
}

// Percentile returns the approximate value at rank p. It panics if p
// is outside [0,1] and returns NaN on an empty digest. p=0 and p=1
// yield the smallest and largest centroid means, which for unit-weight
// observations are the exact minimum and maximum.
func (t *TDigest) Percentile(p float64) float64 {
	if p < 0 || p > 1 {
		panic("t-digest: percentile must be between 0 and 1 (inclusive)")
	}

	n := t.summary.Len()
	if n == 0 {
		return math.NaN()
	}
	if p == 0 {
		return t.summary.Mean(0)
	}
	if p == 1 {
		// Symmetric to p=0 on the reversed centroid order.
		return t.summary.Mean(n - 1)
	}

	var acc float64
	for i := 0; i+1 < n; i++ {
		w1, w2 := t.summary.Weight(i), t.summary.Weight(i+1)
		q1 := (acc + w1/2) / t.count
		q2 := (acc + w1 + w2/2) / t.count

		if p < q1 {
			return t.summary.Mean(i)
		}
		if q1 < p && p < q2 {
			v1, v2 := t.summary.Mean(i), t.summary.Mean(i+1)
			return v1 + (v2-v1)/(q2-q1)*(p-q1)
		}
		acc += w1
	}
	return t.summary.Mean(n - 1)
}

// Quantile returns the approximate rank of value as a probability in
// [0,1]. An empty digest yields 0.
func (t *TDigest) Quantile(value float64) float64 {
	n := t.summary.Len()
	if n == 0 {
		return 0
	}
	if value < t.summary.Mean(0) {
		return 0
	}

	var acc float64
	for i := 0; i+1 < n; i++ {
		v1, v2 := t.summary.Mean(i), t.summary.Mean(i+1)
		if v1 <= value && value <= v2 {
			w1, w2 := t.summary.Weight(i), t.summary.Weight(i+1)
			q1 := (acc + w1/2) / t.count
			q2 := (acc + w1 + w2/2) / t.count
			return q1 + (q2-q1)/(v2-v1)*(value-v1)
		}
		acc += t.summary.Weight(i)
	}
	return (acc + t.summary.Weight(n-1)) / t.count
}

// Compress rebuilds the digest by re-inserting its own centroids in
// random order, which typically shrinks the centroid count with no
// material accuracy loss. Insertion order matters because the size
// limit depends on a centroid's rank: strictly ascending input defeats
// merging entirely, and shuffling breaks that pathology. The resulting
// count is rounded to the nearest integer to correct floating point
// drift accumulated across merges.
func (t *TDigest) Compress() *TDigest {
	data := t.summary.Data()
	shuffle(data, t.rng)

	out := &TDigest{
		summary: newSummary(len(data)),
		delta:   t.delta,
		rng:     t.rng,
	}
	for _, c := range data {
		out.update(c.mean, c.weight)
	}
	out.count = math.Round(out.count)
	return out
}

func shuffle(data []centroid, rng RNG) {
	for i := len(data) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		data[i], data[j] = data[j], data[i]
	}
}
