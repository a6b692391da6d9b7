package tdigest

import (
	"errors"
	"math"
)

// Input normalization: each entry point reduces its input shape to a
// stream of single (value, weight) insertions against a private clone,
// so callers never observe partial updates.

var (
	errNonFiniteValue = errors.New("value may not be NaN or Inf")
	errInvalidWeight  = errors.New("weight must be a number >= 0")
)

// Add returns a new digest with value folded in at weight 1.
func (t *TDigest) Add(value float64) (*TDigest, error) {
	return t.AddWeighted(value, 1)
}

// AddWeighted returns a new digest with one weighted observation folded
// in. A weight of zero is a no-op and returns the receiver unchanged.
func (t *TDigest) AddWeighted(value, weight float64) (*TDigest, error) {
	if err := checkObservation(value, weight); err != nil {
		return nil, err
	}
	if weight == 0 {
		return t, nil
	}
	out := t.clone()
	out.update(value, weight)
	return out, nil
}

// AddValues returns a new digest with every value folded in at weight
// 1, in the order given.
func (t *TDigest) AddValues(values ...float64) (*TDigest, error) {
	for _, value := range values {
		if err := checkObservation(value, 1); err != nil {
			return nil, err
		}
	}
	out := t.clone()
	for _, value := range values {
		out.update(value, 1)
	}
	return out, nil
}

// AddRange returns a new digest with every integer in the inclusive
// interval [from, to] folded in at weight 1. A descending interval is
// materialized downward.
func (t *TDigest) AddRange(from, to int) *TDigest {
	out := t.clone()
	step := 1
	if to < from {
		step = -1
	}
	for i := from; ; i += step {
		out.update(float64(i), 1)
		if i == to {
			break
		}
	}
	return out
}

// Merge returns a new digest with every centroid of other re-inserted
// as a weighted observation. This approximates a structural merge at
// the cost of one full insertion per centroid of other. The centroids
// are shuffled first, since re-inserting them in ascending order would
// defeat merging the same way strictly ascending input does.
func (t *TDigest) Merge(other *TDigest) *TDigest {
	if other == nil || other.summary.Len() == 0 {
		return t
	}
	out := t.clone()
	data := other.summary.Data()
	shuffle(data, out.rng)
	for _, c := range data {
		out.update(c.mean, c.weight)
	}
	return out
}

func checkObservation(value, weight float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errNonFiniteValue
	}
	if math.IsNaN(weight) || weight < 0 {
		return errInvalidWeight
	}
	return nil
}
