package tdigest

import (
	"math"
)

// summary is the ordered centroid store backing a digest: two parallel
// slices sorted ascending by mean. Mutation happens through insert,
// a left-to-right scan carrying a running prefix weight, so the
// floating point accumulation order is stable across runs.
type summary struct {
	means   []float64
	weights []float64
}

func newSummary(initialCapacity int) *summary {
	return &summary{
		means:   make([]float64, 0, initialCapacity),
		weights: make([]float64, 0, initialCapacity),
	}
}

func (s summary) Len() int {
	return len(s.means)
}

func (s summary) Mean(uncheckedIndex int) float64 {
	return s.means[uncheckedIndex]
}

func (s summary) Weight(uncheckedIndex int) float64 {
	return s.weights[uncheckedIndex]
}

func (s summary) Clone() *summary {
	return &summary{
		means:   append([]float64{}, s.means...),
		weights: append([]float64{}, s.weights...),
	}
}

// Data returns the centroids as a freestanding slice, safe for callers
// to reorder.
func (s summary) Data() []centroid {
	data := make([]centroid, len(s.means))
	for i := range s.means {
		data[i] = centroid{mean: s.means[i], weight: s.weights[i]}
	}
	return data
}

func (s summary) ForEach(f func(mean, weight float64) bool) {
	for i := 0; i < len(s.means); i++ {
		if !f(s.means[i], s.weights[i]) {
			break
		}
	}
}

func (s summary) totalWeight() float64 {
	var total float64
	for _, w := range s.weights {
		total += w
	}
	return total
}

// insert folds one weighted observation into the store. count is the
// total weight of the distribution the observation belongs to; together
// with delta it rules the size limit of the centroid chosen to absorb
// the observation.
func (s *summary) insert(count, value, weight, delta float64) {
	if s.Len() == 0 || value < s.means[0] {
		s.insertAt(0, value, weight)
		return
	}

	var prefix float64
	for i := 0; i+1 < s.Len(); i++ {
		v1, v2 := s.means[i], s.means[i+1]
		if v1 <= value && value <= v2 {
			// A value strictly closer to its left neighbor merges
			// left; equal distances resolve to the right neighbor.
			chosen := i + 1
			q := (prefix + s.weights[i] + s.weights[i+1]/2) / count
			if value-v1 < v2-value {
				chosen = i
				q = (prefix + s.weights[i]/2) / count
			}
			limit := sizeLimit(count, delta, q)
			c := centroid{mean: s.means[chosen], weight: s.weights[chosen]}
			s.replaceAt(chosen, clusterAdd(c, value, weight, limit))
			return
		}
		prefix += s.weights[i]
	}

	// Past the last centroid. An exact mean match merges fully instead
	// of committing a duplicate mean.
	last := s.Len() - 1
	if value == s.means[last] {
		s.weights[last] += weight
		return
	}
	s.insertAt(s.Len(), value, weight)
}

// sizeLimit is the position dependent centroid weight bound: small near
// the tails, largest at the median.
func sizeLimit(count, delta, q float64) float64 {
	limit := math.Floor(4 * count * delta * q * (1 - q))
	if limit < 1 {
		return 1
	}
	return limit
}

func (s *summary) insertAt(index int, mean, weight float64) {
	s.means = append(s.means, math.NaN())
	s.weights = append(s.weights, 0)

	copy(s.means[index+1:], s.means[index:])
	copy(s.weights[index+1:], s.weights[index:])

	s.means[index] = mean
	s.weights[index] = weight
}

// replaceAt splices cs (already sorted by mean) over the centroid at
// index.
func (s *summary) replaceAt(index int, cs []centroid) {
	s.means[index] = cs[0].mean
	s.weights[index] = cs[0].weight
	for j := 1; j < len(cs); j++ {
		s.insertAt(index+j, cs[j].mean, cs[j].weight)
	}
}
