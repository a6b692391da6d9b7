package tdigest

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func summaryOf(cs ...centroid) *summary {
	s := newSummary(len(cs))
	for _, c := range cs {
		s.insertAt(s.Len(), c.mean, c.weight)
	}
	return s
}

func checkSorted(s *summary, t *testing.T) {
	t.Helper()
	if !sort.Float64sAreSorted(s.means) {
		t.Fatalf("Means are not sorted! %v", s.means)
	}
}

func TestInsertIntoEmpty(t *testing.T) {
	s := newSummary(0)
	s.insert(0, 1.5, 1, 0.1)
	assertCentroids(t, s.Data(), []centroid{{1.5, 1}})
}

func TestInsertBeforeFirst(t *testing.T) {
	// Values below the first mean always prepend, no merging.
	s := summaryOf(centroid{1.5, 1}, centroid{10, 1})
	s.insert(2, 1, 1, 0.1)
	assertCentroids(t, s.Data(), []centroid{{1, 1}, {1.5, 1}, {10, 1}})
}

func TestInsertAfterLast(t *testing.T) {
	s := summaryOf(centroid{1.5, 1})
	s.insert(1, 10, 1, 0.1)
	assertCentroids(t, s.Data(), []centroid{{1.5, 1}, {10, 1}})
}

func TestInsertBracketedLeft(t *testing.T) {
	// 5 is strictly closer to 1.5 than to 10, so the left centroid is
	// chosen; delta=0 forces a split.
	s := summaryOf(centroid{1.5, 1}, centroid{10, 1})
	s.insert(2, 5, 1, 0)
	assertCentroids(t, s.Data(), []centroid{{1.5, 1}, {5, 1}, {10, 1}})
}

func TestInsertBracketedRight(t *testing.T) {
	s := summaryOf(centroid{1.5, 1}, centroid{10, 1})
	s.insert(2, 6, 1, 0)
	assertCentroids(t, s.Data(), []centroid{{1.5, 1}, {6, 1}, {10, 1}})
}

func TestInsertTieGoesRight(t *testing.T) {
	// Equidistant between 0 and 10: the right centroid absorbs it.
	s := summaryOf(centroid{0, 1}, centroid{10, 1})
	s.insert(3, 5, 1, 1)
	checkSorted(s, t)

	if s.Len() != 2 {
		t.Fatalf("Expected the right centroid to absorb the value: %v", s.Data())
	}
	if s.Mean(0) != 0 {
		t.Errorf("The left centroid should be untouched. Got %v", s.Data())
	}
	if s.Mean(1) != 7.5 || s.Weight(1) != 2 {
		t.Errorf("Expected right centroid {7.5, 2}, got %v", s.Data())
	}
}

func TestInsertEqualMeanMergesFully(t *testing.T) {
	s := summaryOf(centroid{1.5, 1})
	s.insert(1, 1.5, 2, 0.1)
	assertCentroids(t, s.Data(), []centroid{{1.5, 3}})

	s = summaryOf(centroid{1, 1}, centroid{2, 1}, centroid{3, 1})
	s.insert(3, 2, 1, 0.1)
	assertCentroids(t, s.Data(), []centroid{{1, 1}, {2, 2}, {3, 1}})
}

func TestStoreInvariants(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(0xDEADBEEF))

	const delta = 0.1
	s := newSummary(0)
	var count float64

	for i := 0; i < 5000; i++ {
		count++
		s.insert(count, r.Float64(), 1, delta)
	}

	checkSorted(s, t)

	if math.Abs(s.totalWeight()-count) > 1e-9 {
		t.Errorf("Weight not conserved: total=%v count=%v", s.totalWeight(), count)
	}

	// No committed duplicates, no empty centroids, and no centroid past
	// the global bound of the size limit.
	maxWeight := math.Max(1, math.Floor(count*delta))
	for i := 0; i < s.Len(); i++ {
		if i > 0 && s.Mean(i) == s.Mean(i-1) {
			t.Fatalf("Duplicate mean committed at %d: %v", i, s.Mean(i))
		}
		if s.Weight(i) <= 0 {
			t.Fatalf("Non-positive weight at %d: %v", i, s.Weight(i))
		}
		if s.Weight(i) > maxWeight {
			t.Fatalf("Centroid %d exceeds the size limit bound: %v > %v", i, s.Weight(i), maxWeight)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := summaryOf(centroid{1, 1}, centroid{2, 1})
	c := s.Clone()

	c.insert(3, 2.5, 1, 0.1)

	if s.Len() != 2 {
		t.Errorf("Mutating a clone changed the original: %v", s.Data())
	}
	if s.totalWeight() != 2 {
		t.Errorf("Original weight changed: %v", s.totalWeight())
	}
}
