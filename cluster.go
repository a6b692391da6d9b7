package tdigest

type centroid struct {
	mean   float64
	weight float64
}

// clusterAdd folds a weighted observation into a single centroid,
// subject to limit. The result replaces the input centroid: either one
// merged centroid, or - when the limit would be exceeded - the merged
// centroid plus a spill-over centroid at value holding the weight that
// did not fit, sorted by mean.
func clusterAdd(c centroid, value, weight, limit float64) []centroid {
	if value == c.mean {
		return []centroid{{mean: c.mean, weight: c.weight + weight}}
	}

	if c.weight+weight <= limit {
		total := c.weight + weight
		mean := (c.mean*c.weight + value*weight) / total
		return []centroid{{mean: mean, weight: total}}
	}

	used := limit - c.weight
	if used < 0 {
		used = 0
	}
	rem := weight - used

	total := c.weight + used
	merged := centroid{mean: (c.mean*c.weight + value*used) / total, weight: total}
	spill := centroid{mean: value, weight: rem}

	if spill.mean < merged.mean {
		return []centroid{spill, merged}
	}
	return []centroid{merged, spill}
}
