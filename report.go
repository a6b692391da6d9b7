package tdigest

import "fmt"

// Report is a point-in-time diagnostic snapshot of a digest: its size,
// compression parameter and a fixed set of percentiles. It is meant
// for human inspection and is not part of the algorithmic contract.
type Report struct {
	Count     float64
	Centroids int
	Delta     float64

	P1, P5, P25, P50, P75, P95, P99 float64
}

// Report builds a diagnostic snapshot. On an empty digest every
// percentile field is NaN.
func (t *TDigest) Report() Report {
	return Report{
		Count:     t.count,
		Centroids: t.summary.Len(),
		Delta:     t.delta,
		P1:        t.Percentile(0.01),
		P5:        t.Percentile(0.05),
		P25:       t.Percentile(0.25),
		P50:       t.Percentile(0.50),
		P75:       t.Percentile(0.75),
		P95:       t.Percentile(0.95),
		P99:       t.Percentile(0.99),
	}
}

func (r Report) String() string {
	return fmt.Sprintf(
		"count=%g centroids=%d delta=%.2f p1=%g p5=%g p25=%g p50=%g p75=%g p95=%g p99=%g",
		r.Count, r.Centroids, r.Delta, r.P1, r.P5, r.P25, r.P50, r.P75, r.P95, r.P99)
}
