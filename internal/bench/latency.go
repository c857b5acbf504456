package bench

import (
	"slices"
	"time"
)

// LatencyStats summarizes the successful calls of one case.
type LatencyStats struct {
	Samples int           `json:"samples"`
	Min     time.Duration `json:"min"`
	Max     time.Duration `json:"max"`
	Mean    time.Duration `json:"mean"`
	P50     time.Duration `json:"p50"`
	P90     time.Duration `json:"p90"`
	P95     time.Duration `json:"p95"`
	P99     time.Duration `json:"p99"`
}

// Summarize leaves durations untouched.
func Summarize(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}

	sorted := slices.Clone(durations)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return LatencyStats{
		Samples: len(sorted),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Mean:    total / time.Duration(len(sorted)),
		P50:     quantile(sorted, 0.50),
		P90:     quantile(sorted, 0.90),
		P95:     quantile(sorted, 0.95),
		P99:     quantile(sorted, 0.99),
	}
}

// quantile interpolates linearly between the two closest ranks of sorted.
func quantile(sorted []time.Duration, q float64) time.Duration {
	switch len(sorted) {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}

	rank := q * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + time.Duration(frac*float64(sorted[lo+1]-sorted[lo]))
}

func (s LatencyStats) IsZero() bool {
	return s.Samples == 0
}
