// Package progression implements the rule-based target computation
// engine: per-kind next-target calculation, pain/effort safety
// guardrails, and the statistics aggregation behind the analytics views.
// Everything here is a pure function of (exercise, logs, now, profile);
// the current time is always passed in, never read from the clock.
package progression

import (
	"math"
	"sort"
)

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Median returns the median of values, or 0 for empty input. For
// even-length input it averages the two middle elements. The input
// slice is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Average returns the arithmetic mean of values, or 0 for empty input.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// EstimateOneRepMax estimates the single-repetition maximum from a
// higher-repetition set using the Epley approximation.
func EstimateOneRepMax(reps int, loadKg float64) float64 {
	return loadKg * (1 + float64(reps)/30)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
