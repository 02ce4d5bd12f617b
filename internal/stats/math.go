// Package stats aggregates scenario populations into per-party figures.
package stats

import "slices"

// Number is the element type accepted by the aggregate helpers.
type Number interface {
	~int | ~float64
}

// Median returns the middle value, averaging the two central values for even
// counts. The input is not modified; no values yield 0.
func Median[T Number](values []T) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}

// Percentile returns the value at fraction p (0..1) of the sorted values,
// using the lower nearest rank. The input is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	idx := min(max(int(float64(len(sorted))*p), 0), len(sorted)-1)
	return sorted[idx]
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
