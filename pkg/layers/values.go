// Package layers works on per-layer soil arrays: missing value handling and
// remapping between depth (thickness) schemes.
package layers

import "math"

// Missing returns the marker used for a missing layer value.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// HasValues reports whether values holds at least one real (non-missing) entry.
func HasValues(values []float64) bool {
	for _, v := range values {
		if !IsMissing(v) {
			return true
		}
	}
	return false
}

// Filled returns a slice of n copies of v.
func Filled(n int, v float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Resize returns a copy of values with exactly n entries, padding with missing values.
func Resize(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	copied := copy(out, values)
	for i := copied; i < n; i++ {
		out[i] = Missing()
	}
	return out
}

// Last returns the last real value in values, or def when there is none.
func Last(values []float64, def float64) float64 {
	for i := len(values) - 1; i >= 0; i-- {
		if !IsMissing(values[i]) {
			return values[i]
		}
	}
	return def
}
