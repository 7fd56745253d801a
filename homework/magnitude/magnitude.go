// Package magnitude sorts numbers by absolute value.
package magnitude

import (
	"math"
	"slices"
)

// Sort orders v in place by increasing absolute value and returns it.
// Values of equal magnitude keep their relative order.
func Sort(v []float64) []float64 {
	slices.SortStableFunc(v, func(a, b float64) int {
		x, y := math.Abs(a), math.Abs(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})
	return v
}
