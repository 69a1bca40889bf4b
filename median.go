package genbranch

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// numeric tolerances of the separation core.
const (
	// eps bounds equality of generator entries and bound values.
	eps = 1e-9

	// feasTol bounds the integrality test on aggregated column weights.
	feasTol = 1e-6
)

// fractional reports whether x has a non-zero fractional part within feasTol.
func fractional(x float64) bool {
	f := x - math.Floor(x)
	return f > feasTol && f < 1-feasTol
}

// medianOf returns the statistical median of values, destructively
// reordering the slice. min must be the minimum of values.
//
// When the selected median equals min, the ceiling of the arithmetic mean is
// returned instead: a median at the minimum would leave the below-median side
// of a subsequent split empty.
func medianOf(values []float64, min float64) float64 {
	if len(values) == 0 {
		panic("medianOf called on empty value slice")
	}

	// middle index: n/2 for even counts, n/2-1 for odd ones. The asymmetry
	// decides which side of a split receives the median element itself.
	idx := len(values) / 2
	if len(values)%2 != 0 {
		idx = len(values)/2 - 1
	}
	if idx < 0 {
		idx = 0
	}

	median := selectIndex(values, idx)

	if scalar.EqualWithinAbs(median, min, eps) {
		median = math.Ceil(floats.Sum(values) / float64(len(values)))
	}

	return median
}

// selectIndex places the k-th smallest element of values at index k via
// Hoare's partition-based selection and returns it.
func selectIndex(values []float64, k int) float64 {
	lo := 0
	hi := len(values) - 1

	for lo < hi {
		pivot := values[lo+(hi-lo)/2]
		i := lo - 1
		j := hi + 1
		for {
			for {
				i++
				if values[i] >= pivot {
					break
				}
			}
			for {
				j--
				if values[j] <= pivot {
					break
				}
			}
			if i >= j {
				break
			}
			values[i], values[j] = values[j], values[i]
		}

		if k <= j {
			hi = j
		} else {
			lo = j + 1
		}
	}

	return values[k]
}
