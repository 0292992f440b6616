package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Defined returns a copy of values with NaN entries removed.
func Defined(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Min returns the minimum defined value, or NaN when nothing is defined.
func Min(values []float64) float64 {
	defined := Defined(values)
	if len(defined) == 0 {
		return math.NaN()
	}
	return floats.Min(defined)
}

// Max returns the maximum defined value, or NaN when nothing is defined.
func Max(values []float64) float64 {
	defined := Defined(values)
	if len(defined) == 0 {
		return math.NaN()
	}
	return floats.Max(defined)
}

// Mean returns the arithmetic mean of the defined values, or NaN when
// nothing is defined.
func Mean(values []float64) float64 {
	defined := Defined(values)
	if len(defined) == 0 {
		return math.NaN()
	}
	return stat.Mean(defined, nil)
}

// Quantile returns the q-th quantile (0 <= q <= 1) of the defined values,
// or NaN when nothing is defined. It interpolates linearly between the
// order statistics bracketing position q*(n-1), the convention dataframe
// libraries use, so the median of {1,2,3,4} is 2.5.
func Quantile(values []float64, q float64) float64 {
	defined := Defined(values)
	if len(defined) == 0 {
		return math.NaN()
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	sort.Float64s(defined)
	pos := q * float64(len(defined)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return defined[lo]*(1-frac) + defined[hi]*frac
}

// PercentileRank returns the percentage of defined values less than or
// equal to v, or NaN when nothing is defined.
func PercentileRank(values []float64, v float64) float64 {
	defined := Defined(values)
	if len(defined) == 0 {
		return math.NaN()
	}
	count := 0
	for _, d := range defined {
		if d <= v {
			count++
		}
	}
	return float64(count) / float64(len(defined)) * 100.0
}
