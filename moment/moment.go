// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package moment accumulates the first four central moments of a
// dimension's values: a two-pass closed-form accumulator for in-memory
// data, a one-pass online Welford accumulator for streaming data, and an
// algebraically sound parallel combine operator over their immutable
// summaries.
package moment

import (
	"math"
	"sync"

	"github.com/gonum/vecstat/internal/xfloats"
)

// Stats is DimensionStatistics: an immutable per-dimension summary. Values
// are never mutated after construction; combining two Stats produces a new
// Stats.
type Stats struct {
	Dim      int
	Count    int64
	Min      float64
	Max      float64
	Mean     float64
	M2       float64 // sum of squared deviations from Mean
	M3       float64 // sum of cubed deviations from Mean
	M4       float64 // sum of 4th-power deviations from Mean
}

// Variance returns M2/Count, or 0 if Count is 0.
func (s Stats) Variance() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.M2 / float64(s.Count)
}

// StdDev returns the standard deviation, derived lazily from Variance.
func (s Stats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Skewness returns the (biased) sample skewness, or 0 when the variance is
// zero (a constant sample has no asymmetry to report).
func (s Stats) Skewness() float64 {
	sigma := s.StdDev()
	if s.Count == 0 || sigma == 0 {
		return 0
	}
	return (s.M3 / float64(s.Count)) / (sigma * sigma * sigma)
}

// Kurtosis returns the raw (not excess) kurtosis, or 3 (the Normal
// baseline) when the variance is zero.
func (s Stats) Kurtosis() float64 {
	v := s.Variance()
	if s.Count == 0 || v == 0 {
		return 3
	}
	return (s.M4 / float64(s.Count)) / (v * v)
}

// TwoPass computes Stats for dim over values using a closed-form two-pass
// algorithm: a first pass for min/max/mean, a second pass for the
// central-moment sums. Use this when the full slice fits in memory.
func TwoPass(dim int, values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{Dim: dim}
	}
	min, max := values[0], values[0]
	var sum float64
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(n)

	var m2, m3, m4 float64
	for _, v := range values {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	return Stats{
		Dim: dim, Count: int64(n), Min: min, Max: max, Mean: mean,
		M2: m2, M3: m3, M4: m4,
	}
}

// OnlineAccumulator is a one-pass streaming moment accumulator, updated via
// the extended Welford recurrence. It is safe for concurrent use: Add is
// protected by a mutex.
type OnlineAccumulator struct {
	dim int

	mu    sync.Mutex
	count int64
	mean  float64
	m2    float64
	m3    float64
	m4    float64
	min   float64
	max   float64
}

// NewOnlineAccumulator returns an accumulator for dimension dim with no
// values seen yet.
func NewOnlineAccumulator(dim int) *OnlineAccumulator {
	return &OnlineAccumulator{dim: dim, min: math.Inf(1), max: math.Inf(-1)}
}

// Add folds x into the running moments using the extended Welford update.
// The update order (M4 before M3 before M2 before mean) is required
// because later terms in the M4/M3 updates reference the pre-update
// M2/M3/mean.
func (a *OnlineAccumulator) Add(x float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := float64(a.count)
	nPrime := n + 1
	delta := x - a.mean
	deltaN := delta / nPrime
	deltaN2 := deltaN * deltaN
	t := delta * deltaN * n

	a.m4 += t*deltaN2*(nPrime*nPrime-3*nPrime+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
	a.m3 += t*deltaN*(nPrime-2) - 3*deltaN*a.m2
	a.m2 += t
	a.mean += deltaN

	a.count++
	if x < a.min {
		a.min = x
	}
	if x > a.max {
		a.max = x
	}
}

// Stats returns the current immutable summary. Calling Stats concurrently
// with Add is safe but the returned snapshot may not reflect an in-flight
// Add.
func (a *OnlineAccumulator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.count == 0 {
		return Stats{Dim: a.dim}
	}
	return Stats{
		Dim: a.dim, Count: a.count, Min: a.min, Max: a.max, Mean: a.mean,
		M2: a.m2, M3: a.m3, M4: a.m4,
	}
}

// Combine merges two Stats for the same dimension using Chan-Golub-LeVeque
// parallel moment combination. Combine panics if a and b are both
// non-empty and carry different Dim values, since summaries for different
// dimensions must never combine.
// Combine is associative and commutative up to floating-point rounding; an
// empty-side combine (Count == 0) returns the other side unchanged.
func Combine(a, b Stats) Stats {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}
	if a.Dim != b.Dim {
		panic("moment: cannot combine statistics for different dimensions")
	}

	na, nb := float64(a.Count), float64(b.Count)
	n := na + nb
	delta := b.Mean - a.Mean

	mean := a.Mean + delta*nb/n
	m2 := a.M2 + b.M2 + delta*delta*na*nb/n
	m3 := a.M3 + b.M3 +
		delta*delta*delta*na*nb*(na-nb)/(n*n) +
		3*delta*(na*b.M2-nb*a.M2)/n
	m4 := a.M4 + b.M4 +
		delta*delta*delta*delta*na*nb*(na*na-na*nb+nb*nb)/(n*n*n) +
		6*delta*delta*(na*na*b.M2+nb*nb*a.M2)/(n*n) +
		4*delta*(na*b.M3-nb*a.M3)/n

	min := a.Min
	if b.Min < min {
		min = b.Min
	}
	max := a.Max
	if b.Max > max {
		max = b.Max
	}

	return Stats{
		Dim: a.Dim, Count: a.Count + b.Count, Min: min, Max: max, Mean: mean,
		M2: m2, M3: m3, M4: m4,
	}
}

// CombineAll folds Combine over a non-empty slice of Stats, left to right.
// Per the combine law, the result is the same (within floating-point
// tolerance) regardless of fold order or tree shape.
func CombineAll(stats []Stats) Stats {
	if len(stats) == 0 {
		return Stats{}
	}
	acc := stats[0]
	for _, s := range stats[1:] {
		acc = Combine(acc, s)
	}
	return acc
}

// ValidateFinite reports whether every value is finite (not NaN or ±Inf).
// Callers that accumulate moments over external input should check this
// first: a non-finite value leaves Min/Max/Mean and every higher moment
// undefined for the rest of the accumulation.
func ValidateFinite(values []float64) bool {
	return xfloats.AllFinite(values)
}
