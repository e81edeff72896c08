// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarmodel

import (
	"math"
	"math/rand/v2"
)

// Empirical is a histogram model: bin edges and per-bin counts within
// [Min, Max], the terminal fallback of the adaptive pipeline when no
// parametric or composite fit is acceptable.
type Empirical struct {
	// Edges has len(Counts)+1 entries, Edges[0]==Min, Edges[last]==Max.
	Edges []float64
	// Counts[i] is the number of observations in [Edges[i], Edges[i+1]);
	// the last bin also counts observations equal to Edges[last].
	Counts []int64
}

// NewEmpirical builds an Empirical histogram with the given bin count over
// sorted values.
func NewEmpirical(sortedValues []float64, bins int) Empirical {
	n := len(sortedValues)
	if n == 0 || bins <= 0 {
		return Empirical{}
	}
	lo, hi := sortedValues[0], sortedValues[n-1]
	if hi == lo {
		hi = lo + 1e-9
	}
	edges := make([]float64, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + step*float64(i)
	}
	edges[bins] = hi

	counts := make([]int64, bins)
	for _, v := range sortedValues {
		idx := int((v - lo) / step)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return Empirical{Edges: edges, Counts: counts}
}

func (e Empirical) Kind() Kind { return KindEmpirical }

func (e Empirical) total() int64 {
	var t int64
	for _, c := range e.Counts {
		t += c
	}
	return t
}

func (e Empirical) PDF(x float64) float64 {
	if len(e.Counts) == 0 {
		return 0
	}
	bin := e.binOf(x)
	if bin < 0 {
		return 0
	}
	width := e.Edges[bin+1] - e.Edges[bin]
	if width <= 0 {
		return 0
	}
	return float64(e.Counts[bin]) / float64(e.total()) / width
}

func (e Empirical) binOf(x float64) int {
	n := len(e.Edges)
	if n == 0 || x < e.Edges[0] || x > e.Edges[n-1] {
		return -1
	}
	lo, hi := 0, n-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.Edges[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (e Empirical) CDF(x float64) float64 {
	n := len(e.Edges)
	if n == 0 {
		return 0
	}
	if x <= e.Edges[0] {
		return 0
	}
	if x >= e.Edges[n-1] {
		return 1
	}
	total := float64(e.total())
	bin := e.binOf(x)
	var cum int64
	for i := 0; i < bin; i++ {
		cum += e.Counts[i]
	}
	frac := (x - e.Edges[bin]) / (e.Edges[bin+1] - e.Edges[bin])
	return (float64(cum) + frac*float64(e.Counts[bin])) / total
}

func (e Empirical) Quantile(p float64) float64 {
	n := len(e.Edges)
	if n == 0 {
		return math.NaN()
	}
	total := float64(e.total())
	target := p * total
	var cum float64
	for i, c := range e.Counts {
		next := cum + float64(c)
		if target <= next || i == len(e.Counts)-1 {
			if c == 0 {
				return e.Edges[i]
			}
			frac := (target - cum) / float64(c)
			return e.Edges[i] + frac*(e.Edges[i+1]-e.Edges[i])
		}
		cum = next
	}
	return e.Edges[n-1]
}

func (e Empirical) Sample(rng *rand.Rand) float64 {
	return e.Quantile(rng.Float64())
}

func (e Empirical) Mean() float64 {
	total := float64(e.total())
	if total == 0 {
		return 0
	}
	var sum float64
	for i, c := range e.Counts {
		mid := (e.Edges[i] + e.Edges[i+1]) / 2
		sum += mid * float64(c)
	}
	return sum / total
}

func (e Empirical) centralMoment(order int) float64 {
	mean := e.Mean()
	total := float64(e.total())
	if total == 0 {
		return 0
	}
	var sum float64
	for i, c := range e.Counts {
		mid := (e.Edges[i]+e.Edges[i+1])/2 - mean
		sum += math.Pow(mid, float64(order)) * float64(c)
	}
	return sum / total
}

func (e Empirical) Variance() float64 { return e.centralMoment(2) }

func (e Empirical) Skewness() float64 {
	v := e.Variance()
	if v == 0 {
		return 0
	}
	sigma := math.Sqrt(v)
	return e.centralMoment(3) / (sigma * sigma * sigma)
}

func (e Empirical) Kurtosis() float64 {
	v := e.Variance()
	if v == 0 {
		return 3
	}
	return e.centralMoment(4) / (v * v)
}
