// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarmodel

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/gonum/vecstat/internal/specfun"
)

// Composite is a weighted mixture of Models. k=1 (len(Components)==1)
// represents an equivalent "wrapped"
// simple model. Moments are computed via the total-mean/variance/skew/
// kurtosis decomposition, the same style of algebraic combination
// moment.Combine uses for the parallel moment-combine law, generalized
// from a two-way combine to a weighted K-way combine.
type Composite struct {
	Components []Model
	Weights    []float64
}

func (c Composite) Kind() Kind { return KindComposite }

func (c Composite) PDF(x float64) float64 {
	var sum float64
	for i, comp := range c.Components {
		sum += c.Weights[i] * comp.PDF(x)
	}
	return sum
}

func (c Composite) CDF(x float64) float64 {
	var sum float64
	for i, comp := range c.Components {
		sum += c.Weights[i] * comp.CDF(x)
	}
	return sum
}

func (c Composite) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, comp := range c.Components {
		m, sd := comp.Mean(), math.Sqrt(comp.Variance())
		l, h := m-20*sd, m+20*sd
		if l < lo {
			lo = l
		}
		if h > hi {
			hi = h
		}
	}
	return lo, hi
}

func (c Composite) Quantile(p float64) float64 {
	lo, hi := c.bounds()
	return specfun.BisectQuantile(c.CDF, p, lo, hi)
}

// Sample picks a component by weight, then samples from it.
func (c Composite) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	var cum float64
	for i, w := range c.Weights {
		cum += w
		if u <= cum || i == len(c.Weights)-1 {
			return c.Components[i].Sample(rng)
		}
	}
	return c.Components[len(c.Components)-1].Sample(rng)
}

func (c Composite) Mean() float64 {
	var mean float64
	for i, comp := range c.Components {
		mean += c.Weights[i] * comp.Mean()
	}
	return mean
}

// Variance combines per-component variance with the between-component
// mean dispersion: Var = Σ w_i (σ_i² + (μ_i-μ)²).
func (c Composite) Variance() float64 {
	mean := c.Mean()
	var v float64
	for i, comp := range c.Components {
		delta := comp.Mean() - mean
		v += c.Weights[i] * (comp.Variance() + delta*delta)
	}
	return v
}

// Skewness combines per-component third central moments (recovered from
// each component's own skewness and variance) the way moment.Combine
// decomposes a two-way M3 combine, generalized to K weighted components.
func (c Composite) Skewness() float64 {
	mean := c.Mean()
	variance := c.Variance()
	if variance <= 0 {
		return 0
	}
	sigma := math.Sqrt(variance)
	var m3 float64
	for i, comp := range c.Components {
		delta := comp.Mean() - mean
		compSigma := math.Sqrt(comp.Variance())
		compM3 := comp.Skewness() * compSigma * compSigma * compSigma
		m3 += c.Weights[i] * (compM3 + 3*delta*comp.Variance() + delta*delta*delta)
	}
	return m3 / (sigma * sigma * sigma)
}

// Kurtosis combines per-component fourth central moments analogously to
// Skewness, returning the raw (not excess) kurtosis.
func (c Composite) Kurtosis() float64 {
	mean := c.Mean()
	variance := c.Variance()
	if variance <= 0 {
		return 3
	}
	var m4 float64
	for i, comp := range c.Components {
		delta := comp.Mean() - mean
		compVar := comp.Variance()
		compM3 := comp.Skewness() * compVar * math.Sqrt(compVar)
		compM4 := comp.Kurtosis() * compVar * compVar
		m4 += c.Weights[i] * (compM4 + 4*delta*compM3 + 6*delta*delta*compVar + delta*delta*delta*delta)
	}
	return m4 / (variance * variance)
}

// Normalize rescales Weights to sum to 1, leaving the relative proportions
// unchanged. Used after EM weight estimates may have drifted slightly from
// exact normalization due to floating point accumulation.
func (c Composite) Normalize() Composite {
	var total float64
	for _, w := range c.Weights {
		total += w
	}
	if total == 0 {
		return c
	}
	weights := make([]float64, len(c.Weights))
	for i, w := range c.Weights {
		weights[i] = w / total
	}
	return Composite{Components: c.Components, Weights: weights}
}

// SortByMean reorders components (and their weights in lockstep) by
// ascending mean, giving composite models emitted from independent EM runs
// a canonical, comparable ordering.
func (c Composite) SortByMean() Composite {
	idx := make([]int, len(c.Components))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return c.Components[idx[i]].Mean() < c.Components[idx[j]].Mean()
	})
	comps := make([]Model, len(idx))
	weights := make([]float64, len(idx))
	for newPos, oldPos := range idx {
		comps[newPos] = c.Components[oldPos]
		weights[newPos] = c.Weights[oldPos]
	}
	return Composite{Components: comps, Weights: weights}
}
