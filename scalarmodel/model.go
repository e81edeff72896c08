// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalarmodel defines Model: the tagged family of parametric and
// empirical distributions over ℝ that the fitter suite produces, plus
// Composite, the weighted mixture of Models the composite fitter produces.
// Each variant's PDF/CDF/Quantile formulas are grounded on
// gonum.org/v1/gonum/stat/distuv's closed-form implementations
// (distuv.Normal, distuv.Gamma, distuv.Beta, distuv.StudentsT),
// generalized with location/scale/truncation extensions and the
// Inverse-Gamma/Pearson-IV/Empirical variants this package additionally
// needs. Variants are a closed Go sum type (an interface implemented only
// by this package's own structs) rather than an open interface with
// dynamic dispatch on a type string; Kind is the stable string tag kept
// only for external serialization.
package scalarmodel

import "math/rand/v2"

// Kind tags a Model variant, kept stable for external (de)serialization.
type Kind int

const (
	KindNormal Kind = iota
	KindUniform
	KindBeta
	KindGamma
	KindInverseGamma
	KindStudentT
	KindPearsonIV
	KindEmpirical
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindUniform:
		return "uniform"
	case KindBeta:
		return "beta"
	case KindGamma:
		return "gamma"
	case KindInverseGamma:
		return "inverse-gamma"
	case KindStudentT:
		return "student-t"
	case KindPearsonIV:
		return "pearson-iv"
	case KindEmpirical:
		return "empirical"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Model is a scalar probability distribution over ℝ. Every variant in this
// package implements Model; CDF is guaranteed monotone nondecreasing with
// CDF(-inf)=0 and CDF(+inf)=1.
type Model interface {
	// Kind reports the variant tag.
	Kind() Kind
	// PDF returns the probability (or mixture) density at x.
	PDF(x float64) float64
	// CDF returns P(X <= x).
	CDF(x float64) float64
	// Quantile returns the inverse CDF at u, u in [0,1].
	Quantile(u float64) float64
	// Sample draws one value from the distribution using rng.
	Sample(rng *rand.Rand) float64
	// Mean returns the first raw moment.
	Mean() float64
	// Variance returns the second central moment.
	Variance() float64
	// Skewness returns the third standardized central moment.
	Skewness() float64
	// Kurtosis returns the fourth standardized central moment (raw, not
	// excess; the Normal baseline is 3, matching moment.Stats).
	Kurtosis() float64
}

// clampEps floors v to eps when v is smaller, guarding against a division
// by a near-zero estimate (e.g. sigma := max(stats.StdDev(), eps)).
func clampEps(v, eps float64) float64 {
	if v < eps {
		return eps
	}
	return v
}

const defaultEps = 1e-9
