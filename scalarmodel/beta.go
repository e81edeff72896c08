// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarmodel

import (
	"math"
	"math/rand/v2"

	"github.com/gonum/vecstat/internal/specfun"
)

// Beta is the four-parameter Beta distribution rescaled onto
// [Lower, Upper], grounded on gonum.org/v1/gonum/distuv.Beta's LogProb
// formula (Lgamma-based) generalized with a location/scale rescaling onto
// an arbitrary bounded interval.
type Beta struct {
	Alpha, Beta  float64
	Lower, Upper float64
}

func (b Beta) Kind() Kind { return KindBeta }

func (b Beta) width() float64 { return b.Upper - b.Lower }

func (b Beta) standardize(x float64) float64 { return (x - b.Lower) / b.width() }

func (b Beta) PDF(x float64) float64 {
	if x < b.Lower || x > b.Upper {
		return 0
	}
	t := b.standardize(x)
	if t == 0 || t == 1 {
		// At the boundary, return +Inf where the shape parameter on
		// that side is below 1 (the density diverges there) and 0
		// otherwise.
		if (b.Alpha < 1 && t == 0) || (b.Beta < 1 && t == 1) {
			return math.Inf(1)
		}
		return 0
	}
	lgab, _ := math.Lgamma(b.Alpha + b.Beta)
	lga, _ := math.Lgamma(b.Alpha)
	lgb, _ := math.Lgamma(b.Beta)
	logPdf := lgab - lga - lgb + (b.Alpha-1)*math.Log(t) + (b.Beta-1)*math.Log(1-t)
	return math.Exp(logPdf) / b.width()
}

func (b Beta) CDF(x float64) float64 {
	if x <= b.Lower {
		return 0
	}
	if x >= b.Upper {
		return 1
	}
	return specfun.RegIncBeta(b.Alpha, b.Beta, b.standardize(x))
}

func (b Beta) Quantile(p float64) float64 {
	t := specfun.BisectQuantile(func(t float64) float64 {
		return specfun.RegIncBeta(b.Alpha, b.Beta, t)
	}, p, 0, 1)
	return b.Lower + t*b.width()
}

func (b Beta) Sample(rng *rand.Rand) float64 {
	// Gamma-ratio method: X/(X+Y) ~ Beta(a,b) for independent
	// X~Gamma(a,1), Y~Gamma(b,1).
	x := sampleStandardGamma(rng, b.Alpha)
	y := sampleStandardGamma(rng, b.Beta)
	t := x / (x + y)
	return b.Lower + t*b.width()
}

func (b Beta) Mean() float64 {
	return b.Lower + b.standardMean()*b.width()
}

func (b Beta) standardMean() float64 { return b.Alpha / (b.Alpha + b.Beta) }

func (b Beta) Variance() float64 {
	a, be := b.Alpha, b.Beta
	v := (a * be) / ((a + be) * (a + be) * (a + be + 1))
	return v * b.width() * b.width()
}

func (b Beta) Skewness() float64 {
	a, be := b.Alpha, b.Beta
	return 2 * (be - a) * math.Sqrt(a+be+1) / ((a + be + 2) * math.Sqrt(a*be))
}

func (b Beta) Kurtosis() float64 {
	a, be := b.Alpha, b.Beta
	num := 6 * (math.Pow(a-be, 2)*(a+be+1) - a*be*(a+be+2))
	den := a * be * (a + be + 2) * (a + be + 3)
	return 3 + num/den // convert excess to raw
}
