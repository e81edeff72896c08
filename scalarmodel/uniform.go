// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarmodel

import "math/rand/v2"

// Uniform is the continuous uniform distribution on [Lower, Upper].
type Uniform struct {
	Lower, Upper float64
}

func (u Uniform) Kind() Kind { return KindUniform }

func (u Uniform) width() float64 { return u.Upper - u.Lower }

func (u Uniform) PDF(x float64) float64 {
	if x < u.Lower || x > u.Upper {
		return 0
	}
	return 1 / u.width()
}

func (u Uniform) CDF(x float64) float64 {
	switch {
	case x <= u.Lower:
		return 0
	case x >= u.Upper:
		return 1
	default:
		return (x - u.Lower) / u.width()
	}
}

func (u Uniform) Quantile(p float64) float64 {
	return u.Lower + p*u.width()
}

func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Lower + rng.Float64()*u.width()
}

func (u Uniform) Mean() float64 { return (u.Lower + u.Upper) / 2 }

func (u Uniform) Variance() float64 { return u.width() * u.width() / 12 }

func (u Uniform) Skewness() float64 { return 0 }

func (u Uniform) Kurtosis() float64 { return 1.8 } // excess -1.2, raw = 3 - 1.2
