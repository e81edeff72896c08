// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xfloats reimplements the handful of gonum.org/v1/gonum/floats
// vectorized primitives vecstat's own packages need. vecstat cannot import
// its teacher's floats package as a dependency without depending on the
// very project it distills, so the small surface actually used (Sum, Scale,
// CumSum, Max, Min) is grounded on floats' documented semantics and
// reimplemented here.
package xfloats

import "math"

// Sum returns the sum of the elements of s.
func Sum(s []float64) float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum
}

// Scale multiplies every element of dst by c, in place.
func Scale(c float64, dst []float64) {
	for i := range dst {
		dst[i] *= c
	}
}

// AddConst adds c to every element of dst, in place.
func AddConst(c float64, dst []float64) {
	for i := range dst {
		dst[i] += c
	}
}

// CumSum stores the cumulative sum of src in dst, returning dst. dst and src
// may be the same slice.
func CumSum(dst, src []float64) []float64 {
	if len(src) == 0 {
		return dst
	}
	dst[0] = src[0]
	for i := 1; i < len(src); i++ {
		dst[i] = dst[i-1] + src[i]
	}
	return dst
}

// Max returns the maximum value in s and panics if s is empty.
func Max(s []float64) float64 {
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the minimum value in s and panics if s is empty.
func Min(s []float64) float64 {
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// AllFinite reports whether every element of s is finite (not NaN or ±Inf).
func AllFinite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
