// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolerance reimplements the gonum.org/v1/gonum/floats/scalar
// comparison helpers used throughout vecstat's test suite to check
// numeric results within an absolute or relative tolerance.
package tolerance

import "math"

// EqualWithinAbs reports whether a and b are within absolute tolerance of
// each other.
func EqualWithinAbs(a, b, tol float64) bool {
	return a == b || math.Abs(a-b) <= tol
}

// EqualWithinRel reports whether a and b are within relative tolerance of
// each other, scaled by the larger of their magnitudes.
func EqualWithinRel(a, b, tol float64) bool {
	if a == b {
		return true
	}
	delta := math.Abs(a - b)
	if delta <= tol {
		return true
	}
	return delta <= tol*math.Max(math.Abs(a), math.Abs(b))
}
