// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simdmoment computes K independent dimension statistics in two
// linear passes over an interleaved buffer, lane by lane. Go has no
// portable SIMD intrinsic surface, so the K lanes here are literal
// independent accumulator slices advanced together in one pass over
// memory — the same data-parallel access pattern a real SIMD backend would
// compile to, falling back trivially to a scalar loop when K == 1.
package simdmoment

import "github.com/gonum/vecstat/moment"

// Batch computes K independent moment.Stats from an interleaved buffer
// buf[v*K+k] = data[v][startDim+k], for V vectors. It panics if len(buf) !=
// V*K. Batch returns a result for every one of the K lanes, padding lanes
// included; results for lanes beyond the true dimension count are not
// meaningful and are for the caller to discard.
func Batch(buf []float64, v, k int, startDim int) []moment.Stats {
	if len(buf) != v*k {
		panic("simdmoment: buffer length does not match v*k")
	}
	out := make([]moment.Stats, k)
	if v == 0 {
		for lane := 0; lane < k; lane++ {
			out[lane] = moment.Stats{Dim: startDim + lane}
		}
		return out
	}

	// Pass 1: K-lane min, max, sum.
	mins := make([]float64, k)
	maxs := make([]float64, k)
	sums := make([]float64, k)
	copy(mins, buf[:k])
	copy(maxs, buf[:k])
	for row := 0; row < v; row++ {
		base := row * k
		for lane := 0; lane < k; lane++ {
			x := buf[base+lane]
			if x < mins[lane] {
				mins[lane] = x
			}
			if x > maxs[lane] {
				maxs[lane] = x
			}
			sums[lane] += x
		}
	}

	means := make([]float64, k)
	for lane := 0; lane < k; lane++ {
		means[lane] = sums[lane] / float64(v)
	}

	// Pass 2: K-lane M2, M3, M4 via (x-mean)^p accumulation.
	m2 := make([]float64, k)
	m3 := make([]float64, k)
	m4 := make([]float64, k)
	for row := 0; row < v; row++ {
		base := row * k
		for lane := 0; lane < k; lane++ {
			d := buf[base+lane] - means[lane]
			d2 := d * d
			m2[lane] += d2
			m3[lane] += d2 * d
			m4[lane] += d2 * d2
		}
	}

	for lane := 0; lane < k; lane++ {
		out[lane] = moment.Stats{
			Dim: startDim + lane, Count: int64(v),
			Min: mins[lane], Max: maxs[lane], Mean: means[lane],
			M2: m2[lane], M3: m3[lane], M4: m4[lane],
		}
	}
	return out
}

// Scalar computes the same result as Batch but with a plain per-dimension
// scalar loop (moment.TwoPass) over unpacked columns. Its results equal
// Batch's, modulo floating-point rounding order.
func Scalar(columns [][]float64, startDim int) []moment.Stats {
	out := make([]moment.Stats, len(columns))
	for i, col := range columns {
		out[i] = moment.TwoPass(startDim+i, col)
	}
	return out
}
