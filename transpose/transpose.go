// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transpose implements a cache-blocked row-major-to-column-major
// reshape, plus the lane-interleave step used to feed simdmoment's batched
// moment pass. It is grounded on gonum.org/v1/gonum/mat's Dense row-major
// storage and its (*Dense).T() transpose view, generalized to an owned
// blocked copy: the batched moment pass needs contiguous owned memory per
// dimension, not a lazily re-indexed view.
package transpose

// BlockSize is the default tile edge used by ToColumns, chosen so that
// BlockSize^2 float64s (8 bytes each) fit comfortably in a typical L2
// cache (256*256*8 = 512KiB).
const BlockSize = 256

// ToColumns reshapes a V×D row-major matrix (data[v][d]) into D columns of
// length V (columns[d][v]), using a cache-blocked tiled copy: every element
// (v,d) of data ends up at columns[d][v]. ToColumns panics only if rows are
// ragged; callers are expected to validate rectangularity beforehand (see
// extract.ValidateMatrix).
func ToColumns(data [][]float32) [][]float64 {
	v := len(data)
	if v == 0 {
		return nil
	}
	d := len(data[0])
	columns := make([][]float64, d)
	for j := range columns {
		columns[j] = make([]float64, v)
	}

	for vBlock := 0; vBlock < v; vBlock += BlockSize {
		vEnd := min(vBlock+BlockSize, v)
		for dBlock := 0; dBlock < d; dBlock += BlockSize {
			dEnd := min(dBlock+BlockSize, d)
			for row := vBlock; row < vEnd; row++ {
				if len(data[row]) != d {
					panic("transpose: ragged input matrix")
				}
				for col := dBlock; col < dEnd; col++ {
					columns[col][row] = float64(data[row][col])
				}
			}
		}
	}
	return columns
}

// ToColumnsF64 is ToColumns for an already-float64 row-major matrix, used
// when the caller's vector file format stores 64-bit components.
func ToColumnsF64(data [][]float64) [][]float64 {
	v := len(data)
	if v == 0 {
		return nil
	}
	d := len(data[0])
	columns := make([][]float64, d)
	for j := range columns {
		columns[j] = make([]float64, v)
	}

	for vBlock := 0; vBlock < v; vBlock += BlockSize {
		vEnd := min(vBlock+BlockSize, v)
		for dBlock := 0; dBlock < d; dBlock += BlockSize {
			dEnd := min(dBlock+BlockSize, d)
			for row := vBlock; row < vEnd; row++ {
				if len(data[row]) != d {
					panic("transpose: ragged input matrix")
				}
				for col := dBlock; col < dEnd; col++ {
					columns[col][row] = data[row][col]
				}
			}
		}
	}
	return columns
}

// ToRows is the inverse of ToColumnsF64: given D columns of length V, it
// rebuilds the V×D row-major matrix. ToRows(ToColumnsF64(x)) reproduces x
// exactly.
func ToRows(columns [][]float64) [][]float64 {
	d := len(columns)
	if d == 0 {
		return nil
	}
	v := len(columns[0])
	rows := make([][]float64, v)
	for i := range rows {
		rows[i] = make([]float64, d)
	}
	for col := 0; col < d; col++ {
		for row := 0; row < v; row++ {
			rows[row][col] = columns[col][row]
		}
	}
	return rows
}

// Interleave builds the SIMD batch buffer for width lanes starting at base
// dimension: buf[v*width+k] = columns[base+k][v] for k in [0,width). Lanes
// beyond the available columns (base+k >= len(columns)) are padded with 0.
// The returned buffer is freshly allocated; callers processing many batches
// should reuse one buffer across calls via InterleaveInto to avoid repeated
// allocation.
func Interleave(columns [][]float64, base, width int) []float64 {
	if len(columns) == 0 {
		return nil
	}
	v := len(columns[0])
	buf := make([]float64, v*width)
	InterleaveInto(buf, columns, base, width)
	return buf
}

// InterleaveInto fills a caller-owned buffer (sized V*width) with the
// interleaved layout described by Interleave, avoiding per-batch
// allocation.
func InterleaveInto(buf []float64, columns [][]float64, base, width int) {
	if len(columns) == 0 {
		return
	}
	v := len(columns[0])
	for k := 0; k < width; k++ {
		d := base + k
		if d >= len(columns) {
			for row := 0; row < v; row++ {
				buf[row*width+k] = 0
			}
			continue
		}
		col := columns[d]
		for row := 0; row < v; row++ {
			buf[row*width+k] = col[row]
		}
	}
}
