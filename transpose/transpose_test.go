// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"math/rand/v2"
	"testing"
)

// TestRoundTrip checks P6: transposing twice returns the original matrix
// exactly.
func TestRoundTrip(t *testing.T) {
	const v, d = 777, 13
	rng := rand.New(rand.NewPCG(1, 2))
	data := make([][]float64, v)
	for i := range data {
		data[i] = make([]float64, d)
		for j := range data[i] {
			data[i][j] = rng.Float64()
		}
	}

	columns := ToColumnsF64(data)
	back := ToRows(columns)

	for i := range data {
		for j := range data[i] {
			if data[i][j] != back[i][j] {
				t.Fatalf("round trip mismatch at (%d,%d): got %v want %v", i, j, back[i][j], data[i][j])
			}
		}
	}
}

func TestToColumnsPlacesElementsCorrectly(t *testing.T) {
	data := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
	}
	columns := ToColumns(data)
	want := [][]float64{{1, 4}, {2, 5}, {3, 6}}
	for d := range want {
		for v := range want[d] {
			if columns[d][v] != want[d][v] {
				t.Errorf("columns[%d][%d] = %v, want %v", d, v, columns[d][v], want[d][v])
			}
		}
	}
}

func TestToColumnsRejectsRagged(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on ragged input")
		}
	}()
	ToColumns([][]float32{{1, 2}, {1, 2, 3}})
}

func TestInterleavePadsUnusedLanes(t *testing.T) {
	columns := [][]float64{
		{1, 2},
		{3, 4},
	}
	buf := Interleave(columns, 0, 4)
	want := []float64{1, 3, 0, 0, 2, 4, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}
