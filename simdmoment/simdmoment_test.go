// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simdmoment

import (
	"math/rand/v2"
	"testing"

	"github.com/gonum/vecstat/internal/tolerance"
	"github.com/gonum/vecstat/moment"
)

// TestBatchMatchesScalar checks P5: BatchMoments on K contiguous dimensions
// equals the scalar accumulator on each dimension, within tolerance.
func TestBatchMatchesScalar(t *testing.T) {
	const v, k = 4000, 8
	rng := rand.New(rand.NewPCG(11, 22))

	columns := make([][]float64, k)
	for lane := range columns {
		columns[lane] = make([]float64, v)
	}
	buf := make([]float64, v*k)
	for row := 0; row < v; row++ {
		for lane := 0; lane < k; lane++ {
			x := float64(lane+1) + rng.NormFloat64()
			buf[row*k+lane] = x
			columns[lane][row] = x
		}
	}

	batched := Batch(buf, v, k, 0)
	scalar := Scalar(columns, 0)

	for lane := 0; lane < k; lane++ {
		b, s := batched[lane], scalar[lane]
		if !tolerance.EqualWithinRel(b.Mean, s.Mean, 1e-10) {
			t.Errorf("lane %d: mean mismatch batch=%v scalar=%v", lane, b.Mean, s.Mean)
		}
		if !tolerance.EqualWithinRel(b.Variance(), s.Variance(), 1e-8) {
			t.Errorf("lane %d: variance mismatch batch=%v scalar=%v", lane, b.Variance(), s.Variance())
		}
	}
}

func TestBatchEmptyVectors(t *testing.T) {
	out := Batch(nil, 0, 4, 10)
	if len(out) != 4 {
		t.Fatalf("expected 4 lanes, got %d", len(out))
	}
	for lane, s := range out {
		want := moment.Stats{Dim: 10 + lane}
		if s != want {
			t.Errorf("lane %d: got %+v want %+v", lane, s, want)
		}
	}
}

func TestBatchPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	Batch(make([]float64, 10), 4, 4, 0)
}
