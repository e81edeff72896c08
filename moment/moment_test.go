// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package moment

import (
	"math/rand/v2"
	"testing"

	"github.com/gonum/vecstat/internal/tolerance"
)

func normalSample(n int, mu, sigma float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	out := make([]float64, n)
	for i := range out {
		out[i] = mu + sigma*rng.NormFloat64()
	}
	return out
}

// TestCombineLaw checks P1: combining two halves of a sequence agrees with
// accumulating the whole sequence.
func TestCombineLaw(t *testing.T) {
	values := normalSample(20000, 3, 2, 1)
	whole := TwoPass(0, values)

	left := TwoPass(0, values[:8000])
	right := TwoPass(0, values[8000:])
	combined := Combine(left, right)

	if !tolerance.EqualWithinRel(whole.Mean, combined.Mean, 1e-9) {
		t.Errorf("mean mismatch: whole=%v combined=%v", whole.Mean, combined.Mean)
	}
	if !tolerance.EqualWithinRel(whole.Variance(), combined.Variance(), 1e-9) {
		t.Errorf("variance mismatch: whole=%v combined=%v", whole.Variance(), combined.Variance())
	}
	if !tolerance.EqualWithinRel(whole.Skewness(), combined.Skewness(), 1e-6) {
		t.Errorf("skewness mismatch: whole=%v combined=%v", whole.Skewness(), combined.Skewness())
	}
	if !tolerance.EqualWithinRel(whole.Kurtosis(), combined.Kurtosis(), 1e-6) {
		t.Errorf("kurtosis mismatch: whole=%v combined=%v", whole.Kurtosis(), combined.Kurtosis())
	}
}

// TestCombineAssociative checks P2: a left-to-right fold and a balanced
// tree over a 7-way uneven split agree within P1's tolerances.
func TestCombineAssociative(t *testing.T) {
	values := normalSample(1000000, 0, 1, 2)
	chunkBounds := []int{0, 140000, 260000, 410000, 550000, 700000, 860000, 1000000}

	var chunks []Stats
	for i := 0; i < len(chunkBounds)-1; i++ {
		chunks = append(chunks, TwoPass(0, values[chunkBounds[i]:chunkBounds[i+1]]))
	}

	leftToRight := CombineAll(chunks)

	// (((A B) (C D)) ((E F) G))
	ab := Combine(chunks[0], chunks[1])
	cd := Combine(chunks[2], chunks[3])
	ef := Combine(chunks[4], chunks[5])
	abcd := Combine(ab, cd)
	efg := Combine(ef, chunks[6])
	treeShape := Combine(abcd, efg)

	if !tolerance.EqualWithinRel(leftToRight.Mean, treeShape.Mean, 1e-9) {
		t.Errorf("mean mismatch across tree shapes: %v vs %v", leftToRight.Mean, treeShape.Mean)
	}
	if !tolerance.EqualWithinRel(leftToRight.Variance(), treeShape.Variance(), 1e-9) {
		t.Errorf("variance mismatch across tree shapes: %v vs %v", leftToRight.Variance(), treeShape.Variance())
	}
	if !tolerance.EqualWithinRel(leftToRight.Skewness(), treeShape.Skewness(), 1e-6) {
		t.Errorf("skewness mismatch across tree shapes: %v vs %v", leftToRight.Skewness(), treeShape.Skewness())
	}
	if !tolerance.EqualWithinRel(leftToRight.Kurtosis(), treeShape.Kurtosis(), 1e-6) {
		t.Errorf("kurtosis mismatch across tree shapes: %v vs %v", leftToRight.Kurtosis(), treeShape.Kurtosis())
	}
}

func TestOnlineMatchesTwoPass(t *testing.T) {
	values := normalSample(5000, -1, 4, 3)
	twoPass := TwoPass(0, values)

	online := NewOnlineAccumulator(0)
	for _, v := range values {
		online.Add(v)
	}
	got := online.Stats()

	if !tolerance.EqualWithinRel(twoPass.Mean, got.Mean, 1e-7) {
		t.Errorf("mean mismatch: twoPass=%v online=%v", twoPass.Mean, got.Mean)
	}
	if !tolerance.EqualWithinRel(twoPass.Variance(), got.Variance(), 1e-6) {
		t.Errorf("variance mismatch: twoPass=%v online=%v", twoPass.Variance(), got.Variance())
	}
	if !tolerance.EqualWithinRel(twoPass.Skewness(), got.Skewness(), 1e-4) {
		t.Errorf("skewness mismatch: twoPass=%v online=%v", twoPass.Skewness(), got.Skewness())
	}
	if !tolerance.EqualWithinRel(twoPass.Kurtosis(), got.Kurtosis(), 1e-4) {
		t.Errorf("kurtosis mismatch: twoPass=%v online=%v", twoPass.Kurtosis(), got.Kurtosis())
	}
}

func TestCombineEmptySide(t *testing.T) {
	values := normalSample(100, 0, 1, 4)
	s := TwoPass(0, values)
	empty := Stats{Dim: 0}

	if got := Combine(s, empty); got != s {
		t.Errorf("combine with empty right side changed result: got %+v want %+v", got, s)
	}
	if got := Combine(empty, s); got != s {
		t.Errorf("combine with empty left side changed result: got %+v want %+v", got, s)
	}
}

func TestCombineDifferentDimsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic combining different dimensions")
		}
	}()
	a := TwoPass(0, []float64{1, 2, 3})
	b := TwoPass(1, []float64{1, 2, 3})
	Combine(a, b)
}

func TestZeroVarianceConvention(t *testing.T) {
	s := TwoPass(0, []float64{5, 5, 5, 5})
	if s.Variance() != 0 {
		t.Fatalf("expected zero variance, got %v", s.Variance())
	}
	if s.Skewness() != 0 {
		t.Errorf("expected skewness 0 by convention, got %v", s.Skewness())
	}
	if s.Kurtosis() != 3 {
		t.Errorf("expected kurtosis 3 by convention, got %v", s.Kurtosis())
	}
}
