// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmm

import (
	"math"
	"math/rand/v2"
	"testing"
)

func bimodalSample(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^11))
	out := make([]float64, n)
	for i := range out {
		if rng.Float64() < 0.6 {
			out[i] = -2 + 0.5*rng.NormFloat64()
		} else {
			out[i] = 3 + 0.7*rng.NormFloat64()
		}
	}
	return out
}

// TestFitRecoversBimodalComponents checks EM recovers two well-separated
// component means and weights from a bimodal sample.
func TestFitRecoversBimodalComponents(t *testing.T) {
	values := bimodalSample(20000, 3)
	result := Fit(values, []float64{-1, 1}, DefaultSettings())

	means := append([]float64(nil), result.Means...)
	if means[0] > means[1] {
		means[0], means[1] = means[1], means[0]
		result.Weights[0], result.Weights[1] = result.Weights[1], result.Weights[0]
	}
	if math.Abs(means[0]-(-2)) > 0.15 {
		t.Errorf("low component mean = %v, want near -2", means[0])
	}
	if math.Abs(means[1]-3) > 0.15 {
		t.Errorf("high component mean = %v, want near 3", means[1])
	}
	if math.Abs(result.Weights[0]-0.6) > 0.05 && math.Abs(result.Weights[0]-0.4) > 0.05 {
		t.Errorf("weights = %v, want near 0.6/0.4", result.Weights)
	}
}

func TestFitLogLikelihoodFiniteAndIterationsBounded(t *testing.T) {
	values := bimodalSample(5000, 9)
	result := Fit(values, []float64{-1, 1}, DefaultSettings())
	if math.IsNaN(result.LogLikelihood) || math.IsInf(result.LogLikelihood, 0) {
		t.Fatalf("log-likelihood is not finite: %v", result.LogLikelihood)
	}
	if result.Iterations <= 0 || result.Iterations > DefaultSettings().MaxIterations {
		t.Errorf("iterations = %d out of expected range", result.Iterations)
	}
}

func TestHardAssignSegments(t *testing.T) {
	resp := [][]float64{
		{0.9, 0.1},
		{0.2, 0.8},
		{0.6, 0.4},
	}
	values := []float64{1, 2, 3}
	segs := Segments(values, resp)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if len(segs[0]) != 2 || len(segs[1]) != 1 {
		t.Errorf("unexpected segment sizes: %v", segs)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	values := bimodalSample(2000, 21)
	result := Fit(values, []float64{-1, 1}, DefaultSettings())
	var sum float64
	for _, w := range result.Weights {
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum = %v, want 1", sum)
	}
}
