// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package composite

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gonum/vecstat/config"
)

func bimodalSample(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^13))
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

// TestFitBimodal checks the composite fitter recovers two well-separated
// normal components from a bimodal sample.
func TestFitBimodal(t *testing.T) {
	values := bimodalSample(20000, 4)
	result := Fit(values, 2, config.Default())

	if result.GoodnessOfFit > 0.05 {
		t.Errorf("composite KS = %v, want <= 0.05", result.GoodnessOfFit)
	}
	means := make([]float64, len(result.Model.Components))
	for i, c := range result.Model.Components {
		means[i] = c.Mean()
	}
	if math.Abs(means[0]-(-2)) > 0.2 {
		t.Errorf("component 0 mean = %v, want near -2", means[0])
	}
	if math.Abs(means[1]-3) > 0.2 {
		t.Errorf("component 1 mean = %v, want near 3", means[1])
	}
	w := result.Model.Weights
	if math.Abs(w[0]-0.6) > 0.08 {
		t.Errorf("weight[0] = %v, want near 0.6", w[0])
	}
}

func TestFitWeightsNormalized(t *testing.T) {
	values := bimodalSample(4000, 5)
	result := Fit(values, 3, config.Default())
	var sum float64
	for _, w := range result.Model.Weights {
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum = %v, want 1", sum)
	}
}

func TestSelectKPeaksPadsWhenTooFew(t *testing.T) {
	got := selectKPeaks([]float64{0}, 3, -1, 1)
	if len(got) != 3 {
		t.Fatalf("expected 3 peaks, got %d", len(got))
	}
}

func TestSelectKPeaksTrimsWhenTooMany(t *testing.T) {
	got := selectKPeaks([]float64{-3, -1, 0, 1, 3}, 2, -3, 3)
	if len(got) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(got))
	}
}
