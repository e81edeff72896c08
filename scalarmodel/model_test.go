// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarmodel

import (
	"math"
	"math/rand/v2"
	"testing"
)

func allModels() map[string]Model {
	return map[string]Model{
		"normal":       Normal{Mu: 2, Sigma: 3},
		"truncNormal":  Normal{Mu: 0, Sigma: 1, Truncated: true, Lower: -2, Upper: 2},
		"uniform":      Uniform{Lower: -1, Upper: 5},
		"beta":         Beta{Alpha: 2, Beta: 3, Lower: 0, Upper: 1},
		"betaRescaled": Beta{Alpha: 0.5, Beta: 0.5, Lower: -10, Upper: 10},
		"gamma":        Gamma{Shape: 2, Scale: 1.5, Location: 0},
		"gammaLoc":     Gamma{Shape: 3, Scale: 0.5, Location: -1},
		"invgamma":     InverseGamma{Shape: 4, Scale: 2},
		"studentt":     StudentT{Nu: 8, Location: 1, Scale: 2},
		"pearson4":     NewPearsonIV(2.5, 1.0, 1.5, 0.5),
		"empirical":    NewEmpirical(sortedSample(), 20),
	}
}

func sortedSample() []float64 {
	rng := rand.New(rand.NewPCG(7, 8))
	xs := make([]float64, 2000)
	for i := range xs {
		xs[i] = rng.NormFloat64()*2 + 1
	}
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
	return xs
}

// TestCDFMonotonic checks P3: cdf is nondecreasing over an increasing
// sequence, and saturates to [0,1] at the extremes.
func TestCDFMonotonic(t *testing.T) {
	for name, m := range allModels() {
		t.Run(name, func(t *testing.T) {
			var prev float64 = -1
			for i := 0; i <= 200; i++ {
				x := -100 + float64(i)*1.0
				c := m.CDF(x)
				if c < prev-1e-12 {
					t.Fatalf("cdf not monotone at x=%v: %v < prev %v", x, c, prev)
				}
				prev = c
				if math.IsNaN(c) {
					t.Fatalf("cdf NaN at x=%v", x)
				}
			}
			if c := m.CDF(-1e9); c > 1e-6 {
				t.Errorf("cdf(-inf) should be ~0, got %v", c)
			}
			if c := m.CDF(1e9); c < 1-1e-6 {
				t.Errorf("cdf(+inf) should be ~1, got %v", c)
			}
		})
	}
}

// TestQuantileCDFInverse checks P4: |cdf(quantile(u)) - u| <= 1e-3.
func TestQuantileCDFInverse(t *testing.T) {
	for name, m := range allModels() {
		t.Run(name, func(t *testing.T) {
			for _, u := range []float64{0.01, 0.1, 0.5, 0.9, 0.99} {
				x := m.Quantile(u)
				got := m.CDF(x)
				if math.Abs(got-u) > 1e-3 {
					t.Errorf("u=%v: cdf(quantile(u))=%v, want within 1e-3", u, got)
				}
			}
		})
	}
}

func TestCompositeMoments(t *testing.T) {
	c := Composite{
		Components: []Model{
			Normal{Mu: -2, Sigma: 0.5},
			Normal{Mu: 3, Sigma: 0.7},
		},
		Weights: []float64{0.6, 0.4},
	}
	wantMean := 0.6*-2 + 0.4*3
	if math.Abs(c.Mean()-wantMean) > 1e-9 {
		t.Errorf("mean = %v, want %v", c.Mean(), wantMean)
	}
	if c.Variance() <= 0 {
		t.Errorf("variance should be positive for a bimodal mixture, got %v", c.Variance())
	}
}

func TestCompositeSampleWithinBounds(t *testing.T) {
	c := Composite{
		Components: []Model{Normal{Mu: 0, Sigma: 1}, Normal{Mu: 10, Sigma: 1}},
		Weights:    []float64{0.5, 0.5},
	}
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 1000; i++ {
		x := c.Sample(rng)
		if x < -20 || x > 30 {
			t.Fatalf("sample out of plausible range: %v", x)
		}
	}
}
