// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/gonum/vecstat/moment"
	"github.com/gonum/vecstat/scalarmodel"
)

func uniformSample(n int, lo, hi float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^1))
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	sort.Float64s(out)
	return out
}

func normalSample(n int, mu, sigma float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^2))
	out := make([]float64, n)
	for i := range out {
		out[i] = mu + sigma*rng.NormFloat64()
	}
	sort.Float64s(out)
	return out
}

func gammaSample(n int, shape, scale float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^3))
	out := make([]float64, n)
	for i := range out {
		out[i] = scale * sampleStdGamma(rng, shape)
	}
	sort.Float64s(out)
	return out
}

// sampleStdGamma mirrors scalarmodel's Marsaglia-Tsang sampler to build
// test fixtures without creating an import cycle.
func sampleStdGamma(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return sampleStdGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x || math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// TestScenarioU checks UniformFitter recovers a known uniform sample.
func TestScenarioU(t *testing.T) {
	values := uniformSample(10000, -1, 1, 42)
	stats := moment.TwoPass(0, values)

	result := UniformFitter(stats, values)
	if math.Abs(result.Model.Mean()) > 0.05 {
		t.Errorf("uniform mean far from 0: %v", result.Model.Mean())
	}
	if result.GoodnessOfFit > 0.03 {
		t.Errorf("uniform KS too high: %v", result.GoodnessOfFit)
	}
}

// TestScenarioN checks NormalFitter recovers a known normal sample.
func TestScenarioN(t *testing.T) {
	values := normalSample(10000, 0, 1, 7)
	stats := moment.TwoPass(0, values)
	result := NormalFitter(stats, values)
	mu := result.Model.Mean()
	sigma := math.Sqrt(result.Model.Variance())
	if math.Abs(mu) > 0.05 {
		t.Errorf("mu too far from 0: %v", mu)
	}
	if math.Abs(sigma-1) > 0.05 {
		t.Errorf("sigma too far from 1: %v", sigma)
	}
}

// TestScenarioG checks GammaFitter recovers a known gamma sample.
func TestScenarioG(t *testing.T) {
	values := gammaSample(5000, 2, 1, 99)
	stats := moment.TwoPass(0, values)
	result := GammaFitter(stats, values)
	if result.GoodnessOfFit > 0.06 {
		t.Errorf("gamma KS too high: %v", result.GoodnessOfFit)
	}
}

// TestKSApproachesZero checks KS shrinks toward 0 as n grows for a sample
// drawn directly from the model under test.
func TestKSApproachesZero(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	m := scalarmodel.Normal{Mu: 0, Sigma: 1}
	var lastKS float64
	for _, n := range []int{100, 1000, 20000} {
		values := make([]float64, n)
		for i := range values {
			values[i] = m.Quantile(rng.Float64())
		}
		sort.Float64s(values)
		lastKS = KS(m, values)
	}
	if lastKS > 0.02 {
		t.Errorf("KS with n=20000 should be small, got %v", lastKS)
	}
}

func TestEmpiricalFitterBinCountClamped(t *testing.T) {
	values := normalSample(5000, 0, 1, 1)
	stats := moment.TwoPass(0, values)
	result := EmpiricalFitter(stats, values)
	e := result.Model.(scalarmodel.Empirical)
	if len(e.Counts) < 10 || len(e.Counts) > 100 {
		t.Errorf("bin count %d outside clamp range [10,100]", len(e.Counts))
	}
}

func TestPearsonIVSentinelWhenDegenerate(t *testing.T) {
	stats := moment.Stats{Count: 100, Mean: 0, M2: 100, M3: 0, M4: 3 * 100}
	result := PearsonIVFitter(stats, nil)
	if !PearsonIVApplicable(stats) {
		if result.Model.(scalarmodel.PearsonIV).M != 2 {
			t.Errorf("expected sentinel model m=2 when inapplicable, got %+v", result.Model)
		}
	}
}
