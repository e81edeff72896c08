// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gonum/vecstat/config"
	"github.com/gonum/vecstat/verify"
)

func uniformValues(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^21))
	out := make([]float64, n)
	for i := range out {
		out[i] = -1 + 2*rng.Float64()
	}
	return out
}

func normalValues(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^22))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

func bimodalValues(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^23))
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

// TestExtractScenarioU checks a uniform sample is accepted as a single
// parametric fit, not escalated to a mixture or empirical fallback.
func TestExtractScenarioU(t *testing.T) {
	values := uniformValues(10000, 1)
	result, err := ExtractDimension(0, values, config.Default(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != Parametric {
		t.Fatalf("expected Parametric, got %v (%s)", result.Strategy, result.Explain)
	}
	if math.Abs(result.Model.Mean()) > 0.1 {
		t.Errorf("mean = %v, want near 0", result.Model.Mean())
	}
}

// TestExtractScenarioN checks a normal sample is accepted as a single
// parametric fit.
func TestExtractScenarioN(t *testing.T) {
	values := normalValues(10000, 2)
	result, err := ExtractDimension(0, values, config.Default(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != Parametric {
		t.Fatalf("expected Parametric, got %v (%s)", result.Strategy, result.Explain)
	}
}

// TestExtractScenarioBimodal checks a two-mode sample escalates past the
// parametric stage and is accepted as a 2-component mixture.
func TestExtractScenarioBimodal(t *testing.T) {
	values := bimodalValues(20000, 3)
	result, err := ExtractDimension(0, values, config.Default(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strategy != CompositeOfK {
		t.Fatalf("expected CompositeOfK, got %v (%s)", result.Strategy, result.Explain)
	}
	if result.K != 2 {
		t.Errorf("K = %d, want 2", result.K)
	}
}

func TestExtractRejectsEmptyDimension(t *testing.T) {
	_, err := ExtractDimension(0, nil, config.Default(), nil)
	if err == nil {
		t.Fatal("expected an error for an empty dimension")
	}
}

func TestExtractRejectsNonFiniteValue(t *testing.T) {
	values := append(normalValues(100, 9), math.NaN())
	if _, err := ExtractDimension(0, values, config.Default(), nil); err == nil {
		t.Fatal("expected an error for a dimension containing NaN")
	}
	values = append(normalValues(100, 10), math.Inf(1))
	if _, err := ExtractDimension(0, values, config.Default(), nil); err == nil {
		t.Fatal("expected an error for a dimension containing +Inf")
	}
}

// TestExtractVerificationOnlyDemotes checks that enabling verification can
// only demote a Parametric acceptance to escalation, never promote a
// rejected one. A clean Normal sample must accept as Parametric with
// verification off; with verification on, the result may only be
// Parametric if the no-verification baseline was.
func TestExtractVerificationOnlyDemotes(t *testing.T) {
	values := normalValues(10000, 4)
	cfgOff := config.Default()
	cfgOff.VerificationEnabled = false
	withoutVerification, err := ExtractDimension(0, values, cfgOff, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withoutVerification.Strategy != Parametric {
		t.Fatalf("baseline without verification should be Parametric, got %v", withoutVerification.Strategy)
	}

	cfgOn := config.Default()
	v := verify.New(5, 6)
	withVerification, err := ExtractDimension(0, values, cfgOn, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withVerification.Strategy == Parametric && withoutVerification.Strategy != Parametric {
		t.Fatal("verification promoted a non-parametric result to parametric")
	}
}

func TestExtractAssemblesVectorSpaceModel(t *testing.T) {
	columns := [][]float64{
		uniformValues(2000, 7),
		normalValues(2000, 8),
	}
	vsm, err := Extract(columns, config.Default(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vsm.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(vsm.Components))
	}
	if vsm.UniqueVectorsTarget != 2000 {
		t.Errorf("unique vectors target = %d, want 2000", vsm.UniqueVectorsTarget)
	}
}
