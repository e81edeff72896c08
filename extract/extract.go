// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package extract implements the adaptive per-dimension fitting pipeline:
// try a single parametric fit, verify it, escalate to a K-component
// mixture, and fall back to an empirical histogram if nothing else clears
// its acceptance threshold. It also assembles the per-dimension results
// into a VectorSpaceModel. The pipeline shape (try the cheapest candidate,
// escalate only on failure, always terminate in a safe fallback) mirrors
// gonum.org/v1/gonum/optimize's Method/Local escalation from a fast local
// method to global restarts when convergence fails, generalized here from
// "objective convergence" to "goodness-of-fit threshold".
package extract

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonum/vecstat/composite"
	"github.com/gonum/vecstat/config"
	"github.com/gonum/vecstat/equivalence"
	"github.com/gonum/vecstat/fit"
	"github.com/gonum/vecstat/internal/numerr"
	"github.com/gonum/vecstat/moment"
	"github.com/gonum/vecstat/scalarmodel"
	"github.com/gonum/vecstat/verify"
)

// Strategy tags which stage of the pipeline produced a dimension's model.
type Strategy int

const (
	// Parametric is a single parametric fit accepted outright.
	Parametric Strategy = iota
	// CompositeOfK is a K-component mixture fit.
	CompositeOfK
	// Empirical is the terminal histogram fallback.
	Empirical
)

func (s Strategy) String() string {
	switch s {
	case Parametric:
		return "Parametric"
	case CompositeOfK:
		return "CompositeOfK"
	case Empirical:
		return "Empirical"
	default:
		return "Unknown"
	}
}

// DimensionResult records the chosen model for a dimension, the strategy
// that produced it, the accepted K for composites, the final KS score, and
// an explanatory string for reports.
type DimensionResult struct {
	Dimension int
	Model     scalarmodel.Model
	Strategy  Strategy
	K         int // only meaningful when Strategy == CompositeOfK
	KS        float64
	Explain   string
}

// VectorSpaceModel is the extractor's output: one ScalarModel per dimension
// plus a unique-vector-count target for downstream generation.
type VectorSpaceModel struct {
	UniqueVectorsTarget uint64
	Components          []scalarmodel.Model
	Strategies          []DimensionResult
}

// fittersByType maps a fit.Result's ModelType tag back to the Fitter that
// produced it, so the InternalVerifier can refit the exact same family.
var fittersByType = map[string]fit.Fitter{
	"normal":        fit.NormalFitter,
	"uniform":       fit.UniformFitter,
	"beta":          fit.BetaFitter,
	"gamma":         fit.GammaFitter,
	"inverse-gamma": fit.InverseGammaFitter,
	"student-t":     fit.StudentTFitter,
	"pearson-iv":    fit.PearsonIVFitter,
}

// ExtractDimension runs the adaptive pipeline for a single dimension's
// values, using v as the InternalVerifier's sampler (pass nil to skip
// verification regardless of cfg.VerificationEnabled). It rejects a
// dimension containing any NaN or ±Inf value: such a value leaves every
// downstream moment and KS computation undefined.
func ExtractDimension(dim int, values []float64, cfg config.Config, v *verify.Verifier) (DimensionResult, error) {
	if len(values) == 0 {
		return DimensionResult{}, numerr.New(numerr.InvalidInput, "extract: empty dimension")
	}
	if !moment.ValidateFinite(values) {
		return DimensionResult{}, numerr.New(numerr.InvalidInput, "extract: dimension %d contains a non-finite value", dim)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	stats := moment.TwoPass(dim, sorted)
	return extractSorted(dim, sorted, stats, cfg, v)
}

// ExtractDimensionWithStats runs the same pipeline as ExtractDimension but
// accepts stats already computed by a batched pass (e.g. simdmoment.Batch)
// instead of recomputing them with a scalar TwoPass. sorted must already be
// sorted ascending and free of non-finite values; callers that batch moment
// computation across contiguous dimensions should validate and sort each
// column once before calling this.
func ExtractDimensionWithStats(dim int, sorted []float64, stats moment.Stats, cfg config.Config, v *verify.Verifier) (DimensionResult, error) {
	if len(sorted) == 0 {
		return DimensionResult{}, numerr.New(numerr.InvalidInput, "extract: empty dimension")
	}
	return extractSorted(dim, sorted, stats, cfg, v)
}

func extractSorted(dim int, sorted []float64, stats moment.Stats, cfg config.Config, v *verify.Verifier) (DimensionResult, error) {
	best := fit.Select(fit.DefaultPreset(), stats, sorted)
	if best.GoodnessOfFit <= cfg.KSParametric {
		if accepted, reason := acceptParametric(best, cfg, v); accepted {
			model := canonicalize(best.Model, cfg)
			return DimensionResult{
				Dimension: dim, Model: model, Strategy: Parametric,
				KS: best.GoodnessOfFit, Explain: reason,
			}, nil
		}
	}

	maxK := cfg.MaxCompositeK
	if maxK < 2 {
		maxK = 2
	}
	for k := 2; k <= maxK; k++ {
		result := composite.Fit(sorted, k, cfg)
		if result.GoodnessOfFit <= cfg.KSComposite {
			model := canonicalize(result.Model, cfg)
			return DimensionResult{
				Dimension: dim, Model: model, Strategy: CompositeOfK, K: k,
				KS: result.GoodnessOfFit,
				Explain: fmt.Sprintf("accepted %d-component mixture, KS=%.4f", k, result.GoodnessOfFit),
			}, nil
		}
	}

	empirical := fit.EmpiricalFitter(stats, sorted)
	return DimensionResult{
		Dimension: dim, Model: empirical.Model, Strategy: Empirical,
		KS:      empirical.GoodnessOfFit,
		Explain: "fell back to empirical histogram; no parametric or composite fit met threshold",
	}, nil
}

// canonicalize collapses a model to a simpler equivalent form when
// equivalence.Check confirms the two are statistically indistinguishable
// within cfg.EquivalenceThreshold: Beta(alpha~=1,beta~=1) to Uniform,
// large-df Student-t to Normal, and an unnecessarily multimodal Composite
// to the single Normal with matching moments.
func canonicalize(m scalarmodel.Model, cfg config.Config) scalarmodel.Model {
	switch model := m.(type) {
	case scalarmodel.Beta:
		candidate := scalarmodel.Uniform{Lower: model.Lower, Upper: model.Upper}
		if v := equivalence.Check(model, candidate, cfg.EquivalenceThreshold); v.Equivalent {
			return candidate
		}
	case scalarmodel.StudentT:
		candidate := scalarmodel.Normal{Mu: model.Location, Sigma: model.Scale}
		if v := equivalence.Check(model, candidate, cfg.EquivalenceThreshold); v.Equivalent {
			return candidate
		}
	case scalarmodel.Composite:
		candidate := scalarmodel.Normal{Mu: model.Mean(), Sigma: math.Sqrt(model.Variance())}
		if v := equivalence.Check(model, candidate, cfg.EquivalenceThreshold); v.Equivalent {
			return candidate
		}
	}
	return m
}

// acceptParametric applies InternalVerifier when verification is enabled.
// Verification can only demote a parametric acceptance to escalation; it
// never promotes a fit that already missed the KS threshold.
func acceptParametric(best fit.Result, cfg config.Config, v *verify.Verifier) (bool, string) {
	if !cfg.VerificationEnabled || v == nil {
		return true, fmt.Sprintf("accepted parametric %s, KS=%.4f (verification disabled)", best.ModelType, best.GoodnessOfFit)
	}
	fitter, ok := fittersByType[best.ModelType]
	if !ok {
		return true, fmt.Sprintf("accepted parametric %s, KS=%.4f (no verifier fitter registered)", best.ModelType, best.GoodnessOfFit)
	}
	result := v.Verify(best, fitter, cfg)
	if result.Passed {
		return true, fmt.Sprintf("accepted parametric %s, KS=%.4f, verified drift=%.4f", best.ModelType, best.GoodnessOfFit, result.MaxDrift)
	}
	return false, ""
}

// ValidateMatrix rejects empty and ragged inputs: every row must have the
// same non-zero length. rows is a V×D (or D×V) slice of slices;
// ValidateMatrix only checks rectangularity and non-emptiness, not
// orientation.
func ValidateMatrix(rows [][]float32) error {
	if len(rows) == 0 {
		return numerr.New(numerr.InvalidInput, "extract: empty matrix")
	}
	width := len(rows[0])
	if width == 0 {
		return numerr.New(numerr.InvalidInput, "extract: zero-length dimension")
	}
	for i, row := range rows {
		if len(row) != width {
			return numerr.New(numerr.InvalidInput, "extract: ragged matrix at row %d (len %d, want %d)", i, len(row), width)
		}
	}
	return nil
}

// Extract runs ExtractDimension over every column of columns (already
// transposed to [dim][vector] layout) and assembles a VectorSpaceModel.
// uniqueVectorsTarget is copied verbatim from the input column length.
func Extract(columns [][]float64, cfg config.Config, v *verify.Verifier) (VectorSpaceModel, error) {
	components := make([]scalarmodel.Model, len(columns))
	strategies := make([]DimensionResult, len(columns))
	var uniqueTarget uint64
	if len(columns) > 0 {
		uniqueTarget = uint64(len(columns[0]))
	}
	for d, col := range columns {
		result, err := ExtractDimension(d, col, cfg, v)
		if err != nil {
			return VectorSpaceModel{}, err
		}
		components[d] = result.Model
		strategies[d] = result
	}
	return VectorSpaceModel{
		UniqueVectorsTarget: uniqueTarget,
		Components:          components,
		Strategies:          strategies,
	}, nil
}
