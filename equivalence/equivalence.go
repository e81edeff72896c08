// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equivalence canonicalizes a chosen ScalarModel down to its
// simplest statistically-indistinguishable form, by running an ordered
// chain of equivalence rules. There is no direct teacher analogue for the
// rule chain itself (gonum's distuv package never compares distributions
// for equivalence), but the moment-accessor shape the fallback rule reads
// from (Mean/Variance/Skewness/Kurtosis) mirrors distuv.Normal/Gamma's own
// moment methods, and go-cmp (already a direct gonum dependency) anchors
// the identical-parameter short circuit.
package equivalence

import (
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"

	"github.com/gonum/vecstat/scalarmodel"
)

// Verdict is the equivalence checker's result: whether two models are
// statistically indistinguishable, and a short human-readable reason used
// only by the report layer.
type Verdict struct {
	Equivalent bool
	Reason     string
}

const (
	studentTDFThreshold     = 30
	normalStudentTMuTol     = 0.1
	normalStudentTSigmaTol  = 0.1
	betaUniformParamTol     = 0.15
	betaUniformOverlapRatio = 0.8
	defaultCDFTolerance     = 0.08
	momentBaseTolerance     = 0.20
	kurtosisTolMin          = 0.30
	kurtosisTolMax          = 0.60
)

// Check runs the ordered rule chain and returns the first rule that fires.
// Equivalence is checked in a fixed order: identical parameters,
// Normal<->Student-t, Beta(1,1)<->Uniform, Normal<->Beta, Composite<->
// simple, and finally moment equivalence as a fallback. cdfTolerance bounds
// the CDF sup-norm difference the Normal<->Beta and Composite<->simple
// rules will accept as equivalent; callers with no particular preference
// should pass config.Default().EquivalenceThreshold.
func Check(a, b scalarmodel.Model, cdfTolerance float64) Verdict {
	if a.Kind() == b.Kind() && cmp.Equal(a, b) {
		return Verdict{true, "identical parameters"}
	}
	if v, ok := checkNormalStudentT(a, b); ok {
		return v
	}
	if v, ok := checkBetaUniform(a, b); ok {
		return v
	}
	if v, ok := checkNormalBeta(a, b, cdfTolerance); ok {
		return v
	}
	if v, ok := checkCompositeSimple(a, b, cdfTolerance); ok {
		return v
	}
	return checkMomentEquivalence(a, b)
}

// CheckDefault runs Check with the package's default CDF tolerance, for
// callers that have no config.Config in hand.
func CheckDefault(a, b scalarmodel.Model) Verdict {
	return Check(a, b, defaultCDFTolerance)
}

func asNormal(m scalarmodel.Model) (scalarmodel.Normal, bool) {
	n, ok := m.(scalarmodel.Normal)
	return n, ok
}

func asStudentT(m scalarmodel.Model) (scalarmodel.StudentT, bool) {
	s, ok := m.(scalarmodel.StudentT)
	return s, ok
}

func asBeta(m scalarmodel.Model) (scalarmodel.Beta, bool) {
	b, ok := m.(scalarmodel.Beta)
	return b, ok
}

func asUniform(m scalarmodel.Model) (scalarmodel.Uniform, bool) {
	u, ok := m.(scalarmodel.Uniform)
	return u, ok
}

func asComposite(m scalarmodel.Model) (scalarmodel.Composite, bool) {
	c, ok := m.(scalarmodel.Composite)
	return c, ok
}

// checkNormalStudentT is rule 2: Normal <-> Student-t when the Student-t is
// effectively a thick-tailed Normal (large df, matching location/scale).
func checkNormalStudentT(a, b scalarmodel.Model) (Verdict, bool) {
	n, t, ok := pickPair(a, b, asNormal, asStudentT)
	if !ok {
		return Verdict{}, false
	}
	if t.Nu < studentTDFThreshold {
		return Verdict{false, "student-t degrees of freedom below threshold"}, true
	}
	if math.Abs(n.Mu-t.Location) > normalStudentTMuTol {
		return Verdict{false, "location mismatch"}, true
	}
	if math.Abs(n.Sigma-t.Scale)/math.Max(n.Sigma, 0.01) > normalStudentTSigmaTol {
		return Verdict{false, "scale mismatch"}, true
	}
	return Verdict{true, fmt.Sprintf("student-t with nu=%.1f approximates normal", t.Nu)}, true
}

// checkBetaUniform is rule 3: Beta(alpha~=1, beta~=1) <-> Uniform when the
// Beta shape parameters are near 1 and the supports overlap substantially.
func checkBetaUniform(a, b scalarmodel.Model) (Verdict, bool) {
	beta, u, ok := pickPair(a, b, asBeta, asUniform)
	if !ok {
		return Verdict{}, false
	}
	if math.Abs(beta.Alpha-1) > betaUniformParamTol || math.Abs(beta.Beta-1) > betaUniformParamTol {
		return Verdict{false, "beta shape parameters not near (1,1)"}, true
	}
	ratio := intervalOverlapRatio(beta.Lower, beta.Upper, u.Lower, u.Upper)
	if ratio < betaUniformOverlapRatio {
		return Verdict{false, "beta and uniform supports do not sufficiently overlap"}, true
	}
	return Verdict{true, "beta(1,1)-like shape over an overlapping support approximates uniform"}, true
}

func intervalOverlapRatio(aLo, aHi, bLo, bHi float64) float64 {
	lo := math.Max(aLo, bLo)
	hi := math.Min(aHi, bHi)
	if hi <= lo {
		return 0
	}
	overlap := hi - lo
	union := math.Max(aHi, bHi) - math.Min(aLo, bLo)
	if union <= 0 {
		return 0
	}
	return overlap / union
}

// checkNormalBeta is rule 4: compare sampled CDFs over the shared domain.
func checkNormalBeta(a, b scalarmodel.Model, tol float64) (Verdict, bool) {
	n, beta, ok := pickPair(a, b, asNormal, asBeta)
	if !ok {
		return Verdict{}, false
	}
	lo, hi := beta.Lower, beta.Upper
	if n.Truncated {
		lo = math.Max(lo, n.Lower)
		hi = math.Min(hi, n.Upper)
	}
	maxDiff := maxCDFDiffOverQuantiles(n, beta, lo, hi, 20)
	if maxDiff <= tol {
		return Verdict{true, "normal and beta CDFs agree across the shared support"}, true
	}
	return Verdict{false, "normal and beta CDFs diverge across the shared support"}, true
}

// checkCompositeSimple is rule 5: compare a Composite's CDF against a
// simple model's CDF over their union support.
func checkCompositeSimple(a, b scalarmodel.Model, tol float64) (Verdict, bool) {
	composite, simple, ok := pickCompositeSimple(a, b)
	if !ok {
		return Verdict{}, false
	}
	lo := math.Min(lowerBound(composite), lowerBound(simple))
	hi := math.Max(upperBound(composite), upperBound(simple))
	maxDiff := maxCDFDiffOverQuantiles(composite, simple, lo, hi, 20)
	if maxDiff <= tol {
		return Verdict{true, "composite and simple CDFs agree across the union support"}, true
	}
	return Verdict{false, "composite and simple CDFs diverge across the union support"}, true
}

func pickCompositeSimple(a, b scalarmodel.Model) (scalarmodel.Composite, scalarmodel.Model, bool) {
	if c, ok := asComposite(a); ok {
		if _, isComposite := b.(scalarmodel.Composite); !isComposite {
			return c, b, true
		}
	}
	if c, ok := asComposite(b); ok {
		if _, isComposite := a.(scalarmodel.Composite); !isComposite {
			return c, a, true
		}
	}
	return scalarmodel.Composite{}, nil, false
}

func lowerBound(m scalarmodel.Model) float64 {
	mean, sd := m.Mean(), math.Sqrt(m.Variance())
	return mean - 20*sd
}

func upperBound(m scalarmodel.Model) float64 {
	mean, sd := m.Mean(), math.Sqrt(m.Variance())
	return mean + 20*sd
}

func maxCDFDiffOverQuantiles(a, b scalarmodel.Model, lo, hi float64, points int) float64 {
	var maxDiff float64
	for i := 1; i <= points; i++ {
		x := lo + float64(i)/float64(points+1)*(hi-lo)
		d := math.Abs(a.CDF(x) - b.CDF(x))
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// checkMomentEquivalence is rule 6, the fallback: compare the first four
// moments with an adaptive kurtosis tolerance.
func checkMomentEquivalence(a, b scalarmodel.Model) Verdict {
	if relDiff(a.Mean(), b.Mean()) > momentBaseTolerance {
		return Verdict{false, "means differ beyond tolerance"}
	}
	if relDiff(a.Variance(), b.Variance()) > momentBaseTolerance {
		return Verdict{false, "variances differ beyond tolerance"}
	}
	if relDiff(a.Skewness(), b.Skewness()) > momentBaseTolerance {
		return Verdict{false, "skewness differs beyond tolerance"}
	}
	kurtTol := adaptiveKurtosisTolerance(a, b)
	if relDiff(a.Kurtosis(), b.Kurtosis()) > kurtTol {
		return Verdict{false, "kurtosis differs beyond adaptive tolerance"}
	}
	return Verdict{true, "first four moments agree within tolerance"}
}

func relDiff(x, y float64) float64 {
	return math.Abs(x-y) / math.Max(math.Max(math.Abs(x), math.Abs(y)), 1e-9)
}

// adaptiveKurtosisTolerance scales the base moment tolerance by the
// kurtosis magnitude, the number of mixture modes present, and whether the
// two kurtosis excesses disagree in sign, clamped to [0.30, 0.60].
func adaptiveKurtosisTolerance(a, b scalarmodel.Model) float64 {
	tol := momentBaseTolerance
	mag := (math.Abs(a.Kurtosis()-3) + math.Abs(b.Kurtosis()-3)) / 2
	tol += 0.05 * mag

	modes := componentCount(a) + componentCount(b)
	if modes > 2 {
		tol += 0.05 * float64(modes-2)
	}

	excessA, excessB := a.Kurtosis()-3, b.Kurtosis()-3
	if (excessA > 0) != (excessB > 0) {
		tol += 0.1
	}

	return math.Max(kurtosisTolMin, math.Min(kurtosisTolMax, tol))
}

func componentCount(m scalarmodel.Model) int {
	if c, ok := m.(scalarmodel.Composite); ok {
		return len(c.Components)
	}
	return 1
}

// pickPair returns (x, y) such that x is the A-typed model and y is the
// B-typed model, regardless of which of (a,b) holds which, so every rule
// above is automatically symmetric in its two arguments.
func pickPair[A, B any](a, b scalarmodel.Model, asA func(scalarmodel.Model) (A, bool), asB func(scalarmodel.Model) (B, bool)) (A, B, bool) {
	if x, ok := asA(a); ok {
		if y, ok := asB(b); ok {
			return x, y, true
		}
	}
	if x, ok := asA(b); ok {
		if y, ok := asB(a); ok {
			return x, y, true
		}
	}
	var zeroA A
	var zeroB B
	return zeroA, zeroB, false
}
