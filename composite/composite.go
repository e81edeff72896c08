// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package composite fits a K-component mixture to a slice of values:
// histogram peak detection seeds gmm's EM clusterer, each resulting
// segment gets its own bounded-data fit from the fit package, and the
// assembled mixture is scored against the data with a KS statistic. When
// more candidate peaks are found than the target component count K, the
// best K-subset is chosen by brute-force enumeration via internal/combin's
// Combinations.
package composite

import (
	"math"
	"sort"

	"github.com/gonum/vecstat/config"
	"github.com/gonum/vecstat/fit"
	"github.com/gonum/vecstat/gmm"
	"github.com/gonum/vecstat/internal/combin"
	"github.com/gonum/vecstat/moment"
	"github.com/gonum/vecstat/scalarmodel"
)

// Result is the composite counterpart of fit.Result: the assembled mixture,
// its KS score against the original values, and the EM diagnostics that
// produced it.
type Result struct {
	Model         scalarmodel.Composite
	GoodnessOfFit float64
	EM            gmm.Result
}

// peakBins is the number of histogram bins used for local-maxima peak
// detection, chosen independent of the Empirical fitter's own bin-count
// rule since peak detection wants coarser smoothing.
const peakBins = 64

// detectPeaks finds local maxima of a smoothed histogram of values, keeps
// the maxCandidates highest-count ones, and returns their bin-center
// locations in ascending order.
func detectPeaks(values []float64, maxCandidates int) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	hist := scalarmodel.NewEmpirical(sorted, peakBins)

	smoothed := make([]float64, len(hist.Counts))
	for i := range hist.Counts {
		lo, hi := i, i
		if i > 0 {
			lo = i - 1
		}
		if i < len(hist.Counts)-1 {
			hi = i + 1
		}
		var sum float64
		var n float64
		for j := lo; j <= hi; j++ {
			sum += float64(hist.Counts[j])
			n++
		}
		smoothed[i] = sum / n
	}

	type candidate struct {
		center float64
		weight float64
	}
	var cands []candidate
	for i, c := range smoothed {
		isPeak := (i == 0 || c >= smoothed[i-1]) && (i == len(smoothed)-1 || c >= smoothed[i+1])
		if isPeak && c > 0 {
			center := (hist.Edges[i] + hist.Edges[i+1]) / 2
			cands = append(cands, candidate{center: center, weight: c})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].weight > cands[j].weight })
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}
	out := make([]float64, len(cands))
	for i, c := range cands {
		out[i] = c.center
	}
	sort.Float64s(out)
	return out
}

// selectKPeaks reduces a candidate peak list to exactly k locations. When
// len(candidates) <= k it pads by interpolating within the data range; when
// len(candidates) > k it brute-forces every k-subset (via combin.Combinations)
// and keeps the one with maximum total pairwise spread, favoring well-
// separated components for EM initialization.
func selectKPeaks(candidates []float64, k int, lo, hi float64) []float64 {
	if len(candidates) == k {
		return candidates
	}
	if len(candidates) < k {
		out := append([]float64(nil), candidates...)
		for len(out) < k {
			t := float64(len(out)+1) / float64(k+1)
			out = append(out, lo+t*(hi-lo))
		}
		sort.Float64s(out)
		return out
	}

	best := candidates[:k]
	bestScore := math.Inf(-1)
	for _, idx := range combin.Combinations(len(candidates), k) {
		var score float64
		for i := 0; i < len(idx); i++ {
			for j := i + 1; j < len(idx); j++ {
				d := candidates[idx[i]] - candidates[idx[j]]
				score += math.Abs(d)
			}
		}
		if score > bestScore {
			bestScore = score
			subset := make([]float64, k)
			for i, p := range idx {
				subset[i] = candidates[p]
			}
			best = subset
		}
	}
	sort.Float64s(best)
	return best
}

// Fit fits a k-component mixture to values, using cfg's EM iteration cap
// and convergence tolerance. values need not be sorted.
func Fit(values []float64, k int, cfg config.Config) Result {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	candidates := detectPeaks(sorted, 4*k)
	peaks := selectKPeaks(candidates, k, lo, hi)

	settings := gmm.DefaultSettings()
	settings.MaxIterations = cfg.EMMaxIterations
	settings.Convergence = cfg.EMConvergence
	em := gmm.Fit(sorted, peaks, settings)
	segments := gmm.Segments(sorted, em.Responsibilities)

	preset := fit.BoundedDataPreset()
	components := make([]scalarmodel.Model, k)
	weights := append([]float64(nil), em.Weights...)
	for c := 0; c < k; c++ {
		seg := segments[c]
		if len(seg) < 2 {
			components[c] = scalarmodel.Normal{Mu: em.Means[c], Sigma: math.Max(em.Scales[c], 1e-6)}
			continue
		}
		segSorted := append([]float64(nil), seg...)
		sort.Float64s(segSorted)
		stats := moment.TwoPass(0, segSorted)
		result := fit.Select(preset, stats, segSorted)
		components[c] = result.Model
	}

	model := scalarmodel.Composite{Components: components, Weights: weights}.Normalize().SortByMean()
	ks := fit.KS(model, sorted)
	return Result{Model: model, GoodnessOfFit: ks, EM: em}
}
