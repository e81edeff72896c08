// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmm implements a fixed-component-count Gaussian Mixture Model
// expectation-maximization clusterer. The iterate-until-convergence loop
// shape (track the previous objective, compare against a threshold, cap at
// maxIterations, report a converged flag) is grounded on
// gonum.org/v1/gonum/optimize's outer Minimize loop and the population
// update in optimize/cmaes.go.
package gmm

import (
	"math"

	"github.com/gonum/vecstat/internal/xfloats"
)

// minVariance floors a component's variance so that a collapsed (near-
// singular) component never produces a division by zero in the E-step.
const minVariance = 1e-10

// logFloor guards log(0) in the log-likelihood accumulation.
const logFloor = 1e-300

// Result is the fitted mixture and the bookkeeping needed to assemble a
// composite model or re-run a hard assignment.
type Result struct {
	Means            []float64
	Scales           []float64
	Weights          []float64
	Responsibilities [][]float64 // Responsibilities[i][k]
	LogLikelihood    float64
	Iterations       int
	Converged        bool
}

// Settings bounds the EM iteration: how many passes to run at most, and
// how small a log-likelihood improvement counts as converged.
type Settings struct {
	MaxIterations int
	Convergence   float64
}

// DefaultSettings returns MaxIterations=50, Convergence=1e-6.
func DefaultSettings() Settings {
	return Settings{MaxIterations: 50, Convergence: 1e-6}
}

func normalDensity(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5*z*z) / (sigma * math.Sqrt(2*math.Pi))
}

// Fit runs expectation-maximization on values with K initial component
// locations peaks (len(peaks) determines K). settings bounds the
// iteration; the zero Settings is replaced with DefaultSettings.
func Fit(values []float64, peaks []float64, settings Settings) Result {
	if settings.MaxIterations == 0 {
		settings.MaxIterations = DefaultSettings().MaxIterations
	}
	if settings.Convergence == 0 {
		settings.Convergence = DefaultSettings().Convergence
	}
	n := len(values)
	k := len(peaks)

	means := make([]float64, k)
	copy(means, peaks)
	weights := make([]float64, k)
	scales := make([]float64, k)

	lo, hi := xfloats.Min(values), xfloats.Max(values)
	initScale := math.Max((hi-lo)/(2*float64(k)), math.Sqrt(minVariance))
	for i := range weights {
		weights[i] = 1 / float64(k)
		scales[i] = initScale
	}

	resp := make([][]float64, n)
	for i := range resp {
		resp[i] = make([]float64, k)
	}

	var prevLL float64
	var ll float64
	converged := false
	iter := 0
	for ; iter < settings.MaxIterations; iter++ {
		ll = eStep(values, means, scales, weights, resp)
		mStep(values, resp, means, scales, weights)

		if iter > 0 && math.Abs(ll-prevLL) < settings.Convergence {
			converged = true
			iter++
			break
		}
		prevLL = ll
	}

	return Result{
		Means:            means,
		Scales:           scales,
		Weights:          weights,
		Responsibilities: resp,
		LogLikelihood:    ll,
		Iterations:       iter,
		Converged:        converged,
	}
}

// eStep computes responsibilities and the log-likelihood for the current
// parameters.
func eStep(values, means, scales, weights []float64, resp [][]float64) float64 {
	k := len(means)
	densities := make([]float64, k)
	var ll float64
	for i, x := range values {
		var total float64
		for c := 0; c < k; c++ {
			d := weights[c] * normalDensity(x, means[c], scales[c])
			densities[c] = d
			total += d
		}
		clamped := math.Max(total, logFloor)
		ll += math.Log(clamped)
		for c := 0; c < k; c++ {
			resp[i][c] = densities[c] / clamped
		}
	}
	return ll
}

// mStep re-estimates means, scales (standard deviations), and weights from
// the responsibilities. Components with Nk == 0 keep their prior
// parameters, since they carry no mass to update from.
func mStep(values []float64, resp [][]float64, means, scales, weights []float64) {
	k := len(means)
	n := make([]float64, k)
	for i := range values {
		for c := 0; c < k; c++ {
			n[c] += resp[i][c]
		}
	}

	newMeans := make([]float64, k)
	copy(newMeans, means)
	for c := 0; c < k; c++ {
		if n[c] <= 0 {
			continue
		}
		var sum float64
		for i, x := range values {
			sum += resp[i][c] * x
		}
		newMeans[c] = sum / n[c]
	}

	for c := 0; c < k; c++ {
		if n[c] <= 0 {
			continue
		}
		var sumSq float64
		for i, x := range values {
			d := x - newMeans[c]
			sumSq += resp[i][c] * d * d
		}
		scales[c] = math.Sqrt(math.Max(sumSq/n[c], minVariance))
	}
	copy(means, newMeans)

	var total float64
	for c := 0; c < k; c++ {
		if n[c] > 0 {
			weights[c] = n[c] / float64(len(values))
		}
		total += weights[c]
	}
	if total > 0 {
		for c := range weights {
			weights[c] /= total
		}
	}
}

// HardAssign returns, for each sample, the index of the component with
// maximum responsibility.
func HardAssign(resp [][]float64) []int {
	out := make([]int, len(resp))
	for i, row := range resp {
		best := 0
		for c := 1; c < len(row); c++ {
			if row[c] > row[best] {
				best = c
			}
		}
		out[i] = best
	}
	return out
}

// Segments partitions values into per-component slices according to the
// hard assignment of resp.
func Segments(values []float64, resp [][]float64) [][]float64 {
	assign := HardAssign(resp)
	k := 0
	if len(resp) > 0 {
		k = len(resp[0])
	}
	out := make([][]float64, k)
	for i, c := range assign {
		out[c] = append(out[c], values[i])
	}
	return out
}
