// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the immutable configuration record recognized by
// vecstat's core. It follows the shape of gonum.org/v1/gonum/fd.Settings and
// gonum.org/v1/gonum/optimize.Settings: a plain struct, a Default
// constructor, and no setter chain — callers either set fields directly on
// the returned value or compose Option values with Apply.
package config

// VerificationLevel selects the sample count InternalVerifier draws from a
// candidate model before refitting it.
type VerificationLevel int

const (
	// Fast draws 500 samples.
	Fast VerificationLevel = iota
	// Balanced draws 1000 samples.
	Balanced
	// Thorough draws 5000 samples.
	Thorough
)

// SampleCount returns the number of samples InternalVerifier draws at this
// level.
func (v VerificationLevel) SampleCount() int {
	switch v {
	case Fast:
		return 500
	case Balanced:
		return 1000
	case Thorough:
		return 5000
	default:
		return 1000
	}
}

// Config is the immutable configuration consulted by every core component.
// Construct one with Default and override individual fields with With*
// options, or set fields directly on the value returned by Default before
// passing it down — Config carries no internal state and no method mutates
// it.
type Config struct {
	// BatchSize is the number of dimensions assigned to a single worker
	// task by the orchestrator (default 64).
	BatchSize int
	// SIMDLanes is the lane width used by the batched moment pass
	// (platform-native, typically 8 for float64).
	SIMDLanes int
	// Workers is the number of worker goroutines in the work-stealing
	// pool (default: logical CPU count).
	Workers int
	// NUMAEnabled requests per-node worker pools and first-touch
	// per-node partitioning when a NUMA topology is detected.
	NUMAEnabled bool

	// KSParametric is the KS D-statistic threshold below which a single
	// parametric fit is accepted outright (default 0.03).
	KSParametric float64
	// KSComposite is the KS D-statistic threshold below which a
	// composite (mixture) fit is accepted (default 0.05).
	KSComposite float64
	// MaxCompositeK bounds the number of mixture components tried
	// (default 10, valid range [2,10]).
	MaxCompositeK int

	// VerificationEnabled toggles the InternalVerifier round-trip check
	// on parametric acceptance.
	VerificationEnabled bool
	// VerificationLevel selects the InternalVerifier sample count.
	VerificationLevel VerificationLevel
	// DriftThreshold is the maximum allowed per-parameter relative drift
	// for InternalVerifier to pass (default 0.005).
	DriftThreshold float64

	// EquivalenceThreshold is the CDF-sup-norm tolerance used by the
	// Normal<->Beta and Composite<->Simple equivalence rules (default
	// 0.08).
	EquivalenceThreshold float64

	// EMMaxIterations caps the number of EM iterations (default 50).
	EMMaxIterations int
	// EMConvergence is the log-likelihood delta below which EM is
	// considered converged (default 1e-6).
	EMConvergence float64
}

// Default returns the configuration record with every field set to its
// recommended default.
func Default() Config {
	return Config{
		BatchSize:            64,
		SIMDLanes:            8,
		Workers:              0, // 0 means "logical CPU count"; resolved by the orchestrator.
		NUMAEnabled:          false,
		KSParametric:         0.03,
		KSComposite:          0.05,
		MaxCompositeK:        10,
		VerificationEnabled:  true,
		VerificationLevel:    Balanced,
		DriftThreshold:       0.005,
		EquivalenceThreshold: 0.08,
		EMMaxIterations:      50,
		EMConvergence:        1e-6,
	}
}

// Option mutates a Config value, returning the adjusted copy. Options are
// applied with Apply; Config itself stays a plain immutable record.
type Option func(Config) Config

// Apply folds a sequence of Options onto Default(), returning the resulting
// Config. Config is never mutated after Apply returns.
func Apply(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}

// WithBatchSize overrides BatchSize.
func WithBatchSize(n int) Option {
	return func(c Config) Config { c.BatchSize = n; return c }
}

// WithWorkers overrides Workers.
func WithWorkers(n int) Option {
	return func(c Config) Config { c.Workers = n; return c }
}

// WithNUMA overrides NUMAEnabled.
func WithNUMA(enabled bool) Option {
	return func(c Config) Config { c.NUMAEnabled = enabled; return c }
}

// WithThresholds overrides the parametric and composite KS acceptance
// thresholds.
func WithThresholds(ksParametric, ksComposite float64) Option {
	return func(c Config) Config {
		c.KSParametric = ksParametric
		c.KSComposite = ksComposite
		return c
	}
}

// WithVerification overrides verification toggling and level.
func WithVerification(enabled bool, level VerificationLevel) Option {
	return func(c Config) Config {
		c.VerificationEnabled = enabled
		c.VerificationLevel = level
		return c
	}
}

// WithMaxCompositeK overrides MaxCompositeK.
func WithMaxCompositeK(k int) Option {
	return func(c Config) Config { c.MaxCompositeK = k; return c }
}

// WithEquivalenceThreshold overrides EquivalenceThreshold.
func WithEquivalenceThreshold(tol float64) Option {
	return func(c Config) Config { c.EquivalenceThreshold = tol; return c }
}

// WithEMSettings overrides EMMaxIterations and EMConvergence.
func WithEMSettings(maxIterations int, convergence float64) Option {
	return func(c Config) Config {
		c.EMMaxIterations = maxIterations
		c.EMConvergence = convergence
		return c
	}
}

// WithSIMDLanes overrides SIMDLanes.
func WithSIMDLanes(lanes int) Option {
	return func(c Config) Config { c.SIMDLanes = lanes; return c }
}
