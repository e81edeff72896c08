// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vecstat is the top-level convenience entry point: thin
// Extract/ExtractParallel wrappers over transpose, extract, and
// orchestrate, in the same spirit as gonum.org/v1/gonum's own
// package-level convenience wrappers (e.g. stat.Mean delegating to
// floats.Sum) that save callers from wiring the leaf packages by hand.
package vecstat

import (
	"context"

	"github.com/gonum/vecstat/config"
	"github.com/gonum/vecstat/extract"
	"github.com/gonum/vecstat/orchestrate"
	"github.com/gonum/vecstat/transpose"
	"github.com/gonum/vecstat/verify"
)

// VectorSpaceModel re-exports extract.VectorSpaceModel so callers of this
// package need not import extract directly for the common case.
type VectorSpaceModel = extract.VectorSpaceModel

// Extract profiles a dense V×D row-major matrix single-threaded: transpose
// to columns, then run the adaptive extraction pipeline over every
// dimension in sequence. cfg.VerificationLevel controls the InternalVerifier
// sample count when cfg.VerificationEnabled is set.
func Extract(data [][]float32, cfg config.Config) (VectorSpaceModel, error) {
	if err := extract.ValidateMatrix(data); err != nil {
		return VectorSpaceModel{}, err
	}
	columns := transpose.ToColumns(data)

	var v *verify.Verifier
	if cfg.VerificationEnabled {
		v = verify.New(1, 2)
	}
	return extract.Extract(columns, cfg, v)
}

// ExtractParallel profiles data the same way Extract does, but partitions
// dimensions across cfg.Workers goroutines via orchestrate.Orchestrator. If
// numaNodes > 1, dimensions are additionally partitioned per NUMA node,
// falling back to a single pool transparently when numaNodes <= 1 or
// !cfg.NUMAEnabled.
func ExtractParallel(ctx context.Context, data [][]float32, cfg config.Config, numaNodes int) (VectorSpaceModel, error) {
	if err := extract.ValidateMatrix(data); err != nil {
		return VectorSpaceModel{}, err
	}
	columns := transpose.ToColumns(data)

	newVerifier := func() *verify.Verifier { return nil }
	if cfg.VerificationEnabled {
		var seed uint64
		newVerifier = func() *verify.Verifier {
			seed++
			return verify.New(seed, seed+1)
		}
	}

	o := orchestrate.New(cfg)
	if cfg.NUMAEnabled && numaNodes > 1 {
		return o.RunNUMA(ctx, columns, numaNodes, newVerifier)
	}
	return o.Run(ctx, columns, newVerifier)
}
