// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orchestrate partitions dimensions into batchSize-sized tasks,
// dispatches them to a channel-based worker pool, and collects results with
// cooperative first-failure cancellation. The worker pool itself is
// grounded directly on gonum.org/v1/gonum/diff/fd's Gradient worker pool
// (sendChan/ansChan/quit, one goroutine per worker reading off a shared
// task channel), generalized from "one worker computes one
// finite-difference partial" to "one worker fits one batch of dimensions".
// Cooperative cancellation uses golang.org/x/sync/errgroup, the
// ecosystem-idiomatic replacement for a raw sync.WaitGroup with a manually
// captured first error.
package orchestrate

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gonum/vecstat/config"
	"github.com/gonum/vecstat/extract"
	"github.com/gonum/vecstat/internal/numerr"
	"github.com/gonum/vecstat/moment"
	"github.com/gonum/vecstat/scalarmodel"
	"github.com/gonum/vecstat/simdmoment"
	"github.com/gonum/vecstat/transpose"
	"github.com/gonum/vecstat/verify"
)

// State is the per-extraction state machine: IDLE -> RUNNING ->
// (SUCCESS | FAILED), no RESUME.
type State int

const (
	Idle State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Running:
		return "RUNNING"
	case Succeeded:
		return "SUCCESS"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// task is one unit of work submitted to the pool: a contiguous batch of
// dimensions owned end-to-end by a single worker, from moment accumulation
// through model emission.
type task struct {
	startDim int
	columns  [][]float64
}

// Orchestrator runs the adaptive extraction pipeline across dimensions
// using a work-stealing-shaped channel pool.
type Orchestrator struct {
	cfg   config.Config
	state atomic.Int32
	// Progress is incremented once per completed dimension; callers may
	// poll it from another goroutine to report progress.
	Progress atomic.Int64
}

// New returns an Orchestrator configured by cfg.
func New(cfg config.Config) *Orchestrator {
	return &Orchestrator{cfg: cfg}
}

// State reports the orchestrator's current lifecycle state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func batchesOf(columns [][]float64, batchSize int) []task {
	if batchSize <= 0 {
		batchSize = 64
	}
	var tasks []task
	for start := 0; start < len(columns); start += batchSize {
		end := start + batchSize
		if end > len(columns) {
			end = len(columns)
		}
		tasks = append(tasks, task{startDim: start, columns: columns[start:end]})
	}
	return tasks
}

func (o *Orchestrator) workerCount() int {
	if o.cfg.Workers > 0 {
		return o.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Run partitions columns (already transposed to [dim][vector]) into
// batchSize-sized tasks and fits every dimension, cancelling outstanding
// work on the first failure. The verifier factory, when non-nil, is called
// once per worker to give each worker its own seeded InternalVerifier:
// workers never share an RNG, so Verifier itself need not be thread-safe.
func (o *Orchestrator) Run(ctx context.Context, columns [][]float64, newVerifier func() *verify.Verifier) (extract.VectorSpaceModel, error) {
	results, err := o.run(ctx, columns, 0, newVerifier)
	if err != nil {
		return extract.VectorSpaceModel{}, err
	}
	return assemble(columns, results), nil
}

// run is Run's implementation, parameterized by a global dimension offset
// so RunNUMA's per-node Orchestrators can report DimensionResult.Dimension
// values in the caller's global numbering rather than each node's local
// 0-based numbering.
func (o *Orchestrator) run(ctx context.Context, columns [][]float64, dimOffset int, newVerifier func() *verify.Verifier) ([]extract.DimensionResult, error) {
	o.state.Store(int32(Running))

	tasks := batchesOf(columns, o.cfg.BatchSize)
	if len(tasks) == 0 {
		o.state.Store(int32(Succeeded))
		return nil, nil
	}

	results := make([]extract.DimensionResult, len(columns))
	g, gctx := errgroup.WithContext(ctx)

	sendChan := make(chan task, len(tasks))
	for _, t := range tasks {
		sendChan <- t
	}
	close(sendChan)

	nWorkers := o.workerCount()
	if nWorkers > len(tasks) {
		nWorkers = len(tasks)
	}
	if nWorkers < 1 {
		nWorkers = 1
	}

	for w := 0; w < nWorkers; w++ {
		var v *verify.Verifier
		if newVerifier != nil {
			v = newVerifier()
		}
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return numerr.New(numerr.CancelledExtraction, "extraction cancelled")
				case t, ok := <-sendChan:
					if !ok {
						return nil
					}
					if err := o.fitTask(gctx, t, dimOffset, v, results); err != nil {
						return err
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		o.state.Store(int32(Failed))
		return nil, err
	}

	o.state.Store(int32(Succeeded))
	return results, nil
}

// fitTask fits every dimension in t, batching contiguous dimensions
// through simdmoment.Batch/transpose.Interleave (width cfg.SIMDLanes)
// before handing each dimension's precomputed moments and sorted values to
// extract.ExtractDimensionWithStats. Each column is sorted before it enters
// the interleaved buffer, so the batched moment pass visits values in the
// same order the scalar path would, and its Stats come out bit-identical
// to moment.TwoPass run directly on the sorted column. A batch is skipped
// down to the scalar extract.ExtractDimension path, which does its own
// finite-value check, whenever any of its columns contains a non-finite
// value or the batch width degenerates to 1.
func (o *Orchestrator) fitTask(gctx context.Context, t task, dimOffset int, v *verify.Verifier, results []extract.DimensionResult) error {
	lanes := o.cfg.SIMDLanes
	if lanes < 2 {
		lanes = 1
	}

	for i := 0; i < len(t.columns); i += lanes {
		select {
		case <-gctx.Done():
			return numerr.New(numerr.CancelledExtraction, "extraction cancelled")
		default:
		}

		width := lanes
		if i+width > len(t.columns) {
			width = len(t.columns) - i
		}

		if lanes > 1 && width > 1 && batchFinite(t.columns[i:i+width]) {
			sortedCols := make([][]float64, width)
			for j := range sortedCols {
				col := append([]float64(nil), t.columns[i+j]...)
				sort.Float64s(col)
				sortedCols[j] = col
			}
			buf := transpose.Interleave(sortedCols, 0, width)
			statsBatch := simdmoment.Batch(buf, len(sortedCols[0]), width, dimOffset+t.startDim+i)
			for j := 0; j < width; j++ {
				dimResult, err := extract.ExtractDimensionWithStats(dimOffset+t.startDim+i+j, sortedCols[j], statsBatch[j], o.cfg, v)
				if err != nil {
					return err
				}
				results[t.startDim+i+j] = dimResult
				o.Progress.Add(1)
			}
			continue
		}

		for j := 0; j < width; j++ {
			dimResult, err := extract.ExtractDimension(dimOffset+t.startDim+i+j, t.columns[i+j], o.cfg, v)
			if err != nil {
				return err
			}
			results[t.startDim+i+j] = dimResult
			o.Progress.Add(1)
		}
	}
	return nil
}

func batchFinite(columns [][]float64) bool {
	for _, col := range columns {
		if !moment.ValidateFinite(col) {
			return false
		}
	}
	return true
}

// RunNUMA partitions columns evenly across numNodes independent
// Orchestrators, one per detected NUMA node, and concatenates their
// results. Go has no portable thread-pinning API, so this only partitions
// data per node; it never attempts actual CPU/memory affinity. numNodes <=
// 1 degrades to a single Run call with identical behavior.
func (o *Orchestrator) RunNUMA(ctx context.Context, columns [][]float64, numNodes int, newVerifier func() *verify.Verifier) (extract.VectorSpaceModel, error) {
	if numNodes <= 1 {
		return o.Run(ctx, columns, newVerifier)
	}

	o.state.Store(int32(Running))
	nodeSize := (len(columns) + numNodes - 1) / numNodes
	results := make([]extract.DimensionResult, len(columns))
	g, gctx := errgroup.WithContext(ctx)

	for node := 0; node < numNodes; node++ {
		start := node * nodeSize
		if start >= len(columns) {
			break
		}
		end := start + nodeSize
		if end > len(columns) {
			end = len(columns)
		}
		nodeColumns := columns[start:end]
		nodeOffset := start
		nodeOrch := New(o.cfg)
		g.Go(func() error {
			nodeResults, err := nodeOrch.run(gctx, nodeColumns, nodeOffset, newVerifier)
			if err != nil {
				return err
			}
			o.Progress.Add(nodeOrch.Progress.Load())
			copy(results[nodeOffset:nodeOffset+len(nodeResults)], nodeResults)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		o.state.Store(int32(Failed))
		return extract.VectorSpaceModel{}, err
	}
	o.state.Store(int32(Succeeded))
	return assemble(columns, results), nil
}

func assemble(columns [][]float64, results []extract.DimensionResult) extract.VectorSpaceModel {
	var unique uint64
	if len(columns) > 0 {
		unique = uint64(len(columns[0]))
	}
	components := make([]scalarmodel.Model, len(results))
	for i, r := range results {
		components[i] = r.Model
	}
	return extract.VectorSpaceModel{
		UniqueVectorsTarget: unique,
		Components:          components,
		Strategies:          results,
	}
}
