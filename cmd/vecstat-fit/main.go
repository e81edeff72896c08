// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vecstat-fit is a thin presentation layer over the vecstat core:
// it reads a CSV matrix of vectors, runs the adaptive extraction pipeline,
// and prints the per-dimension strategy, KS score and explanation as plain
// text. It owns no core logic of its own.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gonum/vecstat"
	"github.com/gonum/vecstat/config"
)

func main() {
	path := flag.String("csv", "", "path to a CSV file of vectors (one row per vector)")
	parallel := flag.Bool("parallel", false, "use the parallel orchestrator")
	workers := flag.Int("workers", 0, "worker count (0 = logical CPU count)")
	flag.Parse()

	if *path == "" {
		log.Fatal("vecstat-fit: -csv is required")
	}

	data, err := readCSV(*path)
	if err != nil {
		log.Fatalf("vecstat-fit: %v", err)
	}
	log.Printf("loaded %d vectors of %d dimensions from %s", len(data), len(data[0]), *path)

	cfg := config.Default()
	cfg.Workers = *workers

	var model vecstat.VectorSpaceModel
	if *parallel {
		model, err = vecstat.ExtractParallel(context.Background(), data, cfg, 1)
	} else {
		model, err = vecstat.Extract(data, cfg)
	}
	if err != nil {
		log.Fatalf("vecstat-fit: extraction failed: %v", err)
	}

	report(model)
}

func readCSV(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	var rows [][]float32
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		row := make([]float32, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("vecstat-fit: parsing %q: %w", field, err)
			}
			row[i] = float32(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func report(model vecstat.VectorSpaceModel) {
	fmt.Printf("unique vectors target: %d\n", model.UniqueVectorsTarget)
	for _, s := range model.Strategies {
		fmt.Printf("dim %4d  strategy=%-12s  ks=%.4f  %s\n", s.Dimension, s.Strategy, s.KS, s.Explain)
	}
}
