// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

// Command spmvbench measures sparse matrix-vector multiply throughput on
// randomly generated CSR matrices.
//
// Usage:
//
//	spmvbench --rows 10000 --cols 10000 --row-nnz 16 --iters 100
//	spmvbench --rows 4096 --type float32 --verify
//
// The matrix is generated with a fixed number of nonzeros per row (plus a
// guaranteed diagonal), optimized once, then multiplied repeatedly. With
// --verify the first product is checked against a dense reference computed
// row by row with vek dot products.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"

	"github.com/ajroetker/go-sparse/sparse"
)

type benchConfig struct {
	rows    int
	cols    int
	rowNNZ  int
	iters   int
	valType string
	verify  bool
	seed    int64
}

func main() {
	cfg := benchConfig{}

	rootCmd := &cobra.Command{
		Use:   "spmvbench",
		Short: "Benchmark sparse matrix-vector multiplication",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().IntVar(&cfg.rows, "rows", 10000, "Number of matrix rows")
	rootCmd.Flags().IntVar(&cfg.cols, "cols", 0, "Number of matrix columns (default: same as rows)")
	rootCmd.Flags().IntVar(&cfg.rowNNZ, "row-nnz", 16, "Nonzeros per row, including the diagonal")
	rootCmd.Flags().IntVar(&cfg.iters, "iters", 100, "Number of multiply iterations to time")
	rootCmd.Flags().StringVar(&cfg.valType, "type", "float64", "Element type: float64 or float32")
	rootCmd.Flags().BoolVar(&cfg.verify, "verify", false, "Check the first product against a dense reference")
	rootCmd.Flags().Int64Var(&cfg.seed, "seed", 42, "Random seed for matrix generation")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg benchConfig) error {
	if cfg.cols == 0 {
		cfg.cols = cfg.rows
	}
	if cfg.rows <= 0 || cfg.cols <= 0 || cfg.rowNNZ <= 0 || cfg.iters <= 0 {
		return fmt.Errorf("rows, cols, row-nnz and iters must be positive")
	}

	switch cfg.valType {
	case "float64":
		return bench[float64](cfg)
	case "float32":
		return bench[float32](cfg)
	default:
		return fmt.Errorf("unsupported element type %q", cfg.valType)
	}
}

func bench[T float32 | float64](cfg benchConfig) error {
	rng := rand.New(rand.NewSource(cfg.seed))
	rowPtr, colInd, val := randomCSR[T](rng, cfg.rows, cfg.cols, cfg.rowNNZ)
	nnz := len(val)

	A, err := sparse.NewCSR(sparse.IndexBaseZero, cfg.rows, cfg.cols, rowPtr, colInd, val)
	if err != nil {
		return fmt.Errorf("building matrix: %w", err)
	}

	optStart := time.Now()
	if err := A.Optimize(); err != nil {
		return fmt.Errorf("optimizing matrix: %w", err)
	}
	optElapsed := time.Since(optStart)

	x := make([]T, cfg.cols)
	for i := range x {
		x[i] = T(rng.Float64())
	}
	y := make([]T, cfg.rows)

	descr := sparse.NewMatDescr()
	ctx := sparse.CurrentContext()
	fmt.Printf("matrix: %dx%d, nnz=%d (%.4f%% dense), type=%s\n",
		cfg.rows, cfg.cols, nnz,
		100*float64(nnz)/(float64(cfg.rows)*float64(cfg.cols)), cfg.valType)
	fmt.Printf("context: threads=%d avx512=%v\n", ctx.NumThreads, ctx.HasAVX512)
	fmt.Printf("optimize: %v\n", optElapsed)

	if cfg.verify {
		if err := sparse.MV(sparse.OperationNone, T(1), A, descr, x, T(0), y); err != nil {
			return err
		}
		if err := verifyDense(rowPtr, colInd, val, x, y, cfg.cols); err != nil {
			return err
		}
		fmt.Println("verify: ok")
	}

	start := time.Now()
	for i := 0; i < cfg.iters; i++ {
		if err := sparse.MV(sparse.OperationNone, T(1), A, descr, x, T(0), y); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	perIter := elapsed / time.Duration(cfg.iters)
	gflops := 2 * float64(nnz) / perIter.Seconds() / 1e9
	fmt.Printf("spmv: %d iters in %v (%v/iter, %.2f GFLOP/s)\n",
		cfg.iters, elapsed, perIter, gflops)
	return nil
}

// randomCSR generates a sorted CSR matrix with rowNNZ entries per row. The
// diagonal of the square part is always present so optimization can alias
// the buffers instead of copying.
func randomCSR[T float32 | float64](rng *rand.Rand, m, n, rowNNZ int) (rowPtr, colInd []int, val []T) {
	if rowNNZ > n {
		rowNNZ = n
	}
	rowPtr = make([]int, m+1)
	colInd = make([]int, 0, m*rowNNZ)
	val = make([]T, 0, m*rowNNZ)

	cols := make([]int, 0, rowNNZ)
	for i := 0; i < m; i++ {
		cols = cols[:0]
		if i < n {
			cols = append(cols, i)
		}
		for len(cols) < rowNNZ {
			c := rng.Intn(n)
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
		slices.Sort(cols)
		for _, c := range cols {
			colInd = append(colInd, c)
			val = append(val, T(rng.Float64()))
		}
		rowPtr[i+1] = len(colInd)
	}
	return rowPtr, colInd, val
}

// verifyDense checks y against a dense row-by-row reference. Each CSR row is
// scattered into a dense buffer and reduced with a vek dot product.
func verifyDense[T float32 | float64](rowPtr, colInd []int, val []T, x, y []T, n int) error {
	const tol = 1e-5
	dense := make([]T, n)
	for i := 0; i+1 < len(rowPtr); i++ {
		for j := range dense {
			dense[j] = 0
		}
		for idx := rowPtr[i]; idx < rowPtr[i+1]; idx++ {
			dense[colInd[idx]] = val[idx]
		}
		var want float64
		switch dv := any(dense).(type) {
		case []float64:
			want = vek.Dot(dv, any(x).([]float64))
		case []float32:
			want = float64(vek32.Dot(dv, any(x).([]float32)))
		}
		got := float64(y[i])
		diff := got - want
		if diff < 0 {
			diff = -diff
		}
		if diff > tol*(1+abs(want)) {
			return fmt.Errorf("row %d: got %g, want %g", i, got, want)
		}
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
