// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

// Package sparse implements compressed sparse row (CSR) storage together with
// the numeric kernels that operate on it: sparse matrix-vector multiplication
// (SpMV) and sparse matrix-matrix multiplication (SpGEMM).
//
// A matrix handle is created from user-owned CSR buffers and can be optimized
// once into a normalized form: 0-based, column-sorted within each row, with an
// explicit (possibly zero) diagonal entry in every row. When the user's
// buffers already satisfy these invariants the normalized form aliases them
// directly and no copy is made; otherwise the library builds an exclusively
// owned copy. Kernels always execute against the normalized form once a
// matrix has been optimized.
//
// Basic usage:
//
//	rowPtr := []int{0, 2, 3, 4, 7, 8}
//	colInd := []int{0, 3, 1, 2, 1, 3, 4, 4}
//	val := []float64{1, 2, 3, 4, 5, 6, 7, 8}
//
//	A, err := sparse.NewCSR(sparse.IndexBaseZero, 5, 5, rowPtr, colInd, val)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := A.Optimize(); err != nil {
//		log.Fatal(err)
//	}
//
//	descr := sparse.NewMatDescr()
//	y := make([]float64, 5)
//	err = sparse.MV(sparse.OperationNone, 1.0, A, descr, x, 0.0, y)
//
// SpMV kernels are selected at runtime from the matrix density and the
// detected CPU capability: a scalar kernel for very short rows, and
// lane-blocked gather/FMA kernels at AVX2 and AVX-512 widths otherwise. The
// row loop is parallelized over a process-wide worker pool sized once from
// GOSPARSE_NUM_THREADS (default GOMAXPROCS). Setting GOSPARSE_NO_SIMD forces
// the narrow execution paths regardless of CPU capability.
//
// Every public operation reports failures through a fixed set of sentinel
// errors (ErrInvalidPointer, ErrInvalidSize, ...); see errors.go. No kernel
// panics on valid handles.
package sparse
