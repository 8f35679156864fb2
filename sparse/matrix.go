// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import "fmt"

// csrMat is one CSR storage triple. The value slice is held untyped so the
// handle can carry any supported element type behind a single struct; the
// generic kernels extract it exactly once per call.
type csrMat struct {
	rowPtr []int
	colInd []int
	val    any
}

// Matrix is an opaque handle over user-supplied CSR data plus the
// optimization state the kernels execute against.
//
// The user's buffers are never mutated. After a successful Optimize the
// handle additionally carries the normalized form: either an alias of the
// user's buffers (when they were already sorted with a full diagonal) or an
// exclusively owned, 0-based copy. In the aliased case the caller must keep
// the original buffers alive and unmodified for the lifetime of the handle.
type Matrix struct {
	m, n, nnz int
	base      IndexBase
	valType   ValueType

	// csr aliases the caller's raw buffers.
	csr csrMat

	// Normalized representation, valid once optimized is set.
	optCSR       csrMat
	optIsUser    bool      // optCSR aliases csr, no copy was made
	internalBase IndexBase // base of optCSR; always zero when owned
	idiag        []int     // per-row position of the diagonal entry, -1 if none
	iurow        []int     // per-row position of the first strictly upper entry
	fullDiag     bool      // no zero diagonal fill-in was synthesized
	optimized    bool
}

// NewCSR creates a matrix handle over the caller's CSR buffers without
// copying them. nnz is taken from len(val); rowPtr must hold at least m+1
// entries and colInd exactly as many entries as val.
//
// Only shallow consistency is checked here. Full structural validation is
// performed by Optimize, or explicitly via Validate.
func NewCSR[T Numeric](base IndexBase, m, n int, rowPtr, colInd []int, val []T) (*Matrix, error) {
	if m < 0 || n < 0 {
		return nil, fmt.Errorf("dimensions %dx%d: %w", m, n, ErrInvalidSize)
	}
	if !base.valid() {
		return nil, fmt.Errorf("index base %d: %w", base, ErrInvalidValue)
	}
	if rowPtr == nil || colInd == nil || val == nil {
		return nil, fmt.Errorf("nil CSR buffer: %w", ErrInvalidPointer)
	}
	if len(rowPtr) < m+1 {
		return nil, fmt.Errorf("row pointer length %d, need %d: %w", len(rowPtr), m+1, ErrInvalidSize)
	}
	if len(colInd) != len(val) {
		return nil, fmt.Errorf("column index length %d, value length %d: %w", len(colInd), len(val), ErrInvalidSize)
	}

	return &Matrix{
		m:       m,
		n:       n,
		nnz:     len(val),
		base:    base,
		valType: valueTypeOf[T](),
		csr: csrMat{
			rowPtr: rowPtr,
			colInd: colInd,
			val:    val,
		},
	}, nil
}

// Dims returns the matrix dimensions.
func (A *Matrix) Dims() (m, n int) {
	return A.m, A.n
}

// NNZ returns the number of stored entries in the raw representation.
// Optimization may add zero diagonal fill-in beyond this count.
func (A *Matrix) NNZ() int {
	return A.nnz
}

// Base returns the index base of the raw representation.
func (A *Matrix) Base() IndexBase {
	return A.base
}

// ValueType returns the element type the handle was created with.
func (A *Matrix) ValueType() ValueType {
	return A.valType
}

// IsOptimized reports whether the normalized representation has been built.
func (A *Matrix) IsOptimized() bool {
	return A != nil && A.optimized
}

// matValues extracts the typed value slice from an untyped CSR triple.
func matValues[T Numeric](v any) ([]T, error) {
	s, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("value buffer holds %T: %w", v, ErrWrongType)
	}
	return s, nil
}
