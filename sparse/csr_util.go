// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"fmt"
	"slices"
)

// This file implements the normalization primitives the optimization pipeline
// is built from: base-correcting copy, per-row column sort, diagonal fill-in,
// and the diagonal/upper-row index build. Each operates on one csrMat and
// never publishes partially built storage: new buffers are completed first
// and swapped in as a whole.

// copyCSR builds an independently owned, 0-based copy of src. The base is
// subtracted from every row pointer and column index; values are copied
// verbatim. For m == 0 or nnz == 0 the result is an empty but well-formed
// triple (zeroed row pointer), so later pipeline stages can still run.
func copyCSR[T Numeric](m, nnz int, base IndexBase, src *csrMat) (csrMat, error) {
	if m < 0 || nnz < 0 {
		// A negative capacity request would panic in make.
		return csrMat{}, fmt.Errorf("cannot allocate copy with m=%d nnz=%d: %w", m, nnz, ErrMemoryAlloc)
	}
	if src.rowPtr == nil || src.colInd == nil || src.val == nil {
		return csrMat{}, fmt.Errorf("copy from nil buffers: %w", ErrInvalidPointer)
	}
	srcVal, err := matValues[T](src.val)
	if err != nil {
		return csrMat{}, err
	}

	dst := csrMat{
		rowPtr: make([]int, m+1),
		colInd: make([]int, nnz),
	}
	dstVal := make([]T, nnz)
	dst.val = dstVal

	if m == 0 || nnz == 0 {
		return dst, nil
	}

	for i := 0; i <= m; i++ {
		dst.rowPtr[i] = src.rowPtr[i] - int(base)
	}
	for i := 0; i < nnz; i++ {
		dst.colInd[i] = src.colInd[i] - int(base)
		dstVal[i] = srcVal[i]
	}
	return dst, nil
}

// sortCSR sorts every row of src by ascending column index, writing the
// sorted columns and values into dst. dst must already hold the same row
// boundaries as src with the base removed (the usual producer is copyCSR);
// row boundaries are never changed.
//
// The sort runs over an index permutation per row rather than swapping the
// column/value pairs directly, and is stable: duplicate column indices keep
// their input order. Duplicates are not deduplicated.
func sortCSR[T Numeric](m, nnz int, base IndexBase, src, dst *csrMat) error {
	if m == 0 || nnz == 0 {
		return nil
	}
	if src.rowPtr == nil || src.colInd == nil || src.val == nil {
		return fmt.Errorf("sort with nil buffers: %w", ErrInvalidPointer)
	}
	srcVal, err := matValues[T](src.val)
	if err != nil {
		return err
	}
	dstVal, err := matValues[T](dst.val)
	if err != nil {
		return err
	}

	perm := make([]int, nnz)
	for j := range perm {
		perm[j] = j
	}

	for i := 0; i < m; i++ {
		idx := src.rowPtr[i] - int(base)
		nnzRow := src.rowPtr[i+1] - int(base) - idx

		row := perm[idx : idx+nnzRow]
		slices.SortStableFunc(row, func(a, b int) int {
			return src.colInd[a] - src.colInd[b]
		})
		for j := idx; j < idx+nnzRow; j++ {
			dst.colInd[j] = src.colInd[perm[j]] - int(base)
			dstVal[j] = srcVal[perm[j]]
		}
	}
	return nil
}

// fillDiag synthesizes explicit zero-valued diagonal entries for every row
// i < n that lacks one. Rows must already be sorted by column. When at least
// one diagonal is missing, fresh storage of size nnz plus the number of
// missing diagonals is built in a single merge pass and swapped into A as a
// whole; otherwise A is returned untouched.
func fillDiag[T Numeric](m, n, nnz int, base IndexBase, A *csrMat) error {
	if A.rowPtr == nil || A.colInd == nil || A.val == nil {
		return fmt.Errorf("diagonal fill with nil buffers: %w", ErrInvalidPointer)
	}
	aVal, err := matValues[T](A.val)
	if err != nil {
		return err
	}

	// For each row, the position in the new arrays where its missing
	// diagonal belongs, or -1 if the row already has one.
	missingDiag := make([]int, m)
	count := 0
	for i := 0; i < m; i++ {
		missingDiag[i] = -1
		diagFound := false
		idx := A.rowPtr[i] - int(base)
		idxEnd := A.rowPtr[i+1] - int(base)
		for ; idx < idxEnd; idx++ {
			j := A.colInd[idx] - int(base)
			if j == i {
				diagFound = true
				break
			}
			if j > i {
				break
			}
		}
		if !diagFound && i < n {
			missingDiag[i] = idx + count
			count++
		}
	}

	if count == 0 {
		return nil
	}

	nnzNew := nnz + count
	rowPtrNew := make([]int, m+1)
	colIndNew := make([]int, nnzNew)
	valNew := make([]T, nnzNew)

	nAdded, nnzCurr := 0, 0
	for i := 0; i < m; i++ {
		idxEnd := A.rowPtr[i+1] - int(base)
		rowPtrNew[i] = A.rowPtr[i] - int(base) + nAdded
		// Copy the row, splicing the zero diagonal in at its slot.
		for idx := A.rowPtr[i] - int(base); idx < idxEnd; idx++ {
			if nnzCurr == missingDiag[i] {
				nAdded++
				colIndNew[nnzCurr] = i
				valNew[nnzCurr] = 0
				nnzCurr++
			}
			colIndNew[nnzCurr] = A.colInd[idx] - int(base)
			valNew[nnzCurr] = aVal[idx]
			nnzCurr++
		}
		if nnzCurr == missingDiag[i] {
			// Empty rows and rows whose entries all lie left of the
			// diagonal append it at the end.
			nAdded++
			colIndNew[nnzCurr] = i
			valNew[nnzCurr] = 0
			nnzCurr++
		}
	}
	rowPtrNew[m] = nnzNew

	A.rowPtr = rowPtrNew
	A.colInd = colIndNew
	A.val = valNew
	return nil
}

// csrIndices computes, for every row of a sorted matrix, the position of its
// diagonal entry (idiag) and the position of the first entry strictly above
// the diagonal (iurow). Positions are absolute, 0-based offsets into colInd
// regardless of base. Rows without a diagonal entry (possible past the square
// part when m > n) report idiag -1 and iurow at the upper-triangle start.
//
// The multiply kernels do not read these indices; they are the per-row split
// points for kernels that traverse one triangle of the matrix directly, such
// as triangular solves.
func csrIndices(m int, base IndexBase, rowPtr, colInd []int) (idiag, iurow []int, err error) {
	if rowPtr == nil || colInd == nil {
		return nil, nil, fmt.Errorf("index build with nil buffers: %w", ErrInvalidPointer)
	}

	idiag = make([]int, m)
	iurow = make([]int, m)
	for i := 0; i < m; i++ {
		idxEnd := rowPtr[i+1] - int(base)
		idiag[i] = -1
		iurow[i] = idxEnd
		for idx := rowPtr[i] - int(base); idx < idxEnd; idx++ {
			j := colInd[idx] - int(base)
			if j == i && idiag[i] < 0 {
				idiag[i] = idx
			}
			if j > i {
				iurow[i] = idx
				break
			}
		}
	}
	return idiag, iurow, nil
}
