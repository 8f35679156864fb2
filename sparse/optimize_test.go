// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleCSR returns the 5x5 example matrix, already sorted with a full
// diagonal:
//
//	1 0 0 2 0
//	0 3 0 0 0
//	0 0 4 0 0
//	0 5 0 6 7
//	0 0 0 0 8
func sampleCSR() (rowPtr, colInd []int, val []float64) {
	rowPtr = []int{0, 2, 3, 4, 7, 8}
	colInd = []int{0, 3, 1, 2, 1, 3, 4, 4}
	val = []float64{1, 2, 3, 4, 5, 6, 7, 8}
	return
}

func TestOptimizeAliasesCleanInput(t *testing.T) {
	rowPtr, colInd, val := sampleCSR()
	A, err := NewCSR(IndexBaseZero, 5, 5, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())
	require.True(t, A.IsOptimized())

	// Sorted + full diagonal: the normalized form must alias the user's
	// buffers with zero extra allocation.
	assert.True(t, A.optIsUser)
	assert.Same(t, &rowPtr[0], &A.optCSR.rowPtr[0])
	assert.Same(t, &colInd[0], &A.optCSR.colInd[0])
	assert.Same(t, &val[0], &A.optCSR.val.([]float64)[0])
	assert.Equal(t, IndexBaseZero, A.internalBase)
	assert.True(t, A.fullDiag)

	assert.Equal(t, []int{0, 2, 3, 5, 7}, A.idiag)
	assert.Equal(t, []int{1, 3, 4, 6, 8}, A.iurow)

	// Numeric values are untouched.
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, val)
}

func TestOptimizeAliasedKeepsUserBase(t *testing.T) {
	// Same matrix, 1-based: still clean, so the base correction is
	// deferred to execution time rather than forcing a copy.
	rowPtr := []int{1, 3, 4, 5, 8, 9}
	colInd := []int{1, 4, 2, 3, 2, 4, 5, 5}
	val := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	A, err := NewCSR(IndexBaseOne, 5, 5, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())
	assert.True(t, A.optIsUser)
	assert.Equal(t, IndexBaseOne, A.internalBase)
	assert.Equal(t, []int{0, 2, 3, 5, 7}, A.idiag)
}

func TestOptimizeCopiesAndSorts(t *testing.T) {
	// Row 0 unsorted; diagonals all present.
	rowPtr := []int{0, 2, 4}
	colInd := []int{1, 0, 0, 1}
	val := []float64{2, 1, 3, 4}
	A, err := NewCSR(IndexBaseZero, 2, 2, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())
	require.True(t, A.IsOptimized())

	assert.False(t, A.optIsUser)
	assert.Equal(t, IndexBaseZero, A.internalBase)
	assert.True(t, A.fullDiag)

	assert.Equal(t, []int{0, 2, 4}, A.optCSR.rowPtr)
	assert.Equal(t, []int{0, 1, 0, 1}, A.optCSR.colInd)
	assert.Equal(t, []float64{1, 2, 3, 4}, A.optCSR.val)

	// The user's buffers stay as given.
	assert.Equal(t, []int{1, 0, 0, 1}, colInd)
	assert.Equal(t, []float64{2, 1, 3, 4}, val)
}

func TestOptimizeFillsMissingDiagonal(t *testing.T) {
	// Sorted but row 1 lacks its diagonal.
	rowPtr := []int{0, 1, 2}
	colInd := []int{0, 0}
	val := []float64{1, 2}
	A, err := NewCSR(IndexBaseZero, 2, 2, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())

	assert.False(t, A.optIsUser)
	assert.False(t, A.fullDiag) // fill-in was synthesized
	assert.Equal(t, []int{0, 1, 3}, A.optCSR.rowPtr)
	assert.Equal(t, []int{0, 0, 1}, A.optCSR.colInd)
	assert.Equal(t, []float64{1, 2, 0}, A.optCSR.val)
	assert.Equal(t, []int{0, 2}, A.idiag)
	assert.Equal(t, []int{1, 3}, A.iurow)
}

func TestOptimizeSortThenFill(t *testing.T) {
	// Unsorted and missing a diagonal: both normalization stages run.
	rowPtr := []int{0, 2, 3}
	colInd := []int{1, 0, 0}
	val := []float64{2, 1, 3}
	A, err := NewCSR(IndexBaseZero, 2, 2, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())

	assert.Equal(t, []int{0, 2, 4}, A.optCSR.rowPtr)
	assert.Equal(t, []int{0, 1, 0, 1}, A.optCSR.colInd)
	assert.Equal(t, []float64{1, 2, 3, 0}, A.optCSR.val)
	assert.Equal(t, []int{0, 3}, A.idiag)
}

func TestOptimizeOneBasedCopyPath(t *testing.T) {
	// 1-based and unsorted: the owned copy removes the base once.
	rowPtr := []int{1, 3, 4}
	colInd := []int{2, 1, 2}
	val := []float64{2, 1, 4}
	A, err := NewCSR(IndexBaseOne, 2, 2, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())

	assert.False(t, A.optIsUser)
	assert.Equal(t, IndexBaseZero, A.internalBase)
	assert.Equal(t, []int{0, 2, 3}, A.optCSR.rowPtr)
	assert.Equal(t, []int{0, 1, 1}, A.optCSR.colInd)
	assert.Equal(t, []float64{1, 2, 4}, A.optCSR.val)
}

func TestOptimizeIdempotent(t *testing.T) {
	rowPtr, colInd, val := sampleCSR()
	A, err := NewCSR(IndexBaseZero, 5, 5, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())
	optRowPtr := A.optCSR.rowPtr
	idiag := A.idiag

	// Re-optimizing an optimized handle is a no-op success.
	require.NoError(t, A.Optimize())
	assert.Same(t, &optRowPtr[0], &A.optCSR.rowPtr[0])
	assert.Same(t, &idiag[0], &A.idiag[0])
}

func TestOptimizeInvalidMatrix(t *testing.T) {
	// Column index out of bounds: validation fails and the handle stays
	// unoptimized.
	A, err := NewCSR(IndexBaseZero, 2, 2, []int{0, 1, 2}, []int{0, 7}, []float64{1, 2})
	require.NoError(t, err)

	err = A.Optimize()
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.False(t, A.IsOptimized())
	assert.Nil(t, A.optCSR.rowPtr)
}

func TestOptimizeInconsistentEmptyRowPtr(t *testing.T) {
	// No stored entries but a garbage row pointer: validation must reject
	// the handle before the sort/diagonal probe walks the empty buffers.
	A, err := NewCSR(IndexBaseZero, 2, 2, []int{0, 2, 0}, []int{}, []float64{})
	require.NoError(t, err)

	err = A.Optimize()
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.False(t, A.IsOptimized())
}

func TestOptimizeNilHandle(t *testing.T) {
	var A *Matrix
	assert.ErrorIs(t, A.Optimize(), ErrInvalidPointer)
}

func TestOptimizeEmptyMatrix(t *testing.T) {
	A, err := NewCSR(IndexBaseZero, 2, 2, []int{0, 0, 0}, []int{}, []float64{})
	require.NoError(t, err)

	require.NoError(t, A.Optimize())
	assert.True(t, A.IsOptimized())
	// Both diagonals are synthesized fill-in.
	assert.Equal(t, []int{0, 1, 2}, A.optCSR.rowPtr)
	assert.Equal(t, []int{0, 1}, A.optCSR.colInd)
	assert.Equal(t, []float64{0, 0}, A.optCSR.val)
}

func TestOptimizeComplexValues(t *testing.T) {
	rowPtr := []int{0, 2, 3}
	colInd := []int{1, 0, 1}
	val := []complex128{2 + 1i, 1, 4}
	A, err := NewCSR(IndexBaseZero, 2, 2, rowPtr, colInd, val)
	require.NoError(t, err)

	require.NoError(t, A.Optimize())
	assert.Equal(t, ValueTypeComplex128, A.ValueType())
	assert.Equal(t, []int{0, 1}, A.optCSR.colInd[:2])
	assert.Equal(t, []complex128{1, 2 + 1i, 4}, A.optCSR.val)
}
