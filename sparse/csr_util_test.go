// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyCSR(t *testing.T) {
	src := csrMat{
		rowPtr: []int{1, 3, 4, 6},
		colInd: []int{1, 3, 2, 1, 3},
		val:    []float64{10, 20, 30, 40, 50},
	}

	dst, err := copyCSR[float64](3, 5, IndexBaseOne, &src)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 3, 5}, dst.rowPtr)
	assert.Equal(t, []int{0, 2, 1, 0, 2}, dst.colInd)
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, dst.val)

	// The copy must be independent of the source buffers.
	dst.rowPtr[0] = 99
	dst.colInd[0] = 99
	assert.Equal(t, 1, src.rowPtr[0])
	assert.Equal(t, 1, src.colInd[0])
}

func TestCopyCSRZeroBase(t *testing.T) {
	src := csrMat{
		rowPtr: []int{0, 1, 2},
		colInd: []int{1, 0},
		val:    []float32{1, 2},
	}
	dst, err := copyCSR[float32](2, 2, IndexBaseZero, &src)
	require.NoError(t, err)
	assert.Equal(t, src.rowPtr, dst.rowPtr)
	assert.Equal(t, src.colInd, dst.colInd)
	assert.Equal(t, src.val, dst.val)
}

func TestCopyCSREmpty(t *testing.T) {
	src := csrMat{
		rowPtr: []int{0, 0, 0},
		colInd: []int{},
		val:    []float64{},
	}
	dst, err := copyCSR[float64](2, 0, IndexBaseZero, &src)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, dst.rowPtr)
	assert.Empty(t, dst.colInd)
}

func TestCopyCSRErrors(t *testing.T) {
	src := csrMat{rowPtr: nil, colInd: []int{0}, val: []float64{1}}
	_, err := copyCSR[float64](1, 1, IndexBaseZero, &src)
	assert.ErrorIs(t, err, ErrInvalidPointer)

	src = csrMat{rowPtr: []int{0, 1}, colInd: []int{0}, val: []float64{1}}
	_, err = copyCSR[float64](-1, 1, IndexBaseZero, &src)
	assert.ErrorIs(t, err, ErrMemoryAlloc)

	// Value buffer of the wrong element type.
	_, err = copyCSR[float32](1, 1, IndexBaseZero, &src)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestSortCSR(t *testing.T) {
	src := csrMat{
		rowPtr: []int{0, 3, 5},
		colInd: []int{2, 0, 1, 1, 0},
		val:    []float64{3, 1, 2, 5, 4},
	}
	dst, err := copyCSR[float64](2, 5, IndexBaseZero, &src)
	require.NoError(t, err)
	require.NoError(t, sortCSR[float64](2, 5, IndexBaseZero, &src, &dst))

	assert.Equal(t, []int{0, 1, 2, 0, 1}, dst.colInd)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, dst.val)
	// Row boundaries never change.
	assert.Equal(t, []int{0, 3, 5}, dst.rowPtr)
}

func TestSortCSROneBased(t *testing.T) {
	src := csrMat{
		rowPtr: []int{1, 4},
		colInd: []int{3, 1, 2},
		val:    []float32{30, 10, 20},
	}
	dst, err := copyCSR[float32](1, 3, IndexBaseOne, &src)
	require.NoError(t, err)
	require.NoError(t, sortCSR[float32](1, 3, IndexBaseOne, &src, &dst))

	assert.Equal(t, []int{0, 1, 2}, dst.colInd)
	assert.Equal(t, []float32{10, 20, 30}, dst.val)
}

func TestSortCSRStableOnDuplicates(t *testing.T) {
	// Duplicate columns keep their input order; no deduplication.
	src := csrMat{
		rowPtr: []int{0, 4},
		colInd: []int{1, 0, 1, 0},
		val:    []float64{1, 2, 3, 4},
	}
	dst, err := copyCSR[float64](1, 4, IndexBaseZero, &src)
	require.NoError(t, err)
	require.NoError(t, sortCSR[float64](1, 4, IndexBaseZero, &src, &dst))

	assert.Equal(t, []int{0, 0, 1, 1}, dst.colInd)
	assert.Equal(t, []float64{2, 4, 1, 3}, dst.val)
}

func TestFillDiag(t *testing.T) {
	tests := []struct {
		name       string
		m, n, nnz  int
		rowPtr     []int
		colInd     []int
		val        []float64
		wantRowPtr []int
		wantColInd []int
		wantVal    []float64
	}{
		{
			name: "missing diagonal mid row",
			m:    2, n: 2, nnz: 3,
			rowPtr:     []int{0, 2, 3},
			colInd:     []int{0, 1, 0},
			val:        []float64{1, 2, 3},
			wantRowPtr: []int{0, 2, 4},
			wantColInd: []int{0, 1, 0, 1},
			wantVal:    []float64{1, 2, 3, 0},
		},
		{
			name: "empty row gets diagonal",
			m:    2, n: 2, nnz: 1,
			rowPtr:     []int{0, 0, 1},
			colInd:     []int{0},
			val:        []float64{5},
			wantRowPtr: []int{0, 1, 3},
			wantColInd: []int{0, 0, 1},
			wantVal:    []float64{0, 5, 0},
		},
		{
			name: "diagonal before first upper entry",
			m:    3, n: 3, nnz: 4,
			rowPtr:     []int{0, 2, 3, 4},
			colInd:     []int{0, 2, 2, 2},
			val:        []float64{1, 2, 3, 4},
			wantRowPtr: []int{0, 2, 4, 5},
			wantColInd: []int{0, 2, 1, 2, 2},
			wantVal:    []float64{1, 2, 0, 3, 4},
		},
		{
			name: "wide matrix skips rows past square part",
			m:    3, n: 2, nnz: 2,
			rowPtr:     []int{0, 1, 2, 2},
			colInd:     []int{1, 1},
			val:        []float64{1, 2},
			wantRowPtr: []int{0, 2, 3, 3},
			wantColInd: []int{0, 1, 1},
			wantVal:    []float64{0, 1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			A := csrMat{rowPtr: tt.rowPtr, colInd: tt.colInd, val: tt.val}
			require.NoError(t, fillDiag[float64](tt.m, tt.n, tt.nnz, IndexBaseZero, &A))

			assert.Equal(t, tt.wantRowPtr, A.rowPtr)
			assert.Equal(t, tt.wantColInd, A.colInd)
			assert.Equal(t, tt.wantVal, A.val)
		})
	}
}

func TestFillDiagNoOp(t *testing.T) {
	rowPtr := []int{0, 1, 2}
	colInd := []int{0, 1}
	val := []float64{1, 2}
	A := csrMat{rowPtr: rowPtr, colInd: colInd, val: val}

	require.NoError(t, fillDiag[float64](2, 2, 2, IndexBaseZero, &A))

	// Zero missing diagonals must leave the exact same buffers in place.
	assert.Same(t, &rowPtr[0], &A.rowPtr[0])
	assert.Same(t, &colInd[0], &A.colInd[0])
	assert.Same(t, &val[0], &A.val.([]float64)[0])
}

func TestFillDiagNilBuffers(t *testing.T) {
	A := csrMat{rowPtr: []int{0, 1}, colInd: nil, val: []float64{1}}
	assert.ErrorIs(t, fillDiag[float64](1, 1, 1, IndexBaseZero, &A), ErrInvalidPointer)
}

func TestCSRIndices(t *testing.T) {
	// Normalized form of the 5x5 sample matrix: sorted, full diagonal.
	//  1 0 0 2 0
	//  0 3 0 0 0
	//  0 0 4 0 0
	//  0 5 0 6 7
	//  0 0 0 0 8
	rowPtr := []int{0, 2, 3, 4, 7, 8}
	colInd := []int{0, 3, 1, 2, 1, 3, 4, 4}

	idiag, iurow, err := csrIndices(5, IndexBaseZero, rowPtr, colInd)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 3, 5, 7}, idiag)
	assert.Equal(t, []int{1, 3, 4, 6, 8}, iurow)
}

func TestCSRIndicesOneBased(t *testing.T) {
	rowPtr := []int{1, 3, 4}
	colInd := []int{1, 2, 2}

	idiag, iurow, err := csrIndices(2, IndexBaseOne, rowPtr, colInd)
	require.NoError(t, err)

	// Positions are absolute 0-based offsets into colInd.
	assert.Equal(t, []int{0, 2}, idiag)
	assert.Equal(t, []int{1, 3}, iurow)
}

func TestCSRIndicesWideMatrix(t *testing.T) {
	// Row 2 lies past the square part and has no diagonal.
	rowPtr := []int{0, 1, 2, 3}
	colInd := []int{0, 1, 0}

	idiag, iurow, err := csrIndices(3, IndexBaseZero, rowPtr, colInd)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, -1}, idiag)
	assert.Equal(t, []int{1, 2, 3}, iurow)
}
