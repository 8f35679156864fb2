// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"fmt"
	"slices"
)

// SP2M multiplies two sparse matrices, C = A*B, routing the request to the
// kernel specialized for the operands' value type. Both operands must carry
// the same value type; the supported set is float32, float64, complex64 and
// complex128.
//
// RequestSymbolic computes only the output structure; RequestFull computes
// structure and values. The returned matrix is 0-based.
func SP2M(opA Operation, descrA *MatDescr, A *Matrix,
	opB Operation, descrB *MatDescr, B *Matrix, request Request) (*Matrix, error) {

	if A == nil || B == nil {
		return nil, fmt.Errorf("nil matrix operand: %w", ErrInvalidPointer)
	}

	switch {
	case A.valType == ValueTypeFloat32 && B.valType == ValueTypeFloat32:
		return csr2m[float32](opA, descrA, A, opB, descrB, B, request)
	case A.valType == ValueTypeFloat64 && B.valType == ValueTypeFloat64:
		return csr2m[float64](opA, descrA, A, opB, descrB, B, request)
	case A.valType == ValueTypeComplex64 && B.valType == ValueTypeComplex64:
		return csr2m[complex64](opA, descrA, A, opB, descrB, B, request)
	case A.valType == ValueTypeComplex128 && B.valType == ValueTypeComplex128:
		return csr2m[complex128](opA, descrA, A, opB, descrB, B, request)
	default:
		return nil, fmt.Errorf("operand types %s and %s: %w", A.valType, B.valType, ErrWrongType)
	}
}

// csr2m is the type-specialized sparse-times-sparse kernel behind SP2M. It
// runs Gustavson's row-by-row algorithm in two logical stages: a symbolic
// pass sizing each output row, then a numeric pass accumulating the products
// into a dense scratch row. RequestSymbolic stops after building the output
// structure and leaves the values zero.
func csr2m[T Numeric](opA Operation, descrA *MatDescr, A *Matrix,
	opB Operation, descrB *MatDescr, B *Matrix, request Request) (*Matrix, error) {

	if descrA == nil || descrB == nil {
		return nil, fmt.Errorf("nil descriptor: %w", ErrInvalidPointer)
	}
	if opA != OperationNone || opB != OperationNone {
		return nil, fmt.Errorf("transposed operand: %w", ErrNotImplemented)
	}
	if descrA.Type != MatrixTypeGeneral || descrB.Type != MatrixTypeGeneral {
		return nil, fmt.Errorf("non-general operand descriptor: %w", ErrNotImplemented)
	}
	if A.n != B.m {
		return nil, fmt.Errorf("inner dimensions %d and %d: %w", A.n, B.m, ErrInvalidSize)
	}
	if err := csrCheck(A.m, A.n, A.nnz, A.csr.rowPtr, A.csr.colInd, shapeGeneral, A.base, nil); err != nil {
		return nil, err
	}
	if err := csrCheck(B.m, B.n, B.nnz, B.csr.rowPtr, B.csr.colInd, shapeGeneral, B.base, nil); err != nil {
		return nil, err
	}

	aVal, err := matValues[T](A.csr.val)
	if err != nil {
		return nil, err
	}
	bVal, err := matValues[T](B.csr.val)
	if err != nil {
		return nil, err
	}

	m, n := A.m, B.n
	aBase, bBase := int(A.base), int(B.base)

	// Symbolic stage: size each output row. marker[k] holds the index of
	// the last output row that produced column k, so it resets for free
	// between rows.
	marker := make([]int, n)
	for k := range marker {
		marker[k] = -1
	}
	cRowPtr := make([]int, m+1)
	for i := 0; i < m; i++ {
		count := 0
		aEnd := A.csr.rowPtr[i+1] - aBase
		for ia := A.csr.rowPtr[i] - aBase; ia < aEnd; ia++ {
			j := A.csr.colInd[ia] - aBase
			bEnd := B.csr.rowPtr[j+1] - bBase
			for ib := B.csr.rowPtr[j] - bBase; ib < bEnd; ib++ {
				k := B.csr.colInd[ib] - bBase
				if marker[k] != i {
					marker[k] = i
					count++
				}
			}
		}
		cRowPtr[i+1] = cRowPtr[i] + count
	}

	cNNZ := cRowPtr[m]
	cColInd := make([]int, cNNZ)
	cVal := make([]T, cNNZ)

	// Numeric stage: accumulate products into a dense scratch row, then
	// materialize the row's columns in ascending order. The symbolic-only
	// request still needs the column structure, just not the products.
	for k := range marker {
		marker[k] = -1
	}
	acc := make([]T, n)
	for i := 0; i < m; i++ {
		rowStart := cRowPtr[i]
		pos := rowStart
		aEnd := A.csr.rowPtr[i+1] - aBase
		for ia := A.csr.rowPtr[i] - aBase; ia < aEnd; ia++ {
			j := A.csr.colInd[ia] - aBase
			av := aVal[ia]
			bEnd := B.csr.rowPtr[j+1] - bBase
			for ib := B.csr.rowPtr[j] - bBase; ib < bEnd; ib++ {
				k := B.csr.colInd[ib] - bBase
				if marker[k] != i {
					marker[k] = i
					cColInd[pos] = k
					pos++
					acc[k] = 0
				}
				if request == RequestFull {
					acc[k] += av * bVal[ib]
				}
			}
		}

		row := cColInd[rowStart:pos]
		slices.Sort(row)
		if request == RequestFull {
			for idx, k := range row {
				cVal[rowStart+idx] = acc[k]
			}
		}
	}

	return NewCSR(IndexBaseZero, m, n, cRowPtr, cColInd, cVal)
}
