// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import "fmt"

// shape narrows structural validation to a stored triangle. The descriptor
// can ask kernels to work on part of a matrix, which is a weaker statement
// than the matrix type itself.
type shape int

const (
	shapeGeneral shape = iota
	shapeLowerTriangle
	shapeUpperTriangle
)

// csrCheck validates the structural integrity of raw CSR buffers: sizes,
// buffer presence, row pointer monotonicity and column bounds, all after
// removing the index base. It never modifies the input.
//
// Violations are reported through eh with a descriptive message when eh is
// non-nil; the returned error is the same either way.
func csrCheck(m, n, nnz int, rowPtr, colInd []int, sh shape, base IndexBase, eh ErrorHandler) error {
	if m < 0 || n < 0 || nnz < 0 {
		return report(eh, ErrInvalidSize, fmt.Sprintf("invalid sizes m=%d n=%d nnz=%d", m, n, nnz))
	}
	if rowPtr == nil || colInd == nil {
		return report(eh, ErrInvalidPointer, "CSR buffers must not be nil")
	}
	if len(rowPtr) < m+1 {
		return report(eh, ErrInvalidSize, fmt.Sprintf("row pointer holds %d entries, need %d", len(rowPtr), m+1))
	}
	if len(colInd) < nnz {
		return report(eh, ErrInvalidSize, fmt.Sprintf("column index holds %d entries, need %d", len(colInd), nnz))
	}

	if m == 0 {
		return nil
	}

	// The row pointer is checked even when nnz == 0: a handle holding no
	// entries can still carry an inconsistent pointer that later stages
	// would walk.
	if rowPtr[0]-int(base) != 0 {
		return report(eh, ErrInvalidValue, fmt.Sprintf("first row pointer is %d, expected %d", rowPtr[0], int(base)))
	}
	if rowPtr[m]-int(base) != nnz {
		return report(eh, ErrInvalidValue, fmt.Sprintf("last row pointer is %d, expected %d", rowPtr[m], nnz+int(base)))
	}

	// Monotonicity over the whole pointer first. Together with the endpoint
	// checks above it bounds every row range inside [0, nnz), so the column
	// scan below cannot index past colInd.
	for i := 0; i < m; i++ {
		if rowPtr[i+1] < rowPtr[i] {
			return report(eh, ErrInvalidValue,
				fmt.Sprintf("row pointer not monotone at row %d: %d > %d", i, rowPtr[i], rowPtr[i+1]))
		}
	}

	for i := 0; i < m; i++ {
		idxEnd := rowPtr[i+1] - int(base)
		for idx := rowPtr[i] - int(base); idx < idxEnd; idx++ {
			j := colInd[idx] - int(base)
			if j < 0 || j >= n {
				return report(eh, ErrInvalidValue,
					fmt.Sprintf("column index %d out of bounds [0,%d) at row %d", j, n, i))
			}
			switch sh {
			case shapeLowerTriangle:
				if j > i {
					return report(eh, ErrInvalidValue,
						fmt.Sprintf("entry (%d,%d) above the diagonal in a lower triangle", i, j))
				}
			case shapeUpperTriangle:
				if j < i {
					return report(eh, ErrInvalidValue,
						fmt.Sprintf("entry (%d,%d) below the diagonal in an upper triangle", i, j))
				}
			}
		}
	}
	return nil
}

func report(eh ErrorHandler, err error, msg string) error {
	if eh != nil {
		eh(err, msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Validate checks raw CSR buffers for structural integrity without modifying
// them: non-negative sizes, non-nil buffers, a monotone row pointer
// consistent with base and nnz, and column indices inside [0,n) after base
// removal. eh may be nil.
func Validate(m, n, nnz int, rowPtr, colInd []int, base IndexBase, eh ErrorHandler) error {
	if !base.valid() {
		return report(eh, ErrInvalidValue, fmt.Sprintf("index base %d", base))
	}
	return csrCheck(m, n, nnz, rowPtr, colInd, shapeGeneral, base, eh)
}

// ProbeSortDiag reports whether every row's column indices are strictly
// increasing and whether every row i < n carries an explicit diagonal entry.
// The buffers are expected to have passed Validate already; only pointer
// presence is re-checked here.
func ProbeSortDiag(m, n int, base IndexBase, rowPtr, colInd []int) (sorted, fulldiag bool, err error) {
	if rowPtr == nil || colInd == nil {
		return false, false, fmt.Errorf("nil CSR buffer: %w", ErrInvalidPointer)
	}

	sorted = true
	fulldiag = true
	for i := 0; i < m; i++ {
		idxStart := rowPtr[i] - int(base)
		idxEnd := rowPtr[i+1] - int(base)

		diagFound := false
		for idx := idxStart; idx < idxEnd; idx++ {
			j := colInd[idx] - int(base)
			if j == i {
				diagFound = true
			}
			if idx > idxStart && colInd[idx-1] >= colInd[idx] {
				sorted = false
			}
		}
		if !diagFound && i < n {
			fulldiag = false
		}
	}
	return sorted, fulldiag, nil
}
