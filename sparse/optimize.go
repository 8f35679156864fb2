// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import "fmt"

// Optimize validates the handle's raw CSR data and builds the normalized
// representation all kernels execute against: column-sorted rows with an
// explicit diagonal entry in every row of the square part.
//
// When the raw data already satisfies both invariants the normalized form
// aliases the user's buffers directly and base correction is deferred to
// kernel execution; otherwise an exclusively owned, 0-based copy is built.
// On any failure the handle keeps its pre-optimization state.
//
// Optimizing an already-optimized handle is a no-op returning nil.
func (A *Matrix) Optimize() error {
	if A == nil {
		return ErrInvalidPointer
	}
	if A.optimized {
		return nil
	}

	switch A.valType {
	case ValueTypeFloat32:
		return optimizeCSR[float32](A)
	case ValueTypeFloat64:
		return optimizeCSR[float64](A)
	case ValueTypeComplex64:
		return optimizeCSR[complex64](A)
	case ValueTypeComplex128:
		return optimizeCSR[complex128](A)
	default:
		return fmt.Errorf("optimize of %s matrix: %w", A.valType, ErrWrongType)
	}
}

func optimizeCSR[T Numeric](A *Matrix) error {
	// Make sure we have the right type before proceeding.
	if A.valType != valueTypeOf[T]() {
		return fmt.Errorf("handle holds %s: %w", A.valType, ErrWrongType)
	}
	if !A.base.valid() {
		return fmt.Errorf("index base %d: %w", A.base, ErrInvalidValue)
	}

	// The matrix must be structurally valid before any buffer is touched.
	if err := csrCheck(A.m, A.n, A.nnz, A.csr.rowPtr, A.csr.colInd, shapeGeneral, A.base, nil); err != nil {
		return err
	}

	sorted, fulldiag, err := ProbeSortDiag(A.m, A.n, A.base, A.csr.rowPtr, A.csr.colInd)
	if err != nil {
		// Pointers were checked above already.
		return ErrInternal
	}

	var (
		opt          csrMat
		internalBase IndexBase
		optIsUser    bool
	)
	if sorted && fulldiag {
		// Already in the normalized format: use the user's memory
		// directly. The base correction happens at execution time.
		opt = A.csr
		optIsUser = true
		internalBase = A.base
	} else {
		// Build an owned copy we are allowed to manipulate. The copy
		// removes the base, so the remaining stages and the kernels
		// treat the buffers as 0-based without a second correction.
		opt, err = copyCSR[T](A.m, A.nnz, A.base, &A.csr)
		if err != nil {
			return err
		}
		optIsUser = false
		internalBase = IndexBaseZero
	}
	if !sorted {
		if err := sortCSR[T](A.m, A.nnz, A.base, &A.csr, &opt); err != nil {
			return err
		}
		// The diagonal probe ran on unsorted data; redo it on the
		// sorted result. A failure here means an invariant was broken
		// after validation passed.
		_, fulldiag, err = ProbeSortDiag(A.m, A.n, internalBase, opt.rowPtr, opt.colInd)
		if err != nil {
			return ErrInternal
		}
	}
	if !fulldiag {
		if err := fillDiag[T](A.m, A.n, A.nnz, internalBase, &opt); err != nil {
			return err
		}
	}

	idiag, iurow, err := csrIndices(A.m, internalBase, opt.rowPtr, opt.colInd)
	if err != nil {
		return err
	}

	A.optCSR = opt
	A.optIsUser = optIsUser
	A.internalBase = internalBase
	A.idiag = idiag
	A.iurow = iurow
	A.fullDiag = fulldiag
	A.optimized = true
	return nil
}
