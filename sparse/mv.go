// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"fmt"
	"unsafe"
)

// densityThreshold is the mean entries-per-row at or below which the scalar
// kernel is selected. Matrices this sparse have mostly very short rows, where
// gather and reduction overhead dominates any vectorization gain.
const densityThreshold = 10

// mvKernel identifies one member of the SpMV kernel set.
type mvKernel int

const (
	mvKernelSymmetric mvKernel = iota
	mvKernelGeneral
	mvKernelAVX2
	mvKernelAVX512
)

func (k mvKernel) String() string {
	switch k {
	case mvKernelSymmetric:
		return "symmetric"
	case mvKernelGeneral:
		return "general"
	case mvKernelAVX2:
		return "avx2"
	case mvKernelAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// selectMVKernel is the pure kernel-selection function: symmetric descriptors
// take the mirroring kernel, low densities the scalar kernel, and everything
// else the widest lane-blocked kernel the element type and detected ISA
// allow. The wide kernel requires 8-byte elements, mirroring the hardware
// gather width it models.
func selectMVKernel(ty MatrixType, m, nnz, elemSize int, ctx Context) mvKernel {
	if ty == MatrixTypeSymmetric {
		return mvKernelSymmetric
	}
	if nnz <= densityThreshold*m {
		return mvKernelGeneral
	}
	if ctx.HasAVX512 && elemSize == 8 {
		return mvKernelAVX512
	}
	return mvKernelAVX2
}

// laneCount returns the number of T lanes in a vector register of the given
// byte width.
func laneCount[T Floats](widthBytes int) int {
	var zero T
	return widthBytes / int(unsafe.Sizeof(zero))
}

// CSRMV computes y = alpha*A*x + beta*y over raw 0-based CSR buffers,
// dispatching to a kernel chosen from the descriptor, the matrix density and
// the detected CPU capability.
//
// Only OperationNone, 0-based buffers and general or symmetric descriptors
// are supported; other combinations return ErrNotImplemented. m == 0, n == 0
// or nnz == 0 is a quick success without touching y. The call holds no state
// and may run concurrently with other calls as long as each owns its y.
func CSRMV[T Floats](trans Operation, alpha T, m, n, nnz int, val []T,
	colInd, rowPtr []int, descr *MatDescr, x []T, beta T, y []T) error {

	ctx := CurrentContext()

	if descr == nil {
		return fmt.Errorf("nil descriptor: %w", ErrInvalidPointer)
	}
	if descr.Base != IndexBaseZero {
		return fmt.Errorf("base %d at kernel layer: %w", descr.Base, ErrNotImplemented)
	}
	if descr.Type != MatrixTypeGeneral && descr.Type != MatrixTypeSymmetric {
		return fmt.Errorf("matrix type %d: %w", descr.Type, ErrNotImplemented)
	}
	if trans != OperationNone {
		return fmt.Errorf("transpose: %w", ErrNotImplemented)
	}
	if m < 0 || n < 0 || nnz < 0 {
		return fmt.Errorf("sizes m=%d n=%d nnz=%d: %w", m, n, nnz, ErrInvalidSize)
	}

	// Quick return if possible.
	if m == 0 || n == 0 || nnz == 0 {
		return nil
	}

	if val == nil || rowPtr == nil || colInd == nil || x == nil || y == nil {
		return fmt.Errorf("nil buffer argument: %w", ErrInvalidPointer)
	}
	if len(val) < nnz || len(colInd) < nnz || len(rowPtr) < m+1 {
		return fmt.Errorf("CSR buffers shorter than declared sizes: %w", ErrInvalidSize)
	}
	if len(x) < n || len(y) < m {
		return fmt.Errorf("vector length x=%d y=%d, need %d and %d: %w", len(x), len(y), n, m, ErrInvalidSize)
	}

	// The symmetric kernel mirrors entries across the diagonal and scatters
	// into y by column, which is only meaningful for square operands.
	if descr.Type == MatrixTypeSymmetric && m != n {
		return fmt.Errorf("symmetric descriptor on %dx%d matrix: %w", m, n, ErrInvalidSize)
	}

	var zero T
	switch selectMVKernel(descr.Type, m, nnz, int(unsafe.Sizeof(zero)), ctx) {
	case mvKernelSymmetric:
		csrmvSymm(alpha, m, 0, val, colInd, rowPtr, x, beta, y)
	case mvKernelGeneral:
		csrmvGeneral(alpha, m, 0, val, colInd, rowPtr, x, beta, y, ctx)
	case mvKernelAVX512:
		csrmvVectorized(alpha, m, 0, val, colInd, rowPtr, x, beta, y, laneCount[T](64))
	default:
		csrmvVectorized(alpha, m, 0, val, colInd, rowPtr, x, beta, y, laneCount[T](32))
	}
	return nil
}

// MV computes y = alpha*A*x + beta*y on a matrix handle. When the handle has
// been optimized the kernels run on the normalized representation, applying
// any deferred base correction of the aliased form at execution time;
// otherwise they run directly on the raw buffers.
//
// The descriptor's Base field is ignored here: the handle carries its own.
func MV[T Floats](trans Operation, alpha T, A *Matrix, descr *MatDescr, x []T, beta T, y []T) error {
	if A == nil || descr == nil {
		return fmt.Errorf("nil matrix or descriptor: %w", ErrInvalidPointer)
	}
	if A.valType != valueTypeOf[T]() {
		return fmt.Errorf("handle holds %s: %w", A.valType, ErrWrongType)
	}
	if descr.Type != MatrixTypeGeneral && descr.Type != MatrixTypeSymmetric {
		return fmt.Errorf("matrix type %d: %w", descr.Type, ErrNotImplemented)
	}
	if trans != OperationNone {
		return fmt.Errorf("transpose: %w", ErrNotImplemented)
	}

	// Quick return if possible.
	if A.m == 0 || A.n == 0 || A.nnz == 0 {
		return nil
	}

	if x == nil || y == nil {
		return fmt.Errorf("nil vector argument: %w", ErrInvalidPointer)
	}
	if len(x) < A.n || len(y) < A.m {
		return fmt.Errorf("vector length x=%d y=%d, need %d and %d: %w", len(x), len(y), A.n, A.m, ErrInvalidSize)
	}
	if descr.Type == MatrixTypeSymmetric && A.m != A.n {
		return fmt.Errorf("symmetric descriptor on %dx%d matrix: %w", A.m, A.n, ErrInvalidSize)
	}

	ctx := CurrentContext()

	// alpha == 0 never reads the matrix.
	if alpha == 0 {
		scaleVec(y[:A.m], beta)
		return nil
	}

	c, base := &A.csr, A.base
	if A.optimized {
		c, base = &A.optCSR, A.internalBase
	}
	val, err := matValues[T](c.val)
	if err != nil {
		return err
	}
	nnz := len(val) // includes diagonal fill-in on the owned form

	var zero T
	switch selectMVKernel(descr.Type, A.m, nnz, int(unsafe.Sizeof(zero)), ctx) {
	case mvKernelSymmetric:
		csrmvSymm(alpha, A.m, int(base), val, c.colInd, c.rowPtr, x, beta, y)
	case mvKernelGeneral:
		csrmvGeneral(alpha, A.m, int(base), val, c.colInd, c.rowPtr, x, beta, y, ctx)
	case mvKernelAVX512:
		csrmvVectorized(alpha, A.m, int(base), val, c.colInd, c.rowPtr, x, beta, y, laneCount[T](64))
	default:
		csrmvVectorized(alpha, A.m, int(base), val, c.colInd, c.rowPtr, x, beta, y, laneCount[T](32))
	}
	return nil
}

// scaleVec applies y = beta*y. beta == 0 stores zeros without reading y,
// which matters when y is uninitialized on entry.
func scaleVec[T Floats](y []T, beta T) {
	if beta == 0 {
		clear(y)
		return
	}
	if beta == 1 {
		return
	}
	for i := range y {
		y[i] *= beta
	}
}
