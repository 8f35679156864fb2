// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

// Floats is a constraint for the floating-point value types supported by the
// SpMV kernels.
type Floats interface {
	~float32 | ~float64
}

// Complexes is a constraint for complex value types. They are accepted by the
// SpGEMM entry point but not by the SpMV kernels.
type Complexes interface {
	~complex64 | ~complex128
}

// Numeric is a constraint for every value type a matrix handle can carry.
type Numeric interface {
	Floats | Complexes
}

// IndexBase is the index origin of the stored row and column indices.
type IndexBase int

const (
	// IndexBaseZero indicates C-style 0-based indexing.
	IndexBaseZero IndexBase = 0

	// IndexBaseOne indicates Fortran-style 1-based indexing.
	IndexBaseOne IndexBase = 1
)

func (b IndexBase) valid() bool {
	return b == IndexBaseZero || b == IndexBaseOne
}

// Operation selects how a matrix operand is applied.
type Operation int

const (
	// OperationNone applies the matrix as stored.
	OperationNone Operation = iota

	// OperationTranspose applies the transpose of the matrix.
	OperationTranspose

	// OperationConjTranspose applies the conjugate transpose of the matrix.
	OperationConjTranspose
)

// MatrixType describes the mathematical structure a descriptor declares for a
// matrix. Kernels may exploit it (symmetric) or reject it (not implemented).
type MatrixType int

const (
	MatrixTypeGeneral MatrixType = iota
	MatrixTypeSymmetric
	MatrixTypeHermitian
	MatrixTypeTriangular
)

// FillMode tells triangular and symmetric kernels which triangle of the
// matrix is stored.
type FillMode int

const (
	FillModeLower FillMode = iota
	FillModeUpper
)

// ValueType tags the element type a matrix handle was created with. It is the
// runtime counterpart of the generic type parameter used by the kernels, and
// is what makes ErrWrongType checkable at the public boundary.
type ValueType int

const (
	valueTypeNone ValueType = iota
	ValueTypeFloat32
	ValueTypeFloat64
	ValueTypeComplex64
	ValueTypeComplex128
)

// String returns a human-readable name for the value type.
func (v ValueType) String() string {
	switch v {
	case ValueTypeFloat32:
		return "float32"
	case ValueTypeFloat64:
		return "float64"
	case ValueTypeComplex64:
		return "complex64"
	case ValueTypeComplex128:
		return "complex128"
	default:
		return "none"
	}
}

// valueTypeOf reports the ValueType tag for the instantiated type parameter.
func valueTypeOf[T Numeric]() ValueType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return ValueTypeFloat32
	case float64:
		return ValueTypeFloat64
	case complex64:
		return ValueTypeComplex64
	case complex128:
		return ValueTypeComplex128
	default:
		return valueTypeNone
	}
}

// Request selects how much of an SpGEMM computation is performed.
type Request int

const (
	// RequestFull computes both the output structure and its numeric values.
	RequestFull Request = iota

	// RequestSymbolic computes only the output structure (row pointers and
	// column indices); values are left zero.
	RequestSymbolic
)
