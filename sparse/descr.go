// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

// MatDescr describes how kernels should interpret a matrix operand. It is
// consumed read-only by the dispatch layer; the same descriptor may be shared
// across concurrent calls.
type MatDescr struct {
	// Type declares the mathematical structure of the matrix.
	Type MatrixType

	// Fill tells symmetric and triangular kernels which triangle is stored.
	Fill FillMode

	// Base is the index origin of the raw buffers passed alongside the
	// descriptor at the array-level entry points.
	Base IndexBase
}

// NewMatDescr returns a descriptor with the default interpretation:
// general matrix, lower fill mode, 0-based indices.
func NewMatDescr() *MatDescr {
	return &MatDescr{
		Type: MatrixTypeGeneral,
		Fill: FillModeLower,
		Base: IndexBaseZero,
	}
}
