// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

// csrmvSymm is the SpMV kernel for symmetric descriptors. The stored entries
// cover one triangle of the matrix; every off-diagonal entry (i,j)
// contributes to both y[i] and y[j], while diagonal entries contribute
// exactly once. Duplicate stored mirror pairs would double-count and are the
// caller's responsibility to avoid.
//
// The mirrored contribution scatters across rows, so this kernel runs
// sequentially rather than forking the row loop.
func csrmvSymm[T Floats](alpha T, m, base int, val []T, colInd, rowPtr []int,
	x []T, beta T, y []T) {

	// Scale y first so the accumulation below only ever adds. beta == 0
	// stores zeros without reading the (possibly uninitialized) y.
	scaleVec(y[:m], beta)

	for i := 0; i < m; i++ {
		idxEnd := rowPtr[i+1] - base
		for idx := rowPtr[i] - base; idx < idxEnd; idx++ {
			j := colInd[idx] - base
			t := val[idx]
			if alpha != 1 {
				t = alpha * t
			}
			y[i] += t * x[j]
			if j != i {
				y[j] += t * x[i]
			}
		}
	}
}
