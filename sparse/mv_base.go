// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

// csrmvGeneral is the scalar SpMV kernel, used for matrices averaging at most
// densityThreshold entries per row. Rows that short leave a lane-blocked
// kernel mostly in its remainder loop, so plain scalar accumulation wins.
//
// Rows are independent and distributed over the worker pool in dynamic
// batches proportional to m over the thread count, which absorbs the
// row-length variance typical of very sparse matrices.
func csrmvGeneral[T Floats](alpha T, m, base int, val []T, colInd, rowPtr []int,
	x []T, beta T, y []T, ctx Context) {

	batch := m / ctx.NumThreads
	if batch < 1 {
		batch = 1
	}
	rowPool.ParallelForBatched(m, batch, func(start, end int) {
		for i := start; i < end; i++ {
			var result T
			idxEnd := rowPtr[i+1] - base
			for j := rowPtr[i] - base; j < idxEnd; j++ {
				result += val[j] * x[colInd[j]-base]
			}

			// Perform alpha * A * x
			if alpha != 1 {
				result = alpha * result
			}
			// Perform (beta * y) + (alpha * A * x)
			if beta != 0 {
				result += beta * y[i]
			}
			y[i] = result
		}
	})
}
