// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

// maxLanes bounds the per-row accumulator. The AVX2-width kernel runs 8
// float32 or 4 float64 lanes; the AVX-512-width kernel runs 8 float64 lanes.
const maxLanes = 8

// csrmvVectorized is the lane-blocked SpMV kernel. Per row it models the
// hardware gather/FMA sequence: load a block of `lanes` stored values, gather
// the matching x elements through the column indices, multiply-accumulate
// into a lane accumulator, then reduce the lanes pairwise and finish the
// row's tail (length mod lanes) scalar. The fixed-width inner block keeps the
// loop free of data-dependent trip counts so the compiler can unroll and
// vectorize it.
//
// Rows never share output state; the row loop forks across the worker pool in
// contiguous chunks.
func csrmvVectorized[T Floats](alpha T, m, base int, val []T, colInd, rowPtr []int,
	x []T, beta T, y []T, lanes int) {

	rowPool.ParallelFor(m, func(start, end int) {
		for i := start; i < end; i++ {
			idxStart := rowPtr[i] - base
			idxEnd := rowPtr[i+1] - base
			rowNNZ := idxEnd - idxStart
			kRem := rowNNZ % lanes

			var sum [maxLanes]T

			// Loop in multiples of `lanes` stored entries.
			for j := idxStart; j < idxEnd-kRem; j += lanes {
				// Gather x at the block's column indices and
				// fuse multiply-accumulate per lane.
				for l := 0; l < lanes; l++ {
					sum[l] += val[j+l] * x[colInd[j+l]-base]
				}
			}

			// Pairwise horizontal addition of the lane accumulator.
			var result T
			if rowNNZ/lanes > 0 {
				for step := lanes / 2; step > 0; step /= 2 {
					for l := 0; l < step; l++ {
						sum[l] += sum[l+step]
					}
				}
				result = sum[0]
			}

			// Remainder loop for rowNNZ % lanes.
			for j := idxEnd - kRem; j < idxEnd; j++ {
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
