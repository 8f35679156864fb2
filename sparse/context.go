// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-sparse/internal/workerpool"
)

// Context is the process-wide execution snapshot consumed by the kernel
// dispatcher: how many worker threads the row loops fork across, and whether
// the wide (AVX-512 width) execution path may be selected. It is built once,
// on first use, and never changes afterwards.
type Context struct {
	// NumThreads is the worker count for parallel row loops.
	NumThreads int

	// HasAVX512 reports whether the CPU supports AVX-512F and SIMD paths
	// have not been disabled via GOSPARSE_NO_SIMD.
	HasAVX512 bool
}

var (
	initOnce      sync.Once
	globalContext Context

	// rowPool is the persistent pool all kernels fork row ranges onto.
	// Created together with the context so both share the thread count.
	rowPool *workerpool.Pool
)

// CurrentContext returns the process-wide execution snapshot, initializing it
// on first call from the environment and the detected CPU capability.
func CurrentContext() Context {
	initGlobal()
	return globalContext
}

func initGlobal() {
	initOnce.Do(func() {
		numThreads := runtime.GOMAXPROCS(0)
		if v := os.Getenv("GOSPARSE_NUM_THREADS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				numThreads = n
			}
		}

		globalContext = Context{
			NumThreads: numThreads,
			HasAVX512:  cpu.X86.HasAVX512F && !noSimdEnv(),
		}
		rowPool = workerpool.New(numThreads)
	})
}

// noSimdEnv checks if the GOSPARSE_NO_SIMD environment variable is set.
// When set, the dispatcher never selects the wide kernel regardless of CPU
// capabilities. This is useful for testing and debugging.
func noSimdEnv() bool {
	val := os.Getenv("GOSPARSE_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
