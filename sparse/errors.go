// Copyright 2025 The go-sparse Authors. SPDX-License-Identifier: Apache-2.0

package sparse

import "errors"

// The fixed error surface of the library. Every public operation returns nil
// or wraps exactly one of these sentinels; callers match them with errors.Is.
var (
	// ErrInvalidPointer reports a nil matrix handle, descriptor, or buffer
	// where one is required.
	ErrInvalidPointer = errors.New("sparse: invalid pointer")

	// ErrInvalidSize reports a negative dimension or a buffer shorter than
	// the declared sizes require.
	ErrInvalidSize = errors.New("sparse: invalid size")

	// ErrInvalidValue reports a value outside its legal domain, such as an
	// index base other than 0 or 1, or structurally inconsistent CSR data.
	ErrInvalidValue = errors.New("sparse: invalid value")

	// ErrWrongType reports a mismatch between a handle's declared value type
	// and the value type of the operation applied to it.
	ErrWrongType = errors.New("sparse: wrong value type")

	// ErrMemoryAlloc reports a failed storage request during normalization.
	// Partial allocations are released and the handle keeps its prior state.
	ErrMemoryAlloc = errors.New("sparse: memory allocation failure")

	// ErrNotImplemented reports a feature combination outside the supported
	// set, such as transpose or a non-zero base at the raw kernel layer.
	ErrNotImplemented = errors.New("sparse: not implemented")

	// ErrInternal reports an invariant violation after inputs were already
	// validated. It signals a library bug, not a user error.
	ErrInternal = errors.New("sparse: internal error")
)

// ErrorHandler is an optional callback the validator invokes with a
// descriptive message for each structural violation it detects. A nil handler
// performs validation silently; the error return is unaffected either way.
type ErrorHandler func(err error, msg string)
