// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrBadIndex is returned when a string or style index is out of range.
	ErrBadIndex = errors.New("arsc: index out of range")

	// ErrCorruptData is returned when the chunk walker or table loader finds
	// a structural inconsistency: bad header math, offset math, an
	// unexpected or duplicate sub-chunk, a count mismatch, misaligned string
	// pool data, an unknown spec flag bit, empty input, or trailing data
	// after the root table.
	ErrCorruptData = errors.New("arsc: corrupt data")

	// ErrUnexpectedChunk is returned when a chunk variant appears in a
	// position where the loader does not permit it, e.g. a Spec chunk
	// directly under the Table.
	ErrUnexpectedChunk = errors.New("arsc: unexpected chunk")

	// ErrIO is reserved for host I/O failures surfaced by collaborators
	// (the ZIP/mmap layer). The core itself never returns it.
	ErrIO = errors.New("arsc: i/o error")

	// ErrUnsupportedLayout is returned when a Type chunk declares the
	// sparse entry-offset layout (flags & 0x01), which this decoder does
	// not implement.
	ErrUnsupportedLayout = errors.New("arsc: unsupported type layout")
)

// corruptf wraps ErrCorruptData with a formatted detail message via %w, so
// callers can match it with errors.Is.
func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrCorruptData)...)
}

func badIndexf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrBadIndex)...)
}
