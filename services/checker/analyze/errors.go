// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyze

import (
	"errors"
	"fmt"
)

// Sentinel errors for the analyze package.
var (
	// ErrMalformedFunction indicates a function_definition node without an
	// identifier child. This points at a grammar mismatch or a badly broken
	// parse; continuing would risk silent false negatives, so detection of
	// the affected file fails hard instead of skipping the node.
	ErrMalformedFunction = errors.New("malformed function definition")
)

// StructuralError wraps a structural-assumption violation with the position
// of the offending node.
//
// Thread Safety: Immutable after creation.
type StructuralError struct {
	// Line is the 0-based row of the node that violated the assumption.
	Line int

	// Col is the 0-based column of the node.
	Col int

	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("%v at line %d, column %d", e.Err, e.Line+1, e.Col+1)
}

// Unwrap returns the underlying sentinel for errors.Is checks.
func (e *StructuralError) Unwrap() error {
	return e.Err
}
