// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analyze implements the annotation-gap detector: it walks a parsed
// Python tree and reports function return types and parameters that lack
// type annotations.
package analyze

import (
	"encoding/json"
	"fmt"
)

// FindingKind classifies what is missing at a finding's position.
type FindingKind int

const (
	// FindingMissingReturn reports a function definition without a return
	// type annotation.
	FindingMissingReturn FindingKind = iota

	// FindingMissingParameter reports a parameter without a type annotation.
	FindingMissingParameter
)

// findingKindNames maps FindingKind values to their string tags.
var findingKindNames = map[FindingKind]string{
	FindingMissingReturn:    "missing_return",
	FindingMissingParameter: "missing_parameter",
}

// String returns the string tag of the kind, or "unknown".
func (k FindingKind) String() string {
	if name, ok := findingKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON serializes the kind as its string tag rather than a number.
func (k FindingKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts the string tags produced by MarshalJSON.
func (k *FindingKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FindingKind must be a string: %w", err)
	}
	for kind, name := range findingKindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown FindingKind %q", s)
}

// Finding is one reported instance of a missing type annotation.
//
// Positions are 0-based (tree-sitter convention) and rendered 1-based by the
// report formatter. Findings are immutable once created: they are produced
// during a single tree walk and consumed immediately by the formatter.
type Finding struct {
	// Kind says whether a return type or a parameter annotation is missing.
	Kind FindingKind `json:"kind"`

	// Name is the function name (return findings) or parameter name
	// (parameter findings).
	Name string `json:"name"`

	// Line is the 0-based row of the reported span's start.
	Line int `json:"line"`

	// Col is the 0-based column of the reported span's start.
	Col int `json:"col"`
}
