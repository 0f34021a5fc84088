// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report renders annotation-gap findings into the final report:
// per-finding diagnostic lines, per-file blocks, and the run summary.
package report

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/hintcheck/services/checker/analyze"
)

// Format renders findings as human-readable diagnostic lines.
//
// One line per finding, in input order, each newline-terminated. Rows and
// columns are converted from the detector's 0-based positions to the 1-based
// positions people expect. Empty input yields an empty string, which is how
// a clean file stays invisible in the report.
func Format(findings []analyze.Finding) string {
	var b strings.Builder
	for _, f := range findings {
		switch f.Kind {
		case analyze.FindingMissingReturn:
			fmt.Fprintf(&b, "Function '%s' in line %d and column %d is missing a return type.\n",
				f.Name, f.Line+1, f.Col+1)
		case analyze.FindingMissingParameter:
			fmt.Fprintf(&b, "Parameter '%s' in line %d and column %d is missing a type hint.\n",
				f.Name, f.Line+1, f.Col+1)
		}
	}
	return b.String()
}
