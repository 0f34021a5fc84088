// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/hintcheck/services/checker/analyze"
)

// indentPrefix indents diagnostic lines under their File: header.
const indentPrefix = "\t"

// SuccessSentinel is printed when a run produces no findings and no
// failures, as positive confirmation rather than silent empty output.
const SuccessSentinel = "✨ All good!"

// FileResult is what one worker produces for one file.
//
// Exactly one of Findings and Err is meaningful: a failed file carries its
// error, a processed file carries its findings (possibly none).
type FileResult struct {
	// Path is the file the result belongs to.
	Path string

	// Findings are the detector's findings for the file, in document order.
	Findings []analyze.Finding

	// Err is the read/parse/detect failure, if any.
	Err error
}

// FileReport is one file's contribution to the final report.
type FileReport struct {
	// Path is the reported file.
	Path string `json:"path"`

	// Findings present when the file was processed and had gaps.
	Findings []analyze.Finding `json:"findings,omitempty"`

	// Error is the failure message for files that could not be processed.
	Error string `json:"error,omitempty"`
}

// Summary aggregates run-level counters.
type Summary struct {
	// FilesScanned is the number of candidate files consumed.
	FilesScanned int `json:"files_scanned"`

	// FilesWithFindings is the number of files contributing a report block.
	FilesWithFindings int `json:"files_with_findings"`

	// FindingCount is the total number of findings across all files.
	FindingCount int `json:"finding_count"`

	// Failed lists the paths that could not be processed.
	Failed []string `json:"failed,omitempty"`
}

// Report is the merged output of one run.
//
// Files appear in completion order: cross-file order carries no meaning,
// only the order within a file's own block does.
type Report struct {
	// RunID uniquely identifies this run in logs and JSON output.
	RunID string `json:"run_id"`

	// Root is the path the run was started on.
	Root string `json:"root"`

	// Files holds one entry per file with findings or a failure. Clean
	// files are invisible: they contribute no entry and no header.
	Files []FileReport `json:"files"`

	// Summary holds the run-level counters.
	Summary Summary `json:"summary"`
}

// IsClean reports whether the run produced no findings and no failures.
func (r *Report) IsClean() bool {
	return r.Summary.FindingCount == 0 && len(r.Summary.Failed) == 0
}

// Text renders the report as plain text, one block per file.
func (r *Report) Text() string {
	var b strings.Builder
	for _, file := range r.Files {
		if file.Error != "" {
			fmt.Fprintf(&b, "could not process %s: %s\n", file.Path, file.Error)
			continue
		}
		fmt.Fprintf(&b, "File: %s\n", file.Path)
		for _, line := range strings.SplitAfter(Format(file.Findings), "\n") {
			if line == "" {
				continue
			}
			b.WriteString(indentPrefix)
			b.WriteString(line)
		}
	}
	return b.String()
}

// Collect drains results into a Report.
//
// Description:
//
//	Collect is the single consumer of the worker pool's result channel.
//	Workers never share a report buffer: each sends its already-computed
//	FileResult and this one goroutine does all the appending, so no lock is
//	needed anywhere in the report path.
//
//	Files whose detector output is empty contribute nothing. Failed files
//	contribute a one-line diagnostic and are recorded in Summary.Failed;
//	they never abort the rest of the run.
//
// Inputs:
//   - results: Channel of per-file results. Collect returns when it closes.
//
// Outputs:
//   - *Report: The merged report, never nil.
func Collect(results <-chan FileResult) *Report {
	rep := &Report{Files: make([]FileReport, 0)}

	for res := range results {
		rep.Summary.FilesScanned++

		if res.Err != nil {
			rep.Summary.Failed = append(rep.Summary.Failed, res.Path)
			rep.Files = append(rep.Files, FileReport{
				Path:  res.Path,
				Error: res.Err.Error(),
			})
			continue
		}

		if len(res.Findings) == 0 {
			continue
		}

		rep.Summary.FilesWithFindings++
		rep.Summary.FindingCount += len(res.Findings)
		rep.Files = append(rep.Files, FileReport{
			Path:     res.Path,
			Findings: res.Findings,
		})
	}

	return rep
}
