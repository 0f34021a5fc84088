// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hintcheck/services/checker/analyze"
)

// feed sends the results over a channel and closes it, as the worker pool
// does.
func feed(results ...FileResult) <-chan FileResult {
	ch := make(chan FileResult, len(results))
	for _, r := range results {
		ch <- r
	}
	close(ch)
	return ch
}

func TestCollect_CleanFilesAreInvisible(t *testing.T) {
	rep := Collect(feed(
		FileResult{Path: "clean.py", Findings: nil},
		FileResult{Path: "dirty.py", Findings: []analyze.Finding{
			{Kind: analyze.FindingMissingReturn, Name: "f", Line: 0, Col: 0},
		}},
	))

	require.Len(t, rep.Files, 1)
	assert.Equal(t, "dirty.py", rep.Files[0].Path)
	assert.Equal(t, 2, rep.Summary.FilesScanned)
	assert.Equal(t, 1, rep.Summary.FilesWithFindings)
	assert.Equal(t, 1, rep.Summary.FindingCount)

	text := rep.Text()
	assert.Equal(t, 1, strings.Count(text, "File: "))
	assert.Contains(t, text, "File: dirty.py\n")
	assert.NotContains(t, text, "clean.py")
}

func TestCollect_BlockLayout(t *testing.T) {
	rep := Collect(feed(FileResult{
		Path: "app.py",
		Findings: []analyze.Finding{
			{Kind: analyze.FindingMissingParameter, Name: "a", Line: 0, Col: 6},
			{Kind: analyze.FindingMissingReturn, Name: "f", Line: 0, Col: 0},
		},
	}))

	want := "File: app.py\n" +
		"\tParameter 'a' in line 1 and column 7 is missing a type hint.\n" +
		"\tFunction 'f' in line 1 and column 1 is missing a return type.\n"
	assert.Equal(t, want, rep.Text())
}

func TestCollect_FailedFileIsReportedAndSkipped(t *testing.T) {
	rep := Collect(feed(
		FileResult{Path: "broken.py", Err: errors.New("invalid content")},
		FileResult{Path: "ok.py", Findings: []analyze.Finding{
			{Kind: analyze.FindingMissingReturn, Name: "g", Line: 2, Col: 0},
		}},
	))

	assert.Equal(t, []string{"broken.py"}, rep.Summary.Failed)
	assert.False(t, rep.IsClean())

	text := rep.Text()
	assert.Contains(t, text, "could not process broken.py: invalid content\n")
	assert.Contains(t, text, "File: ok.py\n")
}

func TestCollect_EmptyRunIsClean(t *testing.T) {
	rep := Collect(feed())
	assert.True(t, rep.IsClean())
	assert.Equal(t, "", rep.Text())
}

func TestStyles_RenderSentinel(t *testing.T) {
	rep := Collect(feed(FileResult{Path: "clean.py"}))

	out := NewStyles(false).Render(rep)
	assert.Equal(t, SuccessSentinel+"\n", out)
}

func TestStyles_RenderPlainPassthrough(t *testing.T) {
	rep := Collect(feed(FileResult{
		Path: "app.py",
		Findings: []analyze.Finding{
			{Kind: analyze.FindingMissingReturn, Name: "f", Line: 0, Col: 0},
		},
	}))

	out := NewStyles(false).Render(rep)
	assert.Equal(t, rep.Text(), out)
}
