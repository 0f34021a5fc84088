// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hintcheck/services/checker/analyze"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestRun_DirectoryWithMixedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.py", "def f(a: int) -> int:\n    return a\n")
	dirty := writeFile(t, dir, "dirty.py", "def g(b):\n    pass\n")
	writeFile(t, dir, "notes.txt", "not python\n")

	r, err := New(Options{Root: dir, Workers: 2}, nil)
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, dir, rep.Root)
	assert.Equal(t, 2, rep.Summary.FilesScanned)
	assert.Equal(t, 1, rep.Summary.FilesWithFindings)
	assert.Equal(t, 2, rep.Summary.FindingCount)
	assert.Empty(t, rep.Summary.Failed)

	require.Len(t, rep.Files, 1)
	assert.Equal(t, dirty, rep.Files[0].Path)
	require.Len(t, rep.Files[0].Findings, 2)
	assert.Equal(t, analyze.FindingMissingParameter, rep.Files[0].Findings[0].Kind)
	assert.Equal(t, "b", rep.Files[0].Findings[0].Name)
	assert.Equal(t, analyze.FindingMissingReturn, rep.Files[0].Findings[1].Kind)
	assert.Equal(t, "g", rep.Files[0].Findings[1].Name)
}

func TestRun_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "app.py", "def h(x):\n    pass\n")

	r, err := New(Options{Root: target}, nil)
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Summary.FilesScanned)
	assert.Equal(t, 2, rep.Summary.FindingCount)
}

func TestRun_FailedFileDoesNotAbortRun(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.py", "def f():\n\tpass\n")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0x00}, 0o640))
	writeFile(t, dir, "ok.py", "def f(a):\n    pass\n")

	r, err := New(Options{Root: dir}, nil)
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{bad}, rep.Summary.Failed)
	assert.Equal(t, 2, rep.Summary.FilesScanned)
	assert.False(t, rep.IsClean())
	assert.Contains(t, rep.Text(), "could not process "+bad)
}

func TestRun_MissingRootIsAnError(t *testing.T) {
	r, err := New(Options{Root: filepath.Join(t.TempDir(), "nope")}, nil)
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rep)
}

func TestRun_CleanTreeIsClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def f() -> None:\n    pass\n")

	r, err := New(Options{Root: dir}, nil)
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.IsClean())
	assert.Empty(t, rep.Files)
}

func TestRun_IgnoreReturn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def f(a: int):\n    pass\n")

	r, err := New(Options{Root: dir, IgnoreReturn: true}, nil)
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.IsClean())
}
