// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains the walker into a set of base names.
func collect(t *testing.T, root string, opts Options) map[string]bool {
	t.Helper()

	paths, errc := Files(context.Background(), root, opts)
	got := make(map[string]bool)
	for p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		got[rel] = true
	}
	require.NoError(t, <-errc)
	return got
}

// writeFile creates a file (and its parents) under dir.
func writeFile(t *testing.T, dir, rel string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o640))
}

func TestFiles_OnlyPythonFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py")
	writeFile(t, dir, "b.txt")
	writeFile(t, dir, "sub/c.py")

	got := collect(t, dir, Options{})
	require.Len(t, got, 2)
	assert.True(t, got["a.py"])
	assert.True(t, got[filepath.Join("sub", "c.py")])
}

func TestFiles_IgnoreHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py")
	writeFile(t, dir, ".venv/lib.py")
	writeFile(t, dir, ".hidden.py")

	got := collect(t, dir, Options{IgnoreHidden: true})
	assert.Equal(t, map[string]bool{"a.py": true}, got)

	// Without the filter, hidden paths are visited.
	got = collect(t, dir, Options{})
	assert.Len(t, got, 3)
}

func TestFiles_IgnoreTests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py")
	writeFile(t, dir, "tests/conftest.py")
	writeFile(t, dir, "test_a.py")
	writeFile(t, dir, "sub/test_b.py")

	got := collect(t, dir, Options{IgnoreTests: true})
	assert.Equal(t, map[string]bool{"a.py": true}, got)
}

func TestFiles_SingleFileRootBypassesFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "test_a.py")

	target := filepath.Join(dir, "test_a.py")
	paths, errc := Files(context.Background(), target, Options{IgnoreTests: true})

	var got []string
	for p := range paths {
		got = append(got, p)
	}
	require.NoError(t, <-errc)
	assert.Equal(t, []string{target}, got)
}

func TestFiles_MissingRoot(t *testing.T) {
	paths, errc := Files(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	for range paths {
		t.Fatal("no paths expected")
	}
	assert.Error(t, <-errc)
}

func TestFiles_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.py", "b.py", "c.py"} {
		writeFile(t, dir, name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, errc := Files(ctx, dir, Options{})
	for range paths {
	}
	assert.ErrorIs(t, <-errc, context.Canceled)
}
