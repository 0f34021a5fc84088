// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsDebouncedPythonChanges(t *testing.T) {
	dir := t.TempDir()

	batches := make(chan []string, 4)
	w, err := New(dir, func(changed []string) {
		batches <- changed
	}, Options{DebounceWindow: 50 * time.Millisecond}, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	target := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(target, []byte("x = 1\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n\n"), 0o640))

	select {
	case changed := <-batches:
		require.Len(t, changed, 1)
		assert.Equal(t, target, changed[0])
	case <-time.After(3 * time.Second):
		t.Fatal("no batch received")
	}
}

func TestWatcher_DeduplicatesWithinBatch(t *testing.T) {
	dir := t.TempDir()

	batches := make(chan []string, 4)
	w, err := New(dir, func(changed []string) {
		batches <- changed
	}, Options{DebounceWindow: 150 * time.Millisecond}, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	target := filepath.Join(dir, "app.py")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte("x = 1\n"), 0o640))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case changed := <-batches:
		assert.Equal(t, []string{target}, changed)
	case <-time.After(3 * time.Second):
		t.Fatal("no batch received")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), nil, Options{}, nil)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}
