// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package walker enumerates candidate Python files under a root path.
//
// Exclusion predicates run at the directory-entry level, so an excluded
// subtree (a hidden directory, a tests directory) is skipped without ever
// being descended into.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options controls which paths the walker yields.
type Options struct {
	// IgnoreHidden skips entries whose name starts with "." (the root
	// itself is exempt).
	IgnoreHidden bool

	// IgnoreTests skips directories named "tests" and any entry whose base
	// name starts with "test_".
	IgnoreTests bool

	// Extensions are the file suffixes to yield. Defaults to [".py"].
	Extensions []string
}

// defaultExtensions is used when Options.Extensions is empty.
var defaultExtensions = []string{".py"}

// Files streams candidate file paths under root.
//
// Description:
//
//	If root is a regular file it is yielded as-is (filters do not apply to
//	an explicitly named file). If root is a directory it is walked
//	recursively with the option predicates applied per entry.
//
//	Paths are sent on the returned channel as they are discovered; the
//	channel closes when the walk finishes. The error channel carries at
//	most one walk-level error (an unreadable root, a canceled context) and
//	is closed afterwards. Per-file read errors are not the walker's
//	concern: it never opens the files it yields.
//
// Inputs:
//   - ctx: Cancels the walk between entries.
//   - root: File or directory path to enumerate.
//   - opts: Exclusion predicates and extensions.
//
// Outputs:
//   - <-chan string: Candidate paths, closed at end of walk.
//   - <-chan error: At most one terminal walk error, closed at end of walk.
func Files(ctx context.Context, root string, opts Options) (<-chan string, <-chan error) {
	paths := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(paths)
		defer close(errc)

		info, err := os.Stat(root)
		if err != nil {
			errc <- fmt.Errorf("stat root: %w", err)
			return
		}

		if !info.IsDir() {
			select {
			case paths <- root:
			case <-ctx.Done():
				errc <- ctx.Err()
			}
			return
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal; the files we
				// never saw cannot be reported either way.
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if path == root {
				return nil
			}

			name := d.Name()
			if excluded(name, d.IsDir(), opts) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}
			if !hasCandidateExtension(name, opts) {
				return nil
			}

			select {
			case paths <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errc <- fmt.Errorf("walk %s: %w", root, err)
		}
	}()

	return paths, errc
}

// excluded applies the option predicates to one directory entry.
func excluded(name string, isDir bool, opts Options) bool {
	if opts.IgnoreHidden && isHidden(name) {
		return true
	}
	if opts.IgnoreTests && isTestPath(name, isDir) {
		return true
	}
	return false
}

// isHidden reports whether the entry name is dot-prefixed.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isTestPath reports whether the entry looks like test scaffolding: a
// directory named "tests", or any entry whose base name starts with "test_".
func isTestPath(name string, isDir bool) bool {
	if isDir && name == "tests" {
		return true
	}
	return strings.HasPrefix(name, "test_")
}

// hasCandidateExtension reports whether the file name carries one of the
// configured suffixes.
func hasCandidateExtension(name string, opts Options) bool {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
