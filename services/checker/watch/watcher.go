// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package watch re-triggers checks when Python files under a root change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the batch of changed Python file paths once the
// debounce window closes. It runs on a single goroutine; a slow handler
// delays the next batch, never drops it.
type Handler func(changed []string)

// Options configures a Watcher.
type Options struct {
	// DebounceWindow is how long to wait for further changes before the
	// handler fires. Default: 250ms.
	DebounceWindow time.Duration

	// Extensions are the file suffixes that count as changes.
	// Default: [".py"].
	Extensions []string

	// BufferSize is the size of the internal change channel. Default: 256.
	BufferSize int
}

func (o Options) withDefaults() Options {
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = 250 * time.Millisecond
	}
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".py"}
	}
	if o.BufferSize <= 0 {
		o.BufferSize = 256
	}
	return o
}

// ignoredDirs are never watched or descended into. Editors and interpreters
// churn these constantly and nothing checkable lives inside.
var ignoredDirs = []string{"__pycache__", ".git", ".venv", "node_modules", ".idea"}

// Watcher watches a directory tree and reports debounced Python changes.
//
// Thread Safety: Safe for concurrent use. The handler is called from a
// single goroutine.
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	handler  Handler
	opts     Options
	logger   *slog.Logger
	changes  chan string
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher over root. Call Start to begin watching and Stop to
// release the underlying OS watches.
func New(root string, handler Handler, opts Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		root:    root,
		watcher: fsw,
		handler: handler,
		opts:    opts,
		logger:  logger,
		changes: make(chan string, opts.BufferSize),
		done:    make(chan struct{}),
	}, nil
}

// Start registers the root tree with the OS watcher and spawns the event
// and debounce goroutines. Both exit when ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)

	w.logger.Debug("watching for changes",
		slog.String("root", w.root),
		slog.Duration("debounce", w.opts.DebounceWindow))
	return nil
}

// Stop closes the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

// addRecursive registers root and every non-ignored subdirectory.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignoredDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) ignoredDir(name string) bool {
	for _, d := range ignoredDirs {
		if name == d {
			return true
		}
	}
	return false
}

// relevant reports whether an event path is a checkable file.
func (w *Watcher) relevant(path string) bool {
	base := filepath.Base(path)
	for _, ext := range w.opts.Extensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// processEvents forwards relevant fsnotify events onto the change channel
// and registers newly created directories.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.ignoredDir(filepath.Base(event.Name)) {
						_ = w.addRecursive(event.Name)
					}
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}

			select {
			case w.changes <- event.Name:
			default:
				// Buffer full during an event storm; the debounced rerun
				// rescans the whole tree anyway.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

// debounceLoop batches changed paths and calls the handler once the window
// closes without further changes. Paths are deduplicated per batch.
func (w *Watcher) debounceLoop(ctx context.Context) {
	seen := make(map[string]struct{})
	var batch []string
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 && w.handler != nil {
			w.handler(batch)
		}
		batch = nil
		seen = make(map[string]struct{})
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-w.done:
			flush()
			return
		case path := <-w.changes:
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				batch = append(batch, path)
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.DebounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.DebounceWindow)
			}
		case <-timerC:
			flush()
		}
	}
}
