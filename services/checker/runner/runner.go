// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package runner fans candidate files across a worker pool and merges the
// per-file results into one report.
//
// Concurrency model: the walker streams paths onto a channel; a fixed pool
// of workers (bounded by available parallelism) consumes it. Each worker
// reads, parses and detects one file at a time in full isolation and sends a
// FileResult over the results channel. A single collector goroutine owns the
// report, so no shared mutable state exists anywhere in the pipeline.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/hintcheck/services/checker/analyze"
	"github.com/AleutianAI/hintcheck/services/checker/ast"
	"github.com/AleutianAI/hintcheck/services/checker/report"
	"github.com/AleutianAI/hintcheck/services/checker/walker"
)

var tracer = otel.Tracer("hintcheck.runner")

// Options configures one run.
type Options struct {
	// Root is the file or directory to check.
	Root string

	// Workers bounds the pool size. 0 means runtime.NumCPU().
	Workers int

	// IgnoreHidden skips dot-prefixed paths during the walk.
	IgnoreHidden bool

	// IgnoreTests skips tests directories and test_-prefixed paths.
	IgnoreTests bool

	// IgnoreReturn suppresses missing-return findings.
	IgnoreReturn bool

	// MaxFileSize caps the size of files the parser accepts.
	// 0 means ast.DefaultMaxFileSize.
	MaxFileSize int64

	// Extensions are the file suffixes to check. Empty means the parser's
	// own extensions.
	Extensions []string
}

// Runner executes annotation-gap checks over a file tree.
//
// Thread Safety: A Runner is safe for concurrent Run calls; all per-run
// state lives on the Run stack.
type Runner struct {
	parser   *ast.PythonParser
	detector *analyze.Detector
	logger   *slog.Logger
	opts     Options
}

// New creates a Runner.
//
// Outputs:
//   - *Runner: Ready to run, never nil on success.
//   - error: Non-nil if the parser cannot be constructed (incompatible
//     grammar).
func New(opts Options, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var parserOpts []ast.PythonParserOption
	if opts.MaxFileSize > 0 {
		parserOpts = append(parserOpts, ast.WithMaxFileSize(opts.MaxFileSize))
	}

	parser, err := ast.NewPythonParser(parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	return &Runner{
		parser:   parser,
		detector: analyze.NewDetector(parser.Kinds()),
		logger:   logger,
		opts:     opts,
	}, nil
}

// Run checks every candidate file under the configured root.
//
// Description:
//
//	Streams paths from the walker through the worker pool and collects the
//	merged report. Per-file failures (unreadable, unparsable) are recorded
//	in the report and never abort the run; only a walk-level failure (for
//	example a missing root) is returned as an error.
//
// Outputs:
//   - *report.Report: Merged report with run ID and summary. Nil only when
//     err is non-nil.
//   - error: Walk-level failure or context cancellation.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	runID := uuid.NewString()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "runner.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", runID),
		attribute.String("root", r.opts.Root),
	)

	workers := r.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger := r.logger.With(slog.String("run_id", runID))
	logger.Debug("starting run",
		slog.String("root", r.opts.Root),
		slog.Int("workers", workers))

	exts := r.opts.Extensions
	if len(exts) == 0 {
		exts = r.parser.Extensions()
	}
	paths, walkErrc := walker.Files(ctx, r.opts.Root, walker.Options{
		IgnoreHidden: r.opts.IgnoreHidden,
		IgnoreTests:  r.opts.IgnoreTests,
		Extensions:   exts,
	})

	results := make(chan report.FileResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				results <- r.checkFile(ctx, path)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	rep := report.Collect(results)
	rep.RunID = runID
	rep.Root = r.opts.Root

	if err := <-walkErrc; err != nil {
		return nil, err
	}

	logger.Info("run completed",
		slog.Int("files_scanned", rep.Summary.FilesScanned),
		slog.Int("findings", rep.Summary.FindingCount),
		slog.Int("failed", len(rep.Summary.Failed)),
		slog.Duration("elapsed", time.Since(start)))

	span.SetAttributes(
		attribute.Int("files_scanned", rep.Summary.FilesScanned),
		attribute.Int("findings", rep.Summary.FindingCount),
		attribute.Int("failed", len(rep.Summary.Failed)),
	)

	return rep, nil
}

// checkFile reads, parses and detects one file. Failures become the
// result's Err; they are reported by the collector, not raised.
func (r *Runner) checkFile(ctx context.Context, path string) report.FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return report.FileResult{Path: path, Err: fmt.Errorf("read: %w", err)}
	}

	file, err := r.parser.Parse(ctx, content, path)
	if err != nil {
		return report.FileResult{Path: path, Err: err}
	}
	defer file.Close()

	findings, err := r.detector.DetectFile(ctx, file, analyze.Options{
		IgnoreReturn: r.opts.IgnoreReturn,
	})
	if err != nil {
		return report.FileResult{Path: path, Err: err}
	}

	return report.FileResult{Path: path, Findings: findings}
}
