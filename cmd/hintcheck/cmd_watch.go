// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/hintcheck/services/checker/runner"
	"github.com/AleutianAI/hintcheck/services/checker/watch"
)

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	shutdown, err := initTelemetry(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	root := rootArg(args)
	r, err := runner.New(runnerOptions(cmd, cfg, root), logger.Slog())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One full pass up front, then rescans on change. A rescan of the whole
	// tree keeps the output consistent when a fix in one file touches none
	// of the changed paths.
	rerun := func() {
		rep, err := r.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("check run failed", "error", err)
			return
		}
		if emitErr := emitReport(rep); emitErr != nil {
			logger.Error("emit report failed", "error", emitErr)
		}
	}
	rerun()

	w, err := watch.New(root, func(changed []string) {
		fmt.Printf("\n%d file(s) changed, re-checking %s\n", len(changed), root)
		rerun()
	}, watch.Options{}, logger.Slog())
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil {
		return err
	}

	logger.Info("watching for changes", "root", root)
	<-ctx.Done()
	return nil
}
