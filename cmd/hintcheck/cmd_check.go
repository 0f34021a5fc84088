// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/hintcheck/pkg/logging"
	"github.com/AleutianAI/hintcheck/pkg/telemetry"
	"github.com/AleutianAI/hintcheck/services/checker/config"
	"github.com/AleutianAI/hintcheck/services/checker/report"
	"github.com/AleutianAI/hintcheck/services/checker/runner"
)

// errFilesFailed signals that some files could not be processed. The
// diagnostics are already in the printed report, so main exits non-zero
// without a second message.
var errFilesFailed = errors.New("some files could not be processed")

// loadSetup resolves config and builds the logger shared by the commands.
func loadSetup(cmd *cobra.Command) (config.Config, *logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(level),
		Service: "hintcheck",
	})
	return cfg, logger, nil
}

// initTelemetry installs the exporters named in the config. DefaultConfig
// already honors the standard OTEL_* environment variables; the config file
// wins when it names an exporter.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	tcfg := telemetry.DefaultConfig()
	tcfg.ServiceVersion = version
	if cfg.Telemetry.Traces != "" {
		tcfg.TraceExporter = cfg.Telemetry.Traces
	}
	if cfg.Telemetry.Metrics != "" {
		tcfg.MetricExporter = cfg.Telemetry.Metrics
	}
	return telemetry.Init(ctx, tcfg)
}

// runnerOptions merges config defaults with explicit flags; a flag set on
// the command line wins over the file.
func runnerOptions(cmd *cobra.Command, cfg config.Config, root string) runner.Options {
	opts := runner.Options{
		Root:         root,
		Workers:      cfg.Check.Workers,
		IgnoreHidden: cfg.Check.IgnoreHidden,
		IgnoreTests:  cfg.Check.IgnoreTests,
		IgnoreReturn: cfg.Check.IgnoreReturn,
		MaxFileSize:  cfg.Check.MaxFileSizeBytes,
		Extensions:   cfg.Check.Extensions,
	}
	if cmd.Flags().Changed("ignore-hidden") {
		opts.IgnoreHidden = ignoreHidden
	}
	if cmd.Flags().Changed("ignore-tests") {
		opts.IgnoreTests = ignoreTests
	}
	if cmd.Flags().Changed("ignore-return") {
		opts.IgnoreReturn = ignoreReturn
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = workers
	}
	return opts
}

// emitReport prints the report to stdout, as JSON or styled text.
func emitReport(rep *report.Report) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	styles := report.NewStyles(!noColor && report.ColorEnabled())
	fmt.Print(styles.Render(rep))
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	r, err := runner.New(runnerOptions(cmd, cfg, rootArg(args)), logger.Slog())
	if err != nil {
		return err
	}

	rep, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := emitReport(rep); err != nil {
		return err
	}

	if len(rep.Summary.Failed) > 0 {
		return errFilesFailed
	}
	return nil
}
