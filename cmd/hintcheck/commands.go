// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath   string
	logLevel     string
	ignoreHidden bool
	ignoreTests  bool
	ignoreReturn bool
	workers      int
	jsonOutput   bool
	noColor      bool
	serveAddr    string

	rootCmd = &cobra.Command{
		Use:   "hintcheck",
		Short: "Find missing Python type annotations",
		Long: `hintcheck scans Python source files and reports functions whose
parameters or return values lack type annotations.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheck, // bare "hintcheck [path]" behaves like "check"
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	checkCmd = &cobra.Command{
		Use:   "check [path]",
		Short: "Check a file or directory and print the findings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck, // Defined in cmd_check.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-check the tree whenever a Python file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch, // Defined in cmd_watch.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Expose the checker over HTTP",
		RunE:  runServe, // Defined in cmd_serve.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the hintcheck version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("hintcheck", version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a hintcheck.yaml (default: ~/.hintcheck/hintcheck.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	for _, cmd := range []*cobra.Command{rootCmd, checkCmd, watchCmd} {
		cmd.Flags().BoolVar(&ignoreHidden, "ignore-hidden", false, "skip hidden files and directories")
		cmd.Flags().BoolVar(&ignoreTests, "ignore-tests", false, "skip tests directories and test_ files")
		cmd.Flags().BoolVar(&ignoreReturn, "ignore-return", false, "do not report missing return annotations")
		cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = one per CPU)")
		cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")
		cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	}

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")

	rootCmd.AddCommand(checkCmd, watchCmd, serveCmd, versionCmd)
}

// rootArg returns the positional path argument, defaulting to the current
// directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
