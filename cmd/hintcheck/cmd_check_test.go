// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hintcheck/services/checker/config"
)

func TestRootArg(t *testing.T) {
	assert.Equal(t, ".", rootArg(nil))
	assert.Equal(t, "src", rootArg([]string{"src"}))
}

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolVar(&ignoreHidden, "ignore-hidden", false, "")
	cmd.Flags().BoolVar(&ignoreTests, "ignore-tests", false, "")
	cmd.Flags().BoolVar(&ignoreReturn, "ignore-return", false, "")
	cmd.Flags().IntVar(&workers, "workers", 0, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestRunnerOptions_ConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Check.IgnoreTests = true
	cfg.Check.Workers = 3

	cmd := newFlagCmd(t)
	opts := runnerOptions(cmd, cfg, "src")

	assert.Equal(t, "src", opts.Root)
	assert.True(t, opts.IgnoreHidden)
	assert.True(t, opts.IgnoreTests)
	assert.Equal(t, 3, opts.Workers)
}

func TestRunnerOptions_FlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Check.IgnoreHidden = true
	cfg.Check.Workers = 3

	cmd := newFlagCmd(t, "--ignore-hidden=false", "--workers=8", "--ignore-return")
	opts := runnerOptions(cmd, cfg, ".")

	assert.False(t, opts.IgnoreHidden)
	assert.Equal(t, 8, opts.Workers)
	assert.True(t, opts.IgnoreReturn)
}
