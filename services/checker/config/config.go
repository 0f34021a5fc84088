// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads and validates the hintcheck YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// defaultPath is resolved relative to the user's home directory when no
// explicit config path is given.
const defaultPath = ".hintcheck/hintcheck.yaml"

// Config is the full hintcheck configuration.
type Config struct {
	Check     CheckConfig     `yaml:"check"`
	Serve     ServeConfig     `yaml:"serve"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CheckConfig controls scanning and detection.
type CheckConfig struct {
	IgnoreHidden bool `yaml:"ignore_hidden"`
	IgnoreTests  bool `yaml:"ignore_tests"`
	IgnoreReturn bool `yaml:"ignore_return"`

	// Workers bounds the pool; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0"`

	// MaxFileSizeBytes caps the size of files the parser accepts; 0 keeps
	// the built-in limit.
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes" validate:"gte=0"`

	// Extensions are the file suffixes to check. Empty means [".py"].
	Extensions []string `yaml:"extensions"`
}

// ServeConfig controls the HTTP check service.
type ServeConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// TelemetryConfig controls the OpenTelemetry exporters.
type TelemetryConfig struct {
	// Traces selects the trace exporter: "stdout" or "none".
	Traces string `yaml:"traces" validate:"oneof=stdout none"`

	// Metrics selects the metric exporter: "prometheus" or "none". The
	// serve command always enables prometheus regardless.
	Metrics string `yaml:"metrics" validate:"oneof=prometheus none"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Check: CheckConfig{
			IgnoreHidden: true,
			IgnoreTests:  false,
			Workers:      0,
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8791",
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Traces:  "none",
			Metrics: "none",
		},
	}
}

// Load reads the configuration from path.
//
// Description:
//
//	With an empty path, Load looks for ~/.hintcheck/hintcheck.yaml and
//	falls back to Default() when the file does not exist. An explicitly
//	named path must exist. The result is validated in either case.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, defaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the struct-level constraints.
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
