// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	// Root is the file or directory to check. Required, must exist on the
	// server's filesystem.
	Root string `json:"root" binding:"required"`

	// IgnoreHidden skips dot-prefixed paths.
	IgnoreHidden bool `json:"ignore_hidden"`

	// IgnoreTests skips tests directories and test_-prefixed files.
	IgnoreTests bool `json:"ignore_tests"`

	// IgnoreReturn suppresses missing-return findings.
	IgnoreReturn bool `json:"ignore_return"`

	// Workers bounds the pool size; 0 means one per CPU.
	Workers int `json:"workers"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`
}

// HealthResponse is the body of GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
