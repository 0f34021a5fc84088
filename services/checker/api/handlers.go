// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/hintcheck/services/checker/runner"
)

// Handlers contains the HTTP handlers for the check service.
//
// Thread Safety: Handlers is safe for concurrent use; each request builds
// its own runner.
type Handlers struct {
	logger  *slog.Logger
	version string
}

// NewHandlers creates the check service handlers.
func NewHandlers(logger *slog.Logger, version string) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{logger: logger, version: version}
}

// HandleCheck handles POST /v1/check.
//
// Description:
//
//	Runs a full annotation check over the requested root and returns the
//	report as JSON. Per-file failures are part of the report; only an
//	unusable root produces an error status.
//
// Response:
//
//	200 OK: report.Report
//	400 Bad Request: Validation error
//	404 Not Found: Root does not exist
//	500 Internal Server Error: Run failure
func (h *Handlers) HandleCheck(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleCheck")

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	r, err := runner.New(runner.Options{
		Root:         req.Root,
		Workers:      req.Workers,
		IgnoreHidden: req.IgnoreHidden,
		IgnoreTests:  req.IgnoreTests,
		IgnoreReturn: req.IgnoreReturn,
	}, logger)
	if err != nil {
		logger.Error("runner construction failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "RUNNER_ERROR",
		})
		return
	}

	rep, err := r.Run(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := "RUN_FAILED"
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
			code = "ROOT_NOT_FOUND"
		}
		logger.Error("run failed", "root", req.Root, "error", err)
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// getOrCreateRequestID returns the inbound X-Request-ID or mints one, and
// echoes it on the response.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
