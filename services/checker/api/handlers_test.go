// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hintcheck/services/checker/report"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandlers(nil, "test"))
}

func postCheck(t *testing.T, router *gin.Engine, req CheckRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/check", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestHandleCheck_ReturnsReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(path, []byte("def f(a):\n    pass\n"), 0o640))

	router := newTestRouter(t)
	w := postCheck(t, router, CheckRequest{Root: dir})
	require.Equal(t, http.StatusOK, w.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, dir, rep.Root)
	assert.Equal(t, 1, rep.Summary.FilesScanned)
	assert.Equal(t, 2, rep.Summary.FindingCount)
	require.Len(t, rep.Files, 1)
	assert.Equal(t, path, rep.Files[0].Path)
}

func TestHandleCheck_MissingRootBodyRejected(t *testing.T) {
	router := newTestRouter(t)
	w := postCheck(t, router, CheckRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestHandleCheck_NonexistentRoot(t *testing.T) {
	router := newTestRouter(t)
	w := postCheck(t, router, CheckRequest{Root: filepath.Join(t.TempDir(), "nope")})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ROOT_NOT_FOUND", resp.Code)
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestRequestIDIsEchoed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\n"), 0o640))

	router := newTestRouter(t)
	body, err := json.Marshal(CheckRequest{Root: dir})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/check", bytes.NewReader(body))
	r.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, r)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
