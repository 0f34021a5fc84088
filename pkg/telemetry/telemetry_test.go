// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NoneExportersAreInert(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{
		ServiceName:    "test",
		TraceExporter:  "none",
		MetricExporter: "none",
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnknownExporterRejected(t *testing.T) {
	_, err := Init(context.Background(), Config{
		ServiceName:    "test",
		TraceExporter:  "carrier-pigeon",
		MetricExporter: "none",
	})
	assert.ErrorIs(t, err, ErrUnknownExporter)
}

func TestInit_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	_, err := Init(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilContext)
}
