// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ast

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for parsing.
var (
	tracer = otel.Tracer("hintcheck.ast")
	meter  = otel.Meter("hintcheck.ast")
)

// Metrics for parse operations.
var (
	parseLatency metric.Float64Histogram
	parseTotal   metric.Int64Counter
	parseErrors  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		parseLatency, err = meter.Float64Histogram(
			"hintcheck_parse_duration_seconds",
			metric.WithDescription("Duration of Python parse operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseTotal, err = meter.Int64Counter(
			"hintcheck_parse_total",
			metric.WithDescription("Total number of parse operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseErrors, err = meter.Int64Counter(
			"hintcheck_parse_errors_total",
			metric.WithDescription("Total number of parse failures"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// startParseSpan begins a span for a single parse operation.
func startParseSpan(ctx context.Context, filePath string, sizeBytes int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ast.Parse",
		trace.WithAttributes(
			attribute.String("file", filePath),
			attribute.Int("size_bytes", sizeBytes),
		),
	)
}

// recordParse records the outcome of a parse operation on the span and the
// package instruments. A nil err marks success.
func recordParse(ctx context.Context, span trace.Span, start time.Time, err error) {
	if initMetrics() == nil {
		parseTotal.Add(ctx, 1)
		parseLatency.Record(ctx, time.Since(start).Seconds())
		if err != nil {
			parseErrors.Add(ctx, 1)
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
