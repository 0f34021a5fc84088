// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package telemetry wires the OpenTelemetry tracer and meter providers.
//
// The CLI defaults to "none" for both exporters so a plain check run emits
// nothing; the serve command enables the Prometheus reader so /metrics has
// data behind it.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Config controls telemetry behavior.
type Config struct {
	// ServiceName identifies this process in traces and metrics.
	ServiceName string

	// ServiceVersion is the version string for this process.
	ServiceVersion string

	// TraceExporter selects the trace exporter: "stdout" or "none".
	TraceExporter string

	// MetricExporter selects the metric exporter: "prometheus" or "none".
	MetricExporter string
}

// DefaultConfig returns the quiet defaults used by the CLI. The standard
// OTEL_TRACES_EXPORTER and OTEL_METRICS_EXPORTER variables override them.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "hintcheck",
		ServiceVersion: "dev",
		TraceExporter:  getEnvOr("OTEL_TRACES_EXPORTER", "none"),
		MetricExporter: getEnvOr("OTEL_METRICS_EXPORTER", "none"),
	}
}

// Init initializes the telemetry stack.
//
// Description:
//
//	Installs the global TracerProvider and MeterProvider per the config.
//	After Init returns successfully, otel.Tracer() and otel.Meter() work
//	throughout the process. The returned shutdown function flushes and
//	stops the providers and must be called on exit.
//
// Thread Safety: Call once at startup.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("shutdown errors: %v", errs)
		}
		return nil
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	if cfg.TraceExporter != "none" {
		tp, err := initTracer(cfg, res)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		otel.SetTracerProvider(tp)
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	}

	if cfg.MetricExporter != "none" {
		mp, err := initMeter(cfg, res)
		if err != nil {
			return nil, fmt.Errorf("init meter: %w", err)
		}
		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
	}

	return shutdown, nil
}

// initTracer creates the TracerProvider.
func initTracer(cfg Config, res *resource.Resource) (*trace.TracerProvider, error) {
	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create exporter: %w", err)
		}
		return trace.NewTracerProvider(
			trace.WithBatcher(exporter),
			trace.WithResource(res),
			trace.WithSampler(trace.AlwaysSample()),
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.TraceExporter)
	}
}

// initMeter creates the MeterProvider. The Prometheus exporter registers
// with the default registry, so promhttp.Handler() serves these metrics.
func initMeter(cfg Config, res *resource.Resource) (*metric.MeterProvider, error) {
	switch cfg.MetricExporter {
	case "prometheus":
		exporter, err := promexporter.New()
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		return metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(exporter),
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.MetricExporter)
	}
}

// getEnvOr returns the environment variable value or the fallback.
func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
