// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package tracing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// restoreGlobals puts back the global provider and propagator after a test
// that registers its own.
func restoreGlobals(t *testing.T) {
	t.Helper()
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
}

func TestSetup_NoopWhenDisabled(t *testing.T) {
	for _, exporter := range []string{"", ExporterNone} {
		shutdown, err := Setup(context.Background(), Config{Exporter: exporter, ServiceName: "trailwatch"})
		if err != nil {
			t.Fatalf("Setup(%q) unexpected error: %v", exporter, err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := shutdown(ctx); err != nil {
			t.Fatalf("noop shutdown should not error: %v", err)
		}
	}
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), Config{Exporter: "zipkin"})
	if !errors.Is(err, ErrUnknownExporter) {
		t.Fatalf("Setup(zipkin) error = %v, want ErrUnknownExporter", err)
	}
}

func TestSetup_OTLPRequiresEndpoint(t *testing.T) {
	if _, err := Setup(context.Background(), Config{Exporter: ExporterOTLP}); err == nil {
		t.Fatal("Setup(otlp, no endpoint) error = nil")
	}
}

func TestSetup_OTLPShutdownFlushesCleanly(t *testing.T) {
	restoreGlobals(t)

	// Non-routable address so no export actually happens.
	shutdown, err := Setup(context.Background(), Config{
		Exporter:    ExporterOTLP,
		Endpoint:    "http://192.0.2.1:4318",
		SampleRatio: 1,
		ServiceName: "trailwatch-test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_StdoutExportsSpans(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), Config{
		Exporter:    ExporterStdout,
		SampleRatio: 1,
		ServiceName: "trailwatch-test",
		Writer:      &buf,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, span := Start(context.Background(), "sync.cycle")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
	if !strings.Contains(buf.String(), "sync.cycle") {
		t.Errorf("expected span name in stdout export, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "trailwatch-test") {
		t.Errorf("expected service name in stdout export, got: %s", buf.String())
	}
}

func TestStartAndRecordError(t *testing.T) {
	restoreGlobals(t)

	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	ctx, parent := Start(context.Background(), "sync.cycle")
	_, child := Start(ctx, "sync.fetch")
	RecordError(child, errors.New("upstream timeout"))
	RecordError(child, nil)
	child.End()
	parent.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	fetch := spans[0]
	if fetch.Name() != "sync.fetch" {
		t.Errorf("first ended span = %q, want sync.fetch", fetch.Name())
	}
	if fetch.Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("sync.fetch is not a child of sync.cycle")
	}
	if fetch.Status().Description != "upstream timeout" {
		t.Errorf("status = %q, want upstream timeout", fetch.Status().Description)
	}
	if len(fetch.Events()) != 1 {
		t.Errorf("events = %d, want 1 recorded error", len(fetch.Events()))
	}
}
