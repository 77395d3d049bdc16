package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName: "test-service",
		Enabled:     false,
	})
	if err != nil {
		t.Fatalf("failed to create disabled provider: %v", err)
	}

	if provider.Enabled() {
		t.Error("expected provider to report disabled")
	}

	if provider.Metrics() == nil {
		t.Error("expected no-op metrics recorder, got nil")
	}

	// Tracer must still be usable when disabled
	tracer := provider.Tracer("test")
	_, span := tracer.Start(ctx, "noop")
	span.End()

	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestNewProvider_Prometheus(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if !provider.Enabled() {
		t.Error("expected provider to report enabled")
	}

	if provider.Metrics() == nil {
		t.Fatal("expected metrics to be non-nil")
	}
}

func TestNewProvider_UnsupportedMetricsExporter(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		Enabled:         true,
		MetricsExporter: "bogus",
		TracingExporter: ExporterNone,
	})
	if err == nil {
		t.Fatal("expected error for unsupported metrics exporter")
	}
}

func TestProvider_ShutdownIdempotentWhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{Enabled: false})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("first shutdown: %v", err)
	}
	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("second shutdown: %v", err)
	}
}
