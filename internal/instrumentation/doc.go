// Package instrumentation provides OpenTelemetry metrics and tracing for
// the calendar agent.
//
// A Provider owns the meter and tracer providers and the metrics recorder.
// Metrics export via Prometheus (default), OTLP, or stdout; traces via
// OTLP, stdout, or not at all (default). Configuration comes from
// OTEL_*/METRICS_*/TRACING_* environment variables, see DefaultConfig.
//
// Recorded metrics cover the schedule engine (analysis and ranking runs),
// Google Calendar API operations, and MCP tool invocations.
package instrumentation
