// Package server provides the MCP server context and the operational HTTP
// server for the calendar agent.
//
// # Key Components
//
// ServerContext manages Google Calendar clients with lazy initialization and
// caching. It supports multiple accounts, carries the loaded application
// configuration, and gates write tools (event creation, declining) behind an
// explicit opt-in flag.
//
// MetricsServer serves Prometheus metrics and health probes on a dedicated
// port, keeping operational endpoints off the MCP stdio transport.
//
// HealthChecker implements liveness (/healthz) and readiness (/readyz)
// handlers. A missing Calendar token is reported but does not fail
// readiness, since the server can still hand out auth URLs.
package server
