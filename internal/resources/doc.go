// Package resources provides MCP resources for exposing agent configuration.
// Resources are read-only data sources that MCP clients can fetch, such as
// the effective schedule settings and ranking rules, so a client can explain
// why the engine classified a meeting the way it did.
package resources
