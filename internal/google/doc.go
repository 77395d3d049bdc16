// Package google provides OAuth2 authentication and token management for
// the Google Calendar API.
//
// Tokens are stored per account as files under the user cache directory,
// which suits a single-user CLI and the STDIO MCP transport. The
// TokenProvider interface allows other token sources to be plugged in.
package google
