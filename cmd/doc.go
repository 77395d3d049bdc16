// Package cmd implements the command-line interface for calagent.
//
// This package provides the following commands:
//   - today: Show the day's schedule analysis and meeting priorities
//   - analyze: Free/busy analysis for a day
//   - rank: Rank a day's meetings into priority tiers
//   - focus: Create a focus time block
//   - commute: Create a commute buffer
//   - decline: Decline a meeting
//   - reschedule: Move a meeting to a new time
//   - auth: Run the Google OAuth flow for an account
//   - serve: Start the MCP server for AI assistants
//   - version: Display version information
//
// The today command is the default when no subcommand is specified.
package cmd
