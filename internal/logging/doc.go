// Package logging provides structured logging utilities for the calendar
// agent.
//
// It centralizes attribute naming for slog so that operations, accounts,
// calendars, and events are logged consistently, and it sanitizes attendee
// emails before they reach log output.
//
// Log with standard attributes:
//
//	slog.Debug("listed events", logging.Operation("list"), logging.Calendar("primary"))
//
// Sanitize sensitive data before logging:
//
//	slog.Debug("declined event", logging.UserHash(attendee))
package logging
