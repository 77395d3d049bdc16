// Package schedule implements the calendar agent's analysis engine.
//
// It contains two pure, synchronous components:
//
//   - Analyze derives free/busy structure for a day: merged busy time,
//     free blocks inside a working-hours window, and a count of
//     back-to-back meeting pairs.
//   - Rank assigns each meeting a priority tier (critical, important,
//     moderate, cancelable) from title keywords, attendee counts, and
//     organizer/internal-domain flags, grouping meetings for downstream
//     decline or reschedule decisions.
//
// The package performs no I/O and holds no shared mutable state. Each call
// receives its own event slice and configuration and returns a freshly
// constructed result, so the engine is safe to use from multiple goroutines
// serving different users and timezones.
//
// Fetching events from the calendar provider and acting on results
// (creating focus blocks, declining cancel candidates) belong to the
// calendar client and CLI layers, not here.
package schedule
