// Package schedule_tools provides MCP tools for schedule analysis, meeting
// ranking, and calendar event management.
//
// Read tools (schedule_analyze, meetings_rank, calendar_list_events) are
// always registered. Write tools (calendar_create_focus_block,
// calendar_decline_event) are registered only when the server context has
// writes enabled, so an agent cannot mutate the calendar unless the operator
// opted in.
package schedule_tools
