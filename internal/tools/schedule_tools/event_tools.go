package schedule_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kaushalvivek/calendar-agent/internal/server"
	"github.com/kaushalvivek/calendar-agent/internal/tools/common"
)

// RegisterEventTools registers event tools with the MCP server. The list
// tool is always available; create and decline require writes to be enabled.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List events tool (read-only, always available)
	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List calendar events within a time range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start time for the range (RFC3339 format, e.g., '2025-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End time for the range (RFC3339 format, e.g., '2025-01-31T23:59:59Z')"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandlerWithService("calendar_list_events", "calendar", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	// Write tools are only registered when the operator opted in
	if !sc.WriteEnabled() {
		return nil
	}

	// Create focus block tool
	focusBlockTool := mcp.NewTool("calendar_create_focus_block",
		mcp.WithDescription("Create a focus time block on the calendar with a popup reminder"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What to focus on, e.g. 'quarterly planning doc'"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339 format, e.g., '2025-01-15T14:00:00+05:30')"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End time (RFC3339 format)"),
		),
		mcp.WithString("description",
			mcp.Description("Optional event description"),
		),
	)

	s.AddTool(focusBlockTool, common.InstrumentedToolHandlerWithService("calendar_create_focus_block", "calendar", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateFocusBlock(ctx, request, sc)
		}))

	// Decline event tool
	declineEventTool := mcp.NewTool("calendar_decline_event",
		mcp.WithDescription("Decline a calendar event by setting the user's response status"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to decline"),
		),
		mcp.WithBoolean("notify",
			mcp.Description("Notify other attendees of the decline (default: false)"),
		),
	)

	s.AddTool(declineEventTool, common.InstrumentedToolHandlerWithService("calendar_decline_event", "calendar", "decline", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeclineEvent(ctx, request, sc)
		}))

	return nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	timeMinStr, ok := args["timeMin"].(string)
	if !ok || timeMinStr == "" {
		return mcp.NewToolResultError("timeMin is required"), nil
	}
	timeMin, err := time.Parse(time.RFC3339, timeMinStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMin format: %v", err)), nil
	}

	timeMaxStr, ok := args["timeMax"].(string)
	if !ok || timeMaxStr == "" {
		return mcp.NewToolResultError("timeMax is required"), nil
	}
	timeMax, err := time.Parse(time.RFC3339, timeMaxStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMax format: %v", err)), nil
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.ListEvents(getCalendarID(args, sc), timeMin, timeMax)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d events:\n\n", len(events))
	for i, event := range events {
		fmt.Fprintf(&b, "%d. %s\n", i+1, event.Summary)
		fmt.Fprintf(&b, "   ID: %s\n", event.ID)
		fmt.Fprintf(&b, "   Start: %s\n", event.Start.Format(time.RFC3339))
		fmt.Fprintf(&b, "   End: %s\n", event.End.Format(time.RFC3339))
		if event.ResponseStatus != "" {
			fmt.Fprintf(&b, "   Response: %s\n", event.ResponseStatus)
		}
		if event.MeetLink != "" {
			fmt.Fprintf(&b, "   Meet: %s\n", event.MeetLink)
		}
		if len(event.Attendees) > 0 {
			fmt.Fprintf(&b, "   Attendees: %d\n", len(event.Attendees))
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func handleCreateFocusBlock(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	cfg := sc.Config()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	startStr, ok := args["start"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("start is required"), nil
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid start format: %v", err)), nil
	}

	endStr, ok := args["end"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("end is required"), nil
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid end format: %v", err)), nil
	}

	if !end.After(start) {
		return mcp.NewToolResultError("end must be after start"), nil
	}

	description := ""
	if descVal, ok := args["description"].(string); ok {
		description = descVal
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := client.CreateFocusBlock(getCalendarID(args, sc), title, start, end, cfg.Timezone, description)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create focus block: %v", err)), nil
	}

	result := fmt.Sprintf("Focus block created: %s\nID: %s\nStart: %s\nEnd: %s\n",
		created.Summary,
		created.ID,
		created.Start.Format(time.RFC3339),
		created.End.Format(time.RFC3339))

	return mcp.NewToolResultText(result), nil
}

func handleDeclineEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	notify := false
	if notifyVal, ok := args["notify"].(bool); ok {
		notify = notifyVal
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeclineEvent(getCalendarID(args, sc), eventID, notify); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to decline event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event %s declined (notify=%t)", eventID, notify)), nil
}
