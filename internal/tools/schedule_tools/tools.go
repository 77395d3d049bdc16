package schedule_tools

import (
	"context"
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kaushalvivek/calendar-agent/internal/calendar"
	"github.com/kaushalvivek/calendar-agent/internal/server"
)

// RegisterScheduleTools registers all schedule and calendar tools with the
// MCP server. Write tools are skipped unless the server context allows them.
func RegisterScheduleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterAnalysisTools(s, sc); err != nil {
		return fmt.Errorf("failed to register analysis tools: %w", err)
	}

	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	return nil
}

// getCalendarClient retrieves or creates a calendar client for the specified account
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !calendar.HasTokenForAccount(account) {
			authURL := calendar.GetAuthURLForAccount(account)
			return nil, fmt.Errorf(`Google OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Google Calendar
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the calendar_save_auth_code tool with account="%s" to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
		}

		var err error
		client, err = calendar.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
		}
		sc.SetCalendarClientForAccount(account, client)
	}
	return client, nil
}

// getCalendarID extracts the calendar ID from arguments, falling back to the
// configured calendar.
func getCalendarID(args map[string]interface{}, sc *server.ServerContext) string {
	if calIDVal, ok := args["calendarId"].(string); ok && calIDVal != "" {
		return calIDVal
	}
	if cfg := sc.Config(); cfg != nil && cfg.Calendar != "" {
		return cfg.Calendar
	}
	return "primary"
}

// parseDateArg parses a "date" argument in YYYY-MM-DD form in the given
// location, defaulting to today when absent.
func parseDateArg(args map[string]interface{}, loc *time.Location) (time.Time, error) {
	dateStr, ok := args["date"].(string)
	if !ok || dateStr == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
	}
	return date, nil
}
