package schedule_tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kaushalvivek/calendar-agent/internal/calendar"
	"github.com/kaushalvivek/calendar-agent/internal/instrumentation"
	"github.com/kaushalvivek/calendar-agent/internal/logging"
	"github.com/kaushalvivek/calendar-agent/internal/schedule"
	"github.com/kaushalvivek/calendar-agent/internal/server"
	"github.com/kaushalvivek/calendar-agent/internal/tools/common"
)

// RegisterAnalysisTools registers the schedule analysis and ranking tools
// with the MCP server
func RegisterAnalysisTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Schedule analysis tool
	analyzeTool := mcp.NewTool("schedule_analyze",
		mcp.WithDescription("Analyze a day's schedule: busy/free time, free blocks, and back-to-back meetings within the configured work window"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("date",
			mcp.Description("Day to analyze in YYYY-MM-DD format (default: today)"),
		),
	)

	s.AddTool(analyzeTool, common.InstrumentedToolHandler("schedule_analyze", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScheduleAnalyze(ctx, request, sc)
		}))

	// Meeting ranking tool
	rankTool := mcp.NewTool("meetings_rank",
		mcp.WithDescription("Rank a day's meetings into priority tiers (critical, important, moderate, cancelable) to decide what can be skipped"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("date",
			mcp.Description("Day to rank in YYYY-MM-DD format (default: today)"),
		),
	)

	s.AddTool(rankTool, common.InstrumentedToolHandler("meetings_rank", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMeetingsRank(ctx, request, sc)
		}))

	return nil
}

// loadDayEvents fetches a day's events and converts them to schedule events.
func loadDayEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (events []schedule.Event, date time.Time, loc *time.Location, err error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	cfg := sc.Config()

	loc, err = cfg.Location()
	if err != nil {
		return nil, time.Time{}, nil, err
	}

	date, err = parseDateArg(args, loc)
	if err != nil {
		return nil, time.Time{}, nil, err
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return nil, time.Time{}, nil, err
	}

	summaries, err := client.ListDay(getCalendarID(args, sc), date, loc)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("failed to list events: %w", err)
	}

	return calendar.ToScheduleEvents(summaries, cfg.InternalDomains), date, loc, nil
}

func handleScheduleAnalyze(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	cfg := sc.Config()

	start := time.Now()
	status := instrumentation.StatusError
	defer func() {
		if m := sc.Metrics(); m != nil {
			m.RecordAnalysis(ctx, status, time.Since(start))
		}
	}()

	events, date, _, err := loadDayEvents(ctx, request, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	window, err := cfg.WorkWindowFor(date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, err := schedule.Analyze(events, window, cfg.BackToBackThresholdMinutes)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Analysis failed: %v", err)), nil
	}
	status = instrumentation.StatusSuccess

	slog.Debug("analyzed schedule",
		logging.Date(date.Format("2006-01-02")),
		slog.Int("meetings", analysis.MeetingCount),
		slog.Int("freeMinutes", analysis.FreeMinutes))

	return mcp.NewToolResultText(formatAnalysis(analysis, date, window, cfg.MinFreeBlockMinutes)), nil
}

func handleMeetingsRank(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	cfg := sc.Config()

	status := instrumentation.StatusError
	defer func() {
		if m := sc.Metrics(); m != nil {
			m.RecordRank(ctx, status)
		}
	}()

	events, date, _, err := loadDayEvents(ctx, request, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ranking, err := schedule.Rank(schedule.RankableMeetings(events), cfg.RankingRules())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Ranking failed: %v", err)), nil
	}
	status = instrumentation.StatusSuccess

	slog.Debug("ranked meetings",
		logging.Date(date.Format("2006-01-02")),
		slog.Int("total", ranking.Total()))

	return mcp.NewToolResultText(formatRanking(ranking, date)), nil
}

func formatAnalysis(a *schedule.AnalysisResult, date time.Time, window schedule.WorkWindow, minFreeBlockMinutes int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Schedule analysis for %s (%s - %s):\n\n",
		date.Format("2006-01-02"),
		window.Start.Format("15:04"),
		window.End.Format("15:04"))

	fmt.Fprintf(&b, "Meetings: %d\n", a.MeetingCount)
	fmt.Fprintf(&b, "Busy: %dh%02dm\n", a.BusyMinutes/60, a.BusyMinutes%60)
	if a.FocusMinutes > 0 {
		fmt.Fprintf(&b, "Focus: %dh%02dm\n", a.FocusMinutes/60, a.FocusMinutes%60)
	}
	fmt.Fprintf(&b, "Free: %dh%02dm\n", a.FreeMinutes/60, a.FreeMinutes%60)
	fmt.Fprintf(&b, "Back-to-back pairs: %d\n", a.BackToBackCount)
	if a.DeclinedCount > 0 {
		fmt.Fprintf(&b, "Declined (excluded): %d\n", a.DeclinedCount)
	}

	usable, hidden := 0, 0
	for _, block := range a.FreeBlocks {
		if block.Minutes() >= minFreeBlockMinutes {
			usable++
		} else {
			hidden++
		}
	}

	fmt.Fprintf(&b, "\nFree blocks of %d minutes or more (%d):\n", minFreeBlockMinutes, usable)
	for _, block := range a.FreeBlocks {
		if block.Minutes() < minFreeBlockMinutes {
			continue
		}
		fmt.Fprintf(&b, "  %s - %s (%d min)\n",
			block.Start.Format("15:04"),
			block.End.Format("15:04"),
			block.Minutes())
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "  (%d shorter gaps hidden)\n", hidden)
	}

	return b.String()
}

func formatRanking(r *schedule.RankingResult, date time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Meeting priorities for %s (%d meetings):\n", date.Format("2006-01-02"), r.Total())

	for _, tier := range schedule.Tiers() {
		events := r.ByTier(tier)
		if len(events) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d):\n", strings.ToUpper(string(tier)), len(events))
		for _, ev := range events {
			fmt.Fprintf(&b, "  %s - %s  %s",
				ev.Start.Format("15:04"),
				ev.End.Format("15:04"),
				ev.Title)
			if ev.AttendeeCount > 0 {
				fmt.Fprintf(&b, " (%d attendees)", ev.AttendeeCount)
			}
			b.WriteString("\n")
		}
	}

	if r.Total() == 0 {
		b.WriteString("\nNo meetings found.\n")
	}

	return b.String()
}
