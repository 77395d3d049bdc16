package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kaushalvivek/calendar-agent/internal/server"
)

// RegisterConfigResources registers read-only resources describing the
// effective agent configuration.
func RegisterConfigResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	scheduleResource := mcp.NewResource(
		"config://schedule",
		"Schedule Settings",
		mcp.WithResourceDescription("Work window, thresholds and timezone used by schedule analysis"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(scheduleResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleScheduleSettings(ctx, request, sc)
	})

	rulesResource := mcp.NewResource(
		"config://ranking-rules",
		"Ranking Rules",
		mcp.WithResourceDescription("Keyword lists and thresholds the meeting ranker applies"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(rulesResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleRankingRules(ctx, request, sc)
	})

	return nil
}

func handleScheduleSettings(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	cfg := sc.Config()

	settings := map[string]interface{}{
		"calendar":                   cfg.Calendar,
		"timezone":                   cfg.Timezone,
		"workDayStart":               cfg.WorkDayStart,
		"workDayEnd":                 cfg.WorkDayEnd,
		"backToBackThresholdMinutes": cfg.BackToBackThresholdMinutes,
		"minFreeBlockMinutes":        cfg.MinFreeBlockMinutes,
	}

	jsonData, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule settings: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func handleRankingRules(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	rules := sc.Config().RankingRules()

	data := map[string]interface{}{
		"criticalKeywords":              rules.CriticalKeywords,
		"cancelableKeywords":            rules.CancelableKeywords,
		"largeMeetingAttendeeThreshold": rules.LargeMeetingAttendeeThreshold,
		"internalDomains":               rules.InternalDomains,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ranking rules: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
