package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kaushalvivek/calendar-agent/internal/config"
	"github.com/kaushalvivek/calendar-agent/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	sc, err := server.NewServerContext(context.Background(), config.Default(), false)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestRegisterConfigResources(t *testing.T) {
	sc := newTestServerContext(t)
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithResourceCapabilities(false, false))

	if err := RegisterConfigResources(s, sc); err != nil {
		t.Fatalf("RegisterConfigResources() error = %v", err)
	}
}

func TestHandleScheduleSettings(t *testing.T) {
	sc := newTestServerContext(t)

	var req mcp.ReadResourceRequest
	req.Params.URI = "config://schedule"

	contents, err := handleScheduleSettings(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleScheduleSettings() error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 resource content, got %d", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	if text.URI != "config://schedule" {
		t.Errorf("URI = %q, want config://schedule", text.URI)
	}

	var settings map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &settings); err != nil {
		t.Fatalf("settings are not valid JSON: %v", err)
	}
	if settings["workDayStart"] != "09:00" {
		t.Errorf("workDayStart = %v, want 09:00", settings["workDayStart"])
	}
	if settings["timezone"] != "Asia/Kolkata" {
		t.Errorf("timezone = %v, want Asia/Kolkata", settings["timezone"])
	}
}

func TestHandleRankingRules(t *testing.T) {
	sc := newTestServerContext(t)

	var req mcp.ReadResourceRequest
	req.Params.URI = "config://ranking-rules"

	contents, err := handleRankingRules(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleRankingRules() error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 resource content, got %d", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	if !strings.Contains(text.Text, "criticalKeywords") {
		t.Errorf("rules JSON missing criticalKeywords: %s", text.Text)
	}
	if !strings.Contains(text.Text, "largeMeetingAttendeeThreshold") {
		t.Errorf("rules JSON missing largeMeetingAttendeeThreshold: %s", text.Text)
	}
}
