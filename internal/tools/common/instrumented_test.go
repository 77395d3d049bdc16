package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

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

func TestInstrumentedToolHandler_PassThrough(t *testing.T) {
	sc := newTestServerContext(t)

	called := false
	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !called {
		t.Error("expected wrapped handler to be called")
	}
	if result == nil || result.IsError {
		t.Error("expected successful result")
	}
}

func TestInstrumentedToolHandler_PropagatesError(t *testing.T) {
	sc := newTestServerContext(t)

	wantErr := errors.New("boom")
	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := handler(context.Background(), mcp.CallToolRequest{})
	if !errors.Is(err, wantErr) {
		t.Errorf("handler error = %v, want %v", err, wantErr)
	}
}

func TestInstrumentedToolHandler_ErrorResult(t *testing.T) {
	sc := newTestServerContext(t)

	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("tool failed"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result to pass through")
	}
}

func TestInstrumentedToolHandlerWithService_PassThrough(t *testing.T) {
	sc := newTestServerContext(t)

	handler := InstrumentedToolHandlerWithService("test_tool", "calendar", "list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result == nil || result.IsError {
		t.Error("expected successful result")
	}
}
