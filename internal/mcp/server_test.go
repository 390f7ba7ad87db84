package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/llm"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/script"
)

// mockProvider implements llm.Provider for testing.
type mockProvider struct {
	content string
	err     error
	prompts []string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.prompts = append(m.prompts, req.Messages[len(req.Messages)-1].Content)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Content: m.content, Model: "mock-model"}, nil
}

func newTestServer(p llm.Provider) *Server {
	var backends []llm.Provider
	if p != nil {
		backends = append(backends, p)
	}
	gen := generate.New(prompt.NewBuilder("Script about {}.", nil), backends,
		generate.Options{Logger: log.New(io.Discard, "", 0)})
	return NewServer(gen, 0)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"generate_script", generateScriptTool, "generate_script"},
		{"render_preview", renderPreviewTool, "render_preview"},
		{"script_stats", scriptStatsTool, "script_stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(nil, 0)
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.maxTopic != prompt.DefaultMaxTopicLength {
		t.Errorf("maxTopic = %d, want %d", srv.maxTopic, prompt.DefaultMaxTopicLength)
	}
}

func TestHandleGenerateScript(t *testing.T) {
	ctx := context.Background()

	t.Run("backend answer", func(t *testing.T) {
		p := &mockProvider{content: "## Hook\n\nWireless charging explained."}
		srv := newTestServer(p)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"topic": "wireless charging",
			"style": "entertaining",
		}

		result, err := srv.handleGenerateScript(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}

		var got generatedScript
		if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Backend != "mock" || got.Stats.WordCount != 4 {
			t.Errorf("unexpected result: %+v", got)
		}
		if len(p.prompts) != 1 || !strings.Contains(p.prompts[0], "REQUIREMENTS:") {
			t.Errorf("prompt should carry requirements: %q", p.prompts)
		}
	})

	t.Run("template fallback", func(t *testing.T) {
		srv := newTestServer(&mockProvider{err: errors.New("offline")})
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"topic": "kites"}

		result, err := srv.handleGenerateScript(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got generatedScript
		if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Backend != generate.TemplateBackend || len(got.Attempts) != 1 {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("missing topic", func(t *testing.T) {
		srv := newTestServer(nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGenerateScript(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing topic")
		}
	})

	t.Run("topic too long", func(t *testing.T) {
		srv := newTestServer(nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"topic": strings.Repeat("x", 201)}

		result, err := srv.handleGenerateScript(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected validation error")
		}
		if got := resultText(t, result); got != "Topic too long (max 200 characters)" {
			t.Errorf("message = %q", got)
		}
	})
}

func TestHandleRenderPreview(t *testing.T) {
	srv := newTestServer(nil)
	ctx := context.Background()

	t.Run("markdown", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"markdown": "# Title\n\nSome *italic* text."}

		result, err := srv.handleRenderPreview(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		html := resultText(t, result)
		if !strings.Contains(html, "<h1") || !strings.Contains(html, "<em>italic</em>") {
			t.Errorf("unexpected html: %s", html)
		}
	})

	t.Run("missing markdown", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleRenderPreview(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing markdown")
		}
	})
}

func TestHandleScriptStats(t *testing.T) {
	srv := newTestServer(nil)
	ctx := context.Background()

	t.Run("stats", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"markdown": "## Hook (0:00-0:15)\nHello there.\n\n## Outro\nBye now.",
		}

		result, err := srv.handleScriptStats(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got script.Stats
		if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(got.Sections) != 2 || got.Sections[0] != "Hook" || got.Sections[1] != "Outro" {
			t.Errorf("sections = %v", got.Sections)
		}
		if got.Paragraphs != 2 {
			t.Errorf("paragraphs = %d, want 2", got.Paragraphs)
		}
	})

	t.Run("empty markdown", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"markdown": "  "}

		result, err := srv.handleScriptStats(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for empty markdown")
		}
	})
}
