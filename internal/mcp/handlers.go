package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/render"
	"github.com/shaheeralics/scriptwriter/internal/script"
)

type generatedScript struct {
	Script   string             `json:"script"`
	Backend  string             `json:"backend"`
	Stats    script.Stats       `json:"stats"`
	Attempts []generate.Attempt `json:"attempts,omitempty"`
}

// handleGenerateScript validates the topic and runs the generation chain.
func (s *Server) handleGenerateScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic"), nil
	}
	if err := prompt.ValidateTopic(topic, s.maxTopic); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	brief := prompt.Brief{
		Topic:    topic,
		Style:    request.GetString("style", ""),
		Duration: request.GetString("duration", ""),
		Audience: request.GetString("target_audience", ""),
		Language: request.GetString("language", ""),
	}
	res := s.gen.Generate(ctx, brief)

	return jsonResult(generatedScript{
		Script:   res.Text,
		Backend:  res.Backend,
		Stats:    script.Analyze(res.Text),
		Attempts: res.Attempts,
	})
}

// handleRenderPreview converts markdown to a sanitized HTML fragment.
func (s *Server) handleRenderPreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("markdown")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: markdown"), nil
	}
	html, err := render.Fragment(src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering preview: %v", err)), nil
	}
	return mcp.NewToolResultText(html), nil
}

// handleScriptStats reports word count, duration and sections.
func (s *Server) handleScriptStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("markdown")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: markdown"), nil
	}
	if strings.TrimSpace(src) == "" {
		return mcp.NewToolResultError("markdown is empty"), nil
	}
	return jsonResult(script.Analyze(src))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
