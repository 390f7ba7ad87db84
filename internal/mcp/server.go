package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes script writing tools.
type Server struct {
	gen      *generate.Generator
	maxTopic int
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server around gen. maxTopic limits topic
// length; zero means prompt.DefaultMaxTopicLength.
func NewServer(gen *generate.Generator, maxTopic int) *Server {
	if gen == nil {
		gen = generate.New(nil, nil, generate.Options{})
	}
	if maxTopic <= 0 {
		maxTopic = prompt.DefaultMaxTopicLength
	}
	s := &Server{
		gen:      gen,
		maxTopic: maxTopic,
	}

	s.mcp = server.NewMCPServer(
		"scriptwriter",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateScriptTool, s.handleGenerateScript)
	s.mcp.AddTool(renderPreviewTool, s.handleRenderPreview)
	s.mcp.AddTool(scriptStatsTool, s.handleScriptStats)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
