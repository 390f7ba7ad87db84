package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaheeralics/scriptwriter/internal/prompt"
)

// generateScriptTool defines the generate_script MCP tool.
var generateScriptTool = mcp.NewTool("generate_script",
	mcp.WithDescription("Write a YouTube video script about a topic. Returns the markdown script with word count, estimated duration and section titles."),
	mcp.WithString("topic",
		mcp.Required(),
		mcp.Description("What the video is about (max 200 characters)"),
	),
	mcp.WithString("style",
		mcp.Description("Presentation style (default educational)"),
		mcp.Enum(prompt.KnownStyles()...),
	),
	mcp.WithString("duration",
		mcp.Description("Target video length (default medium)"),
		mcp.Enum(prompt.KnownDurations()...),
	),
	mcp.WithString("target_audience",
		mcp.Description("Who the video is for (default general)"),
		mcp.Enum(prompt.KnownAudiences()...),
	),
	mcp.WithString("language",
		mcp.Description("Script language, e.g. english, roman_urdu, urdu, hindi"),
	),
)

// renderPreviewTool defines the render_preview MCP tool.
var renderPreviewTool = mcp.NewTool("render_preview",
	mcp.WithDescription("Convert a markdown script to an HTML fragment. Raw HTML in the input is omitted."),
	mcp.WithString("markdown",
		mcp.Required(),
		mcp.Description("Markdown script text"),
	),
)

// scriptStatsTool defines the script_stats MCP tool.
var scriptStatsTool = mcp.NewTool("script_stats",
	mcp.WithDescription("Count words, paragraphs and sections of a markdown script and estimate its spoken duration."),
	mcp.WithString("markdown",
		mcp.Required(),
		mcp.Description("Markdown script text"),
	),
)
