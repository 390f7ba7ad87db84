package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/shaheeralics/scriptwriter/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing script generation, preview and statistics tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stdout carries the protocol; logs go to stderr.
		logger := newLogger(true)
		gen := buildGenerator(cfg, logger)

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "scriptwriter MCP server started on stdio (backends=%d)\n", len(gen.Backends()))

		srv := mcpserver.NewServer(gen, cfg.MaxTopicLength)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
