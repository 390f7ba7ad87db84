package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shaheeralics/scriptwriter/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scriptwriter",
	Short: "AI-assisted YouTube script writer",
	Long: `Scriptwriter turns a topic into a structured YouTube video script using
hosted text-generation backends, with a built-in template when none is
reachable. Scripts can be previewed as HTML and exported as text or PDF,
from the command line, over HTTP, or as MCP tools for AI agents.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "No .env file loaded: %v\n", err)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
