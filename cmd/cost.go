package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaheeralics/scriptwriter/internal/llm"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
)

var costCmd = &cobra.Command{
	Use:   "cost <topic>",
	Short: "Estimate API costs for generating a script",
	Long:  `Builds the prompt for a topic and estimates the tokens and cost per configured backend without making any calls.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	brief := prompt.Brief{Topic: strings.Join(args, " ")}
	if err := prompt.ValidateTopic(brief.Topic, cfg.MaxTopicLength); err != nil {
		return err
	}

	logger := newLogger(false)
	builder := prompt.NewBuilder(
		prompt.LoadTemplate(cfg.TemplateFile, logger),
		prompt.LoadCorpus(cfg.ReferenceFiles, logger),
	)
	text, err := builder.Build(brief)
	if err != nil {
		return fmt.Errorf("building prompt: %w", err)
	}

	input := llm.EstimateTokens(cfg.SystemPrompt) + llm.EstimateTokens(text)
	output := cfg.MaxTokens

	fmt.Println("Cost Estimate")
	fmt.Println("=============")
	fmt.Printf("  Reference excerpts:  %d\n", builder.CorpusSize())
	fmt.Printf("  Prompt tokens:       ~%d\n", input)
	fmt.Printf("  Max output tokens:   %d\n", output)
	fmt.Println()

	backends := cfg.Backends()
	if len(backends) == 0 {
		fmt.Println("  No backend configured; the built-in template is free.")
		return nil
	}
	for i, b := range backends {
		fmt.Printf("  Tier %d  %-10s %-24s up to $%.4f\n", i+1, b.Provider, b.Model, llm.EstimateCost(b.Model, input, output))
	}
	return nil
}
