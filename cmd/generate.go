package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaheeralics/scriptwriter/internal/progress"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/render"
	"github.com/shaheeralics/scriptwriter/internal/script"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Write a script for a topic",
	Long: `Builds the prompt for a topic, runs it through the configured backends
(falling back to the built-in template) and prints the markdown script.
Use --out, --pdf and --html to write files instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("style", "", "presentation style: "+strings.Join(prompt.KnownStyles(), ", "))
	generateCmd.Flags().String("duration", "", "video length: "+strings.Join(prompt.KnownDurations(), ", "))
	generateCmd.Flags().String("audience", "", "target audience: "+strings.Join(prompt.KnownAudiences(), ", "))
	generateCmd.Flags().String("language", "", "script language, e.g. english, roman_urdu, urdu, hindi")
	generateCmd.Flags().String("out", "", "write the markdown script to this file instead of stdout")
	generateCmd.Flags().String("pdf", "", "also export the script as a PDF file")
	generateCmd.Flags().String("html", "", "also write an HTML preview file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	style, _ := cmd.Flags().GetString("style")
	duration, _ := cmd.Flags().GetString("duration")
	audience, _ := cmd.Flags().GetString("audience")
	language, _ := cmd.Flags().GetString("language")
	outPath, _ := cmd.Flags().GetString("out")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	htmlPath, _ := cmd.Flags().GetString("html")

	brief := prompt.Brief{
		Topic:    strings.Join(args, " "),
		Style:    style,
		Duration: duration,
		Audience: audience,
		Language: language,
	}
	if err := prompt.ValidateTopic(brief.Topic, cfg.MaxTopicLength); err != nil {
		return err
	}

	logger := newLogger(false)

	steps := 2
	if pdfPath != "" {
		steps++
	}
	if htmlPath != "" {
		steps++
	}
	reporter := progress.NewReporter(os.Stderr)
	reporter.Start(steps)
	step := 0
	next := func(msg string) {
		step++
		reporter.Update(step, msg)
	}

	next("Building prompt")
	gen := buildGenerator(cfg, logger)

	next("Generating script")
	res := gen.Generate(context.Background(), brief)

	if htmlPath != "" {
		next("Rendering preview")
		page, err := render.Preview(res.Text, brief.Topic)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("rendering preview: %w", err)
		}
		if err := os.WriteFile(htmlPath, page, 0644); err != nil {
			reporter.Finish()
			return fmt.Errorf("writing %s: %w", htmlPath, err)
		}
	}
	if pdfPath != "" {
		next("Exporting PDF")
		pdf, err := buildExporter(cfg, logger).PDF(res.Text, brief.Topic)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("exporting PDF: %w", err)
		}
		if err := os.WriteFile(pdfPath, pdf.Data, 0644); err != nil {
			reporter.Finish()
			return fmt.Errorf("writing %s: %w", pdfPath, err)
		}
		if pdf.Degraded {
			defer fmt.Fprintf(os.Stderr, "Warning: PDF used the simplified layout: %v\n", pdf.Cause)
		}
	}
	reporter.Finish()

	if outPath != "" {
		if err := os.WriteFile(outPath, render.Text(res.Text), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	} else {
		fmt.Println(res.Text)
	}

	stats := script.Analyze(res.Text)
	fmt.Fprintf(os.Stderr, "\nScript complete (%s)\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  Backend:   %s\n", res.Backend)
	fmt.Fprintf(os.Stderr, "  Words:     %d\n", stats.WordCount)
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", stats.EstimatedDuration)
	if res.CostUSD > 0 {
		fmt.Fprintf(os.Stderr, "  Cost:      $%.4f (%d in / %d out tokens)\n", res.CostUSD, res.InputTokens, res.OutputTokens)
	}
	for _, a := range res.Attempts {
		fmt.Fprintf(os.Stderr, "  Skipped %s: %s\n", a.Backend, a.Error)
	}
	for _, path := range []string{outPath, htmlPath, pdfPath} {
		if path != "" {
			fmt.Fprintf(os.Stderr, "  Wrote %s\n", path)
		}
	}
	return nil
}
