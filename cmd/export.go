package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaheeralics/scriptwriter/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export <script.md>",
	Short: "Export a markdown script as PDF, HTML or text",
	Long: `Renders an existing markdown script. PDF export falls back to a simplified
layout when the rich renderer cannot handle the text.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "pdf", "output format: pdf, html or txt")
	exportCmd.Flags().String("out", "", "output path (default: derived from --title)")
	exportCmd.Flags().String("title", "", "document title (default: input file name)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	title, _ := cmd.Flags().GetString("title")

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	format = strings.ToLower(strings.TrimPrefix(format, "."))
	var data []byte
	switch format {
	case "pdf":
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		res, err := buildExporter(cfg, newLogger(false)).PDF(string(src), title)
		if err != nil {
			return fmt.Errorf("exporting PDF: %w", err)
		}
		if res.Degraded {
			fmt.Fprintf(os.Stderr, "Warning: PDF used the simplified layout: %v\n", res.Cause)
		}
		data = res.Data
	case "html":
		data, err = render.Preview(string(src), title)
		if err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
	case "txt", "text":
		format = "txt"
		data = render.Text(string(src))
	default:
		return fmt.Errorf("unknown format %q: must be pdf, html or txt", format)
	}

	if outPath == "" {
		outPath = render.Filename(title, format)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", outPath, len(data))
	return nil
}
