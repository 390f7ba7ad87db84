package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shaheeralics/scriptwriter/internal/config"
	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/llm"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `scriptwriter init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger returns the logger for library output. Command-line runs stay
// quiet unless --verbose is set.
func newLogger(always bool) *log.Logger {
	if always || verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// buildBackends creates the configured backend chain in order. A backend
// whose credentials are missing is left out; one with an rpm cap is wrapped
// in a rate limiter.
func buildBackends(cfg *config.Config, logger *log.Logger) []llm.Provider {
	var backends []llm.Provider
	for _, b := range cfg.Backends() {
		p, err := llm.NewProvider(string(b.Provider), b.Model)
		if err != nil {
			logger.Printf("skipping backend %s: %v", b.Provider, err)
			continue
		}
		if b.RPM > 0 {
			p = llm.NewRateLimitedProvider(p, b.RPM, llm.DefaultRateLimitWait)
		}
		backends = append(backends, p)
	}
	if len(backends) == 0 {
		logger.Printf("no backend available, scripts will use the built-in template")
	}
	return backends
}

// buildGenerator loads the prompt template and reference corpus and wires
// them to the backend chain.
func buildGenerator(cfg *config.Config, logger *log.Logger) *generate.Generator {
	tmpl := prompt.LoadTemplate(cfg.TemplateFile, logger)
	corpus := prompt.LoadCorpus(cfg.ReferenceFiles, logger)
	if len(cfg.ReferenceFiles) > 0 {
		logger.Printf("loaded %d reference excerpts", len(corpus))
	}
	return generate.New(prompt.NewBuilder(tmpl, corpus), buildBackends(cfg, logger), generate.Options{
		SystemPrompt: cfg.SystemPrompt,
		MaxTokens:    cfg.MaxTokens,
		Temperature:  cfg.Temperature,
		Logger:       logger,
	})
}

func buildExporter(cfg *config.Config, logger *log.Logger) *render.Exporter {
	return render.NewExporter(render.PDFOptions{
		PageSize: string(cfg.Export.PageSize),
		FontFile: cfg.Export.FontFile,
		Logger:   logger,
	})
}
