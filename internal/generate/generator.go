// Package generate runs a brief through the ordered backend chain and falls
// back to a template script when every backend fails.
package generate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shaheeralics/scriptwriter/internal/llm"
	"github.com/shaheeralics/scriptwriter/internal/metrics"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
)

// TemplateBackend names the final, offline tier.
const TemplateBackend = "template"

// Attempt records one failed backend call.
type Attempt struct {
	Backend string `json:"backend"`
	Error   string `json:"error"`
}

// Result is the outcome of one generation.
type Result struct {
	Text     string    `json:"script"`
	Prompt   string    `json:"-"`
	Backend  string    `json:"backend"`
	Tier     int       `json:"tier"`
	Attempts []Attempt `json:"attempts,omitempty"`

	InputTokens  int     `json:"input_tokens,omitempty"`
	OutputTokens int     `json:"output_tokens,omitempty"`
	CostUSD      float64 `json:"cost_usd,omitempty"`
}

// FromTemplate reports whether every backend failed or none was configured.
func (r *Result) FromTemplate() bool {
	return r.Backend == TemplateBackend
}

// Options tunes backend requests.
type Options struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	Logger       *log.Logger
}

// Generator owns the prompt builder and the ordered backend list. It holds no
// per-call state and is safe for concurrent use.
type Generator struct {
	builder  *prompt.Builder
	backends []llm.Provider
	opts     Options
	logger   *log.Logger
}

// New creates a Generator. Backends are tried in the order given.
func New(builder *prompt.Builder, backends []llm.Provider, opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if builder == nil {
		builder = prompt.NewBuilder(prompt.DefaultTemplate(), nil)
	}
	return &Generator{
		builder:  builder,
		backends: append([]llm.Provider(nil), backends...),
		opts:     opts,
		logger:   logger,
	}
}

// Backends returns the names of the configured backends in tier order.
func (g *Generator) Backends() []string {
	names := make([]string, 0, len(g.backends))
	for _, b := range g.backends {
		names = append(names, b.Name())
	}
	return names
}

// Configured reports whether at least one hosted backend is available.
func (g *Generator) Configured() bool {
	return len(g.backends) > 0
}

// Generate builds the prompt for brief and runs it through the chain.
func (g *Generator) Generate(ctx context.Context, brief prompt.Brief) *Result {
	p, err := g.builder.Build(brief)
	if err != nil {
		g.logger.Printf("generate: building prompt for %q: %v", brief.Topic, err)
		return g.templateResult(brief, "", nil, time.Now())
	}
	return g.Complete(ctx, p, brief)
}

// Complete sends a finished prompt to each backend in order. The first
// non-empty answer wins; otherwise the brief's template script is returned.
// Complete never fails.
func (g *Generator) Complete(ctx context.Context, promptText string, brief prompt.Brief) *Result {
	start := time.Now()
	req := llm.PromptRequest(g.opts.SystemPrompt, promptText, g.opts.MaxTokens, g.opts.Temperature)

	var attempts []Attempt
	for i, backend := range g.backends {
		resp, err := g.call(ctx, backend, req)
		if err != nil {
			g.logger.Printf("generate: backend %s failed for topic %q: %v", backend.Name(), brief.Topic, err)
			metrics.BackendFailuresTotal.WithLabelValues(backend.Name()).Inc()
			attempts = append(attempts, Attempt{Backend: backend.Name(), Error: err.Error()})
			continue
		}

		metrics.GenerationsTotal.WithLabelValues(backend.Name()).Inc()
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
		in, out := resp.InputTokens, resp.OutputTokens
		if in == 0 && out == 0 {
			in, out = llm.EstimateTokens(promptText), llm.EstimateTokens(resp.Content)
		}
		return &Result{
			Text:         strings.TrimSpace(resp.Content),
			Prompt:       promptText,
			Backend:      backend.Name(),
			Tier:         i,
			Attempts:     attempts,
			InputTokens:  in,
			OutputTokens: out,
			CostUSD:      llm.EstimateCost(resp.Model, in, out),
		}
	}

	if len(g.backends) == 0 {
		g.logger.Printf("generate: no backend configured, using template script for topic %q", brief.Topic)
	}
	return g.templateResult(brief, promptText, attempts, start)
}

// call invokes one backend, converting a panic or a blank answer into an error.
func (g *Generator) call(ctx context.Context, backend llm.Provider, req llm.CompletionRequest) (resp *llm.CompletionResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("backend panic: %v", r)
		}
	}()
	resp, err = backend.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, fmt.Errorf("%s: %w", backend.Name(), llm.ErrEmptyResponse)
	}
	return resp, nil
}

func (g *Generator) templateResult(brief prompt.Brief, promptText string, attempts []Attempt, start time.Time) *Result {
	metrics.GenerationsTotal.WithLabelValues(TemplateBackend).Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	return &Result{
		Text:     TemplateScript(brief),
		Prompt:   promptText,
		Backend:  TemplateBackend,
		Tier:     len(g.backends),
		Attempts: attempts,
	}
}
