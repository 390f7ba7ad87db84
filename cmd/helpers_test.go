package cmd

import (
	"testing"

	"github.com/shaheeralics/scriptwriter/internal/config"
	"github.com/shaheeralics/scriptwriter/internal/llm"
)

func TestBuildBackendsWrapsRateLimitedTiers(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "k")
	t.Setenv("OPENAI_API_KEY", "k")

	cfg := config.DefaultConfig()
	cfg.PrimaryRPM = 10

	backends := buildBackends(cfg, newLogger(false))
	if len(backends) != 2 {
		t.Fatalf("expected 2 backends, got %d", len(backends))
	}
	if _, ok := backends[0].(*llm.RateLimitedProvider); !ok {
		t.Errorf("expected primary to be rate limited, got %T", backends[0])
	}
	if _, ok := backends[1].(*llm.RateLimitedProvider); ok {
		t.Error("expected fallback without rpm to be unwrapped")
	}
	if backends[0].Name() != "google" {
		t.Errorf("expected wrapped primary to keep its name, got %q", backends[0].Name())
	}
}

func TestBuildBackendsSkipsMissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "k")

	backends := buildBackends(config.DefaultConfig(), newLogger(false))
	if len(backends) != 1 || backends[0].Name() != "openai" {
		t.Errorf("expected only the openai backend, got %d", len(backends))
	}
}
