package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PrimaryProvider != ProviderGoogle {
		t.Errorf("expected default primary %q, got %q", ProviderGoogle, cfg.PrimaryProvider)
	}
	if cfg.FallbackProvider != ProviderOpenAI {
		t.Errorf("expected default fallback %q, got %q", ProviderOpenAI, cfg.FallbackProvider)
	}
	if cfg.MaxTokens != 2000 || cfg.Temperature != 0.7 {
		t.Errorf("unexpected generation defaults: %d, %f", cfg.MaxTokens, cfg.Temperature)
	}
	if cfg.MaxTopicLength != 200 {
		t.Errorf("expected max_topic_length 200, got %d", cfg.MaxTopicLength)
	}
	if cfg.MaxSessions != 1000 || cfg.SessionTTL() != 24*time.Hour {
		t.Errorf("unexpected session caps: %d, %s", cfg.MaxSessions, cfg.SessionTTL())
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("expected history_limit 20, got %d", cfg.HistoryLimit)
	}
	if cfg.RequestTimeout() != 120*time.Second {
		t.Errorf("expected 120s timeout, got %s", cfg.RequestTimeout())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.scriptwriter.yml")

	original := DefaultConfig()
	original.PrimaryProvider = ProviderAnthropic
	original.PrimaryModel = "claude-sonnet-4-5"
	original.FallbackProvider = ""
	original.FallbackModel = ""
	original.ReferenceFiles = []string{"refs/**/*.docx", "refs/*.md"}
	original.Server.Port = 9000
	original.Export.PageSize = PageA4

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.PrimaryProvider != original.PrimaryProvider {
		t.Errorf("primary_provider: got %q, want %q", loaded.PrimaryProvider, original.PrimaryProvider)
	}
	if loaded.PrimaryModel != original.PrimaryModel {
		t.Errorf("primary_model: got %q, want %q", loaded.PrimaryModel, original.PrimaryModel)
	}
	if loaded.FallbackProvider != "" {
		t.Errorf("fallback_provider: expected cleared, got %q", loaded.FallbackProvider)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("server.port: got %d, want 9000", loaded.Server.Port)
	}
	if loaded.Export.PageSize != PageA4 {
		t.Errorf("export.page_size: got %q, want A4", loaded.Export.PageSize)
	}
	if len(loaded.ReferenceFiles) != 2 || loaded.ReferenceFiles[1] != "refs/*.md" {
		t.Errorf("reference_files: got %v", loaded.ReferenceFiles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.PrimaryProvider != ProviderGoogle {
		t.Errorf("expected default provider, got %q", cfg.PrimaryProvider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SCRIPTWRITER_PRIMARY_PROVIDER", "ollama")
	t.Setenv("SCRIPTWRITER_SERVER__PORT", "9090")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.PrimaryProvider != ProviderOllama {
		t.Errorf("env override failed: got %q, want %q", loaded.PrimaryProvider, ProviderOllama)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("nested env override failed: got %d", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no backends", func(c *Config) { c.PrimaryProvider, c.FallbackProvider = "", "" }, false},
		{"invalid primary", func(c *Config) { c.PrimaryProvider = "invalid" }, true},
		{"invalid fallback", func(c *Config) { c.FallbackProvider = "invalid" }, true},
		{"negative max tokens", func(c *Config) { c.MaxTokens = -1 }, true},
		{"temperature too high", func(c *Config) { c.Temperature = 3 }, true},
		{"zero topic length", func(c *Config) { c.MaxTopicLength = 0 }, true},
		{"negative history", func(c *Config) { c.HistoryLimit = -1 }, true},
		{"negative max sessions", func(c *Config) { c.MaxSessions = -1 }, true},
		{"negative session ttl", func(c *Config) { c.SessionTTLMinutes = -5 }, true},
		{"negative primary rpm", func(c *Config) { c.PrimaryRPM = -1 }, true},
		{"fallback rpm", func(c *Config) { c.FallbackRPM = 30 }, false},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad page size", func(c *Config) { c.Export.PageSize = "Legal" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackends(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FallbackModel = ""
	got := cfg.Backends()
	if len(got) != 2 {
		t.Fatalf("expected 2 backends, got %d", len(got))
	}
	if got[0].Provider != ProviderGoogle || got[0].Model != "gemini-2.0-flash" {
		t.Errorf("unexpected primary %+v", got[0])
	}
	if got[1].Model != DefaultModel(ProviderOpenAI) {
		t.Errorf("expected default fallback model, got %q", got[1].Model)
	}

	cfg.PrimaryRPM = 15
	if got := cfg.Backends(); got[0].RPM != 15 || got[1].RPM != 0 {
		t.Errorf("expected rpm to follow its backend, got %+v", got)
	}

	cfg.PrimaryProvider = ""
	if got := cfg.Backends(); len(got) != 1 || got[0].Provider != ProviderOpenAI {
		t.Errorf("expected only the fallback, got %+v", got)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
		{ProviderGoogle, "GOOGLE_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		if got := APIKeyEnvVar(tt.provider); got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"refs/**/*.docx", []string{"refs/**/*.docx"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
