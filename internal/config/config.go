package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/shaheeralics/scriptwriter/internal/llm"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".scriptwriter.yml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "SCRIPTWRITER_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SCRIPTWRITER_*). Nested keys use a double
// underscore: SCRIPTWRITER_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderGoogle:     true,
	ProviderOpenAI:     true,
	ProviderOpenRouter: true,
	ProviderAnthropic:  true,
	ProviderOllama:     true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.PrimaryProvider != "" && !validProviders[c.PrimaryProvider] {
		return fmt.Errorf("invalid primary_provider %q: must be one of google, openai, openrouter, anthropic, ollama", c.PrimaryProvider)
	}
	if c.FallbackProvider != "" && !validProviders[c.FallbackProvider] {
		return fmt.Errorf("invalid fallback_provider %q: must be one of google, openai, openrouter, anthropic, ollama", c.FallbackProvider)
	}
	if c.PrimaryRPM < 0 || c.FallbackRPM < 0 {
		return fmt.Errorf("primary_rpm and fallback_rpm must be non-negative")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxTopicLength <= 0 {
		return fmt.Errorf("max_topic_length must be positive")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be non-negative")
	}
	if c.MaxSessions < 0 || c.SessionTTLMinutes < 0 {
		return fmt.Errorf("max_sessions and session_ttl_minutes must be non-negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("server.request_timeout_seconds must be non-negative")
	}
	switch c.Export.PageSize {
	case PageLetter, PageA4:
	default:
		return fmt.Errorf("invalid export.page_size %q: must be Letter or A4", c.Export.PageSize)
	}
	return nil
}

// Backends returns the configured backend chain in order. Empty entries are
// skipped and a model left blank gets the provider default.
func (c *Config) Backends() []Backend {
	var out []Backend
	add := func(p ProviderType, model string, rpm int) {
		if p == "" {
			return
		}
		if model == "" {
			model = DefaultModel(p)
		}
		out = append(out, Backend{Provider: p, Model: model, RPM: rpm})
	}
	add(c.PrimaryProvider, c.PrimaryModel, c.PrimaryRPM)
	add(c.FallbackProvider, c.FallbackModel, c.FallbackRPM)
	return out
}

// SessionTTL returns how long an unused session lives, or 0 for ever.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// RequestTimeout returns the per-request timeout, or 0 for none.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// APIKeyEnvVar returns the environment variable holding the API key of the
// given provider, or "" for providers that need none.
func APIKeyEnvVar(provider ProviderType) string {
	if provider == ProviderOllama {
		return ""
	}
	return llm.KeyEnv[string(provider)]
}
