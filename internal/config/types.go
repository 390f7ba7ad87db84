package config

// ProviderType identifies a text-generation backend.
type ProviderType string

const (
	ProviderGoogle     ProviderType = "google"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOllama     ProviderType = "ollama"
)

// PageSize is a PDF page format.
type PageSize string

const (
	PageLetter PageSize = "Letter"
	PageA4     PageSize = "A4"
)

// Config is the top-level scriptwriter configuration, corresponding to .scriptwriter.yml.
type Config struct {
	PrimaryProvider  ProviderType `yaml:"primary_provider" koanf:"primary_provider"`
	PrimaryModel     string       `yaml:"primary_model" koanf:"primary_model"`
	FallbackProvider ProviderType `yaml:"fallback_provider" koanf:"fallback_provider"`
	FallbackModel    string       `yaml:"fallback_model" koanf:"fallback_model"`
	PrimaryRPM       int          `yaml:"primary_rpm,omitempty" koanf:"primary_rpm"`
	FallbackRPM      int          `yaml:"fallback_rpm,omitempty" koanf:"fallback_rpm"`
	SystemPrompt     string       `yaml:"system_prompt" koanf:"system_prompt"`
	MaxTokens        int          `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature      float64      `yaml:"temperature" koanf:"temperature"`

	TemplateFile   string   `yaml:"template_file" koanf:"template_file"`
	ReferenceFiles []string `yaml:"reference_files" koanf:"reference_files"`
	MaxTopicLength int      `yaml:"max_topic_length" koanf:"max_topic_length"`

	Server ServerConfig `yaml:"server" koanf:"server"`
	Export ExportConfig `yaml:"export" koanf:"export"`

	HistoryLimit      int `yaml:"history_limit" koanf:"history_limit"`
	MaxSessions       int `yaml:"max_sessions" koanf:"max_sessions"`
	SessionTTLMinutes int `yaml:"session_ttl_minutes" koanf:"session_ttl_minutes"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                  int  `yaml:"port" koanf:"port"`
	AllowAllOrigins       bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeoutSeconds int  `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	PageSize PageSize `yaml:"page_size" koanf:"page_size"`
	FontFile string   `yaml:"font_file" koanf:"font_file"`
}

// Backend names one entry of the ordered backend chain.
type Backend struct {
	Provider ProviderType
	Model    string
	// RPM caps requests per minute; 0 means unlimited.
	RPM int
}
