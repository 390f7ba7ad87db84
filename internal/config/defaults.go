package config

// DefaultSystemPrompt frames every backend request.
const DefaultSystemPrompt = "You are an expert YouTube script writer who creates engaging, well-structured content that drives views and engagement."

// defaultModels is the model chosen for a provider when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderGoogle:     "gemini-2.0-flash",
	ProviderOpenAI:     "gpt-3.5-turbo",
	ProviderOpenRouter: "openai/gpt-3.5-turbo",
	ProviderAnthropic:  "claude-3-5-haiku-latest",
	ProviderOllama:     "llama3",
}

// DefaultModel returns the default model for the given provider, or "" if the
// provider is unknown.
func DefaultModel(p ProviderType) string {
	return defaultModels[p]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PrimaryProvider:   ProviderGoogle,
		PrimaryModel:      defaultModels[ProviderGoogle],
		FallbackProvider:  ProviderOpenAI,
		FallbackModel:     defaultModels[ProviderOpenAI],
		SystemPrompt:      DefaultSystemPrompt,
		MaxTokens:         2000,
		Temperature:       0.7,
		MaxTopicLength:    200,
		HistoryLimit:      20,
		MaxSessions:       1000,
		SessionTTLMinutes: 24 * 60,
		Server: ServerConfig{
			Port:                  8080,
			AllowAllOrigins:       true,
			RequestTimeoutSeconds: 120,
		},
		Export: ExportConfig{
			PageSize: PageLetter,
		},
	}
}
