package llm

import (
	"fmt"
	"os"
)

// KeyEnv maps each provider type to the environment variable holding its
// credential. Ollama's entry is the host, which has a default.
var KeyEnv = map[string]string{
	"google":     "GOOGLE_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"ollama":     "OLLAMA_HOST",
}

// NewProvider creates a new LLM provider based on the given provider type and model.
// Supported provider types: "google", "openai", "openrouter", "anthropic", "ollama".
// Credentials are read from the variable KeyEnv names for the type.
func NewProvider(providerType string, model string, opts ...Option) (Provider, error) {
	envVar, ok := KeyEnv[providerType]
	if !ok {
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}

	if providerType == "ollama" {
		host := os.Getenv(envVar)
		if host == "" {
			host = defaultOllamaHost
		}
		return NewOllamaProvider(host, model, opts...), nil
	}

	apiKey, err := requireEnv(envVar)
	if err != nil {
		return nil, err
	}
	switch providerType {
	case "google":
		return NewGoogleProvider(apiKey, model, opts...), nil
	case "openai":
		return NewOpenAIProvider(apiKey, model, opts...), nil
	case "openrouter":
		return NewOpenRouterProvider(apiKey, model, opts...), nil
	default:
		return NewAnthropicProvider(apiKey, model, opts...), nil
	}
}

func requireEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("%s environment variable is not set", name)
	}
	return v, nil
}
