package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

var providerItems = []string{"google", "openai", "openrouter", "anthropic", "ollama"}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to scriptwriter! Let's configure your backends.")
	fmt.Println()

	cfg := DefaultConfig()

	primary, err := selectProvider("Select primary backend", providerItems)
	if err != nil {
		return nil, fmt.Errorf("primary backend: %w", err)
	}
	cfg.PrimaryProvider = primary
	if cfg.PrimaryModel, err = promptModel(primary); err != nil {
		return nil, err
	}

	fallback, err := selectProvider("Select fallback backend", append([]string{"none"}, providerItems...))
	if err != nil {
		return nil, fmt.Errorf("fallback backend: %w", err)
	}
	cfg.FallbackProvider, cfg.FallbackModel = "", ""
	if fallback != "none" {
		cfg.FallbackProvider = fallback
		if cfg.FallbackModel, err = promptModel(fallback); err != nil {
			return nil, err
		}
	}

	templatePrompt := promptui.Prompt{
		Label:   "Prompt template file (blank for the built-in template)",
		Default: "",
	}
	if cfg.TemplateFile, err = templatePrompt.Run(); err != nil {
		return nil, fmt.Errorf("template file: %w", err)
	}

	refPrompt := promptui.Prompt{
		Label:   "Reference script globs (comma-separated, blank for none)",
		Default: "",
	}
	refs, err := refPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("reference files: %w", err)
	}
	cfg.ReferenceFiles = splitAndTrim(refs)

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	for _, b := range cfg.Backends() {
		if envVar := APIKeyEnvVar(b.Provider); envVar != "" && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment or .env file to enable %s.\n", envVar, b.Provider)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func selectProvider(label string, items []string) (ProviderType, error) {
	sel := promptui.Select{Label: label, Items: items}
	_, choice, err := sel.Run()
	if err != nil {
		return "", err
	}
	return ProviderType(choice), nil
}

func promptModel(p ProviderType) (string, error) {
	prompt := promptui.Prompt{
		Label:   fmt.Sprintf("Model for %s", p),
		Default: DefaultModel(p),
	}
	model, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("model for %s: %w", p, err)
	}
	return strings.TrimSpace(model), nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
