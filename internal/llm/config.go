package llm

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend.
	// Values: "openai", "anthropic", "gemini", "openrouter", "mock"
	Provider string

	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Mock       MockConfig
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-2024-08-06"
	BaseURL string // Optional. Any OpenAI-compatible endpoint.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-sonnet"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "openai/gpt-4o-2024-08-06"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// MockConfig configures the "mock" provider used for local runs.
type MockConfig struct {
	// Fallback is returned for every call once the canned queue is empty.
	Fallback json.RawMessage
}

// DefaultConfig returns a Config pointing at OpenAI with no credentials.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-2024-08-06",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-2024-08-06",
		},
	}
}

// ConfigFromEnv builds a Config from PROBGEN_* variables layered over
// DiscoverConfig, so an unset PROBGEN_LLM_PROVIDER falls back to whichever
// vendor key is present.
func ConfigFromEnv() Config {
	cfg, _ := DiscoverConfig()

	overrides := []struct {
		env    string
		target *string
	}{
		{"PROBGEN_LLM_PROVIDER", &cfg.Provider},
		{"PROBGEN_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"PROBGEN_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"PROBGEN_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"PROBGEN_GEMINI_MODEL", &cfg.Gemini.Model},
		{"PROBGEN_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
	return cfg
}

// DiscoverConfig probes the API key variables in priority order
// (OpenAI → Anthropic → Gemini → OpenRouter) and returns a Config for the
// first vendor with a key. PROBGEN_<VENDOR>_API_KEY wins over the bare
// vendor variable. Keys for the other vendors are filled in as well so an
// explicit PROBGEN_LLM_PROVIDER can still pick them up.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	cfg.OpenAI.APIKey = apiKey("OPENAI")
	cfg.Anthropic.APIKey = apiKey("ANTHROPIC")
	cfg.Gemini.APIKey = apiKey("GEMINI")
	cfg.OpenRouter.APIKey = apiKey("OPENROUTER")

	switch {
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = "openai"
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = "anthropic"
	case cfg.Gemini.APIKey != "":
		cfg.Provider = "gemini"
	case cfg.OpenRouter.APIKey != "":
		cfg.Provider = "openrouter"
	default:
		return cfg, false
	}
	return cfg, true
}

// apiKey reads PROBGEN_<vendor>_API_KEY, falling back to <vendor>_API_KEY.
func apiKey(vendor string) string {
	if k := os.Getenv("PROBGEN_" + vendor + "_API_KEY"); k != "" {
		return k
	}
	return os.Getenv(vendor + "_API_KEY")
}

// keyEnv names the variables that can supply each provider's API key.
var keyEnv = map[string]string{
	"openai":     "OPENAI_API_KEY or PROBGEN_OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY or PROBGEN_ANTHROPIC_API_KEY",
	"gemini":     "GEMINI_API_KEY or PROBGEN_GEMINI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY or PROBGEN_OPENROUTER_API_KEY",
}

// Validate checks that the selected provider has its API key set. The mock
// provider needs none.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "openai":
		key = c.OpenAI.APIKey
	case "anthropic":
		key = c.Anthropic.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", keyEnv[c.Provider], c.Provider)
	}
	return nil
}
