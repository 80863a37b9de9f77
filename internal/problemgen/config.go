package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Zero leaves it
	// to the provider.
	MaxTokens int

	// Temperature controls LLM output randomness. Zero leaves it to the
	// provider.
	Temperature float64
}

// DefaultConfig returns the recommended generator settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens: 4096,
	}
}
