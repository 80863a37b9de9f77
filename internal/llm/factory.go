package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/probgen/internal/store"
)

// builders maps each provider name to its constructor.
var builders = map[string]func(ctx context.Context, cfg Config) (Provider, error){
	"openai": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenAIProvider(cfg.OpenAI)
	},
	"anthropic": func(_ context.Context, cfg Config) (Provider, error) {
		return NewAnthropicProvider(cfg.Anthropic)
	},
	"gemini": func(ctx context.Context, cfg Config) (Provider, error) {
		return NewGeminiProvider(ctx, cfg.Gemini)
	},
	"openrouter": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenRouterProvider(cfg.OpenRouter)
	},
	"mock": func(_ context.Context, cfg Config) (Provider, error) {
		m := NewMockProvider()
		m.SetFallback(cfg.Mock.Fallback)
		return m, nil
	},
}

// NewProvider builds the provider named by cfg.Provider and wraps it so
// every call is logged and, when events is non-nil, audited.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger, events store.EventRepo) (Provider, error) {
	build, ok := builders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}

	p, err := build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithLogging(p, cfg.Provider, logger, events), nil
}
