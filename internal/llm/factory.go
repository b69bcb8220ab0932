package llm

import (
	"context"
	"fmt"

	"physiq/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// retry and logging middleware. eventLog may be nil, in which case
// request logging is skipped.
func NewProvider(ctx context.Context, cfg Config, eventLog store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller → retry → logging → base, so every raw
	// attempt lands in the log.
	if eventLog != nil {
		base = WithLogging(base, cfg.Provider, eventLog)
	}
	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from PHYSIQ_* env vars, falling
// back to probing the standard provider API key variables.
func NewProviderFromEnv(ctx context.Context, eventLog store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventLog)
}
