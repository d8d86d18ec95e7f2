package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with the
// logging middleware. There is deliberately no retry wrapper: each report
// call gets exactly one attempt, and a failure degrades to a "no report"
// screen instead of blocking the session on backoff sleeps.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
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
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, sink), nil
}

// NewProviderFromEnv builds a provider from ORATIO_* env config, falling
// back to DiscoverConfig probing of standard key variables.
func NewProviderFromEnv(ctx context.Context, sink EventSink) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, sink)
}
