package llm

import "context"

// Provider is the core abstraction for generative calls. The interview
// coach sends a single text prompt and receives free-form text back; JSON
// extraction and validation happen in the report layer, because the wire
// contract makes no guarantee about the reply shape.
type Provider interface {
	// Generate sends one prompt and returns the textual reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider's short name ("gemini", "openai", ...)
	// as recorded in the event log.
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single-turn generation call.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user-turn text.
	Prompt string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Response holds the model's output.
type Response struct {
	// Text is the raw generated text, fences and all.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
