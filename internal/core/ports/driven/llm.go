package driven

import "context"

// LLMService is the local text-generation runtime. It is treated as an
// unreliable external dependency: every call is independently bounded by a
// timeout, and implementations must distinguish a slow model
// (domain.ErrGenerationTimeout) from an absent one
// (domain.ErrModelUnavailable).
//
// Implementations may include:
//   - Ollama (local models)
//   - LM Studio (local inference server)
type LLMService interface {
	// Generate produces text completion from a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a conversation with explicit system/user roles.
	Chat(ctx context.Context, messages []ChatMessage, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the runtime is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	// Structured tasks pin this to zero.
	Temperature float64

	// JSONMode requests constrained decoding: the runtime is asked to emit
	// syntactically valid JSON. Used for extraction and red-flag scans.
	JSONMode bool

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}
