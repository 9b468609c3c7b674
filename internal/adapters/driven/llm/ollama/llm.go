// Package ollama provides an LLM service adapter using Ollama.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/JamesKang003/leasewise/internal/core/domain"
	"github.com/JamesKang003/leasewise/internal/core/ports/driven"
	"github.com/JamesKang003/leasewise/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3"
	DefaultLLMTimeout = 120 * time.Second

	// retryDelay is the pause before the single connection-refused retry.
	retryDelay = 500 * time.Millisecond
)

// LLMConfig holds configuration for the Ollama LLM service.
type LLMConfig struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the LLM model to use (default: llama3).
	Model string

	// Timeout bounds every generation call (default: 120s).
	Timeout time.Duration
}

// LLMService provides LLM operations using Ollama. Every call is bounded
// by the configured timeout; a slow model surfaces as
// domain.ErrGenerationTimeout and is never retried, while a refused
// connection gets exactly one retry before domain.ErrModelUnavailable.
// "Model busy" and "model absent" are different failures.
type LLMService struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Format  string   `json:"format,omitempty"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters. Temperature is a pointer so an
// explicit zero (deterministic decoding for the structured tasks) still
// reaches the wire.
type options struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
	Options  *options      `json:"options,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// NewLLMService creates a new Ollama LLM service.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		// The timeout is applied per call via context so a deadline can be
		// told apart from other transport failures.
		client:  &http.Client{},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Generate produces text completion from a single prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	reqBody := generateRequest{
		Model:   s.model,
		Prompt:  prompt,
		Stream:  false,
		Format:  formatFor(opts),
		Options: requestOptions(opts),
	}

	var genResp generateResponse
	if err := s.post(ctx, "/api/generate", reqBody, &genResp); err != nil {
		return "", err
	}
	return genResp.Response, nil
}

// Chat conducts a conversation with explicit system/user roles.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.GenerateOptions) (string, error) {
	chatMessages := make([]chatMessage, len(messages))
	for i, msg := range messages {
		chatMessages[i] = chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	reqBody := chatRequest{
		Model:    s.model,
		Messages: chatMessages,
		Stream:   false,
		Format:   formatFor(opts),
		Options:  requestOptions(opts),
	}

	var chatResp chatResponse
	if err := s.post(ctx, "/api/chat", reqBody, &chatResp); err != nil {
		return "", err
	}
	return chatResp.Message.Content, nil
}

// post sends one request to the Ollama API with the bounded timeout and
// the connection-refused retry policy, decoding the response into out.
func (s *LLMService) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := s.doWithRetry(ctx, path, jsonBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("%w: status %d", domain.ErrModelUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", domain.ErrModelUnavailable, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doWithRetry executes the HTTP call under the generation timeout.
// Connection refused means the runtime may just be restarting, so one
// retry is allowed; timeouts are not retried.
func (s *LLMService) doWithRetry(ctx context.Context, path string, jsonBody []byte) (*http.Response, error) {
	resp, err := s.doOnce(ctx, path, jsonBody)
	if err == nil {
		return resp, nil
	}

	if errors.Is(err, syscall.ECONNREFUSED) && ctx.Err() == nil {
		logger.Warn("Ollama connection refused, retrying once")
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		resp, retryErr := s.doOnce(ctx, path, jsonBody)
		if retryErr == nil {
			return resp, nil
		}
		err = retryErr
	}

	return nil, s.classify(ctx, err)
}

// doOnce performs a single HTTP POST bounded by the generation timeout.
func (s *LLMService) doOnce(ctx context.Context, path string, jsonBody []byte) (*http.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}

	// Tie the timeout to the response body so decoding is bounded too.
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// classify maps transport errors onto the domain taxonomy.
func (s *LLMService) classify(ctx context.Context, err error) error {
	// A caller abandoning the request is not a model failure; the result
	// is simply discarded.
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w after %s: %v", domain.ErrGenerationTimeout, s.timeout, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w after %s: %v", domain.ErrGenerationTimeout, s.timeout, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
}

// cancelBody releases the per-call timeout context when the response body
// is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	b.cancel()
	return b.ReadCloser.Close()
}

// formatFor returns the Ollama format hint: constrained JSON decoding for
// the structured tasks, free text otherwise.
func formatFor(opts driven.GenerateOptions) string {
	if opts.JSONMode {
		return "json"
	}
	return ""
}

// requestOptions converts port options to the wire format. JSON mode pins
// the temperature so structured output is deterministic.
func requestOptions(opts driven.GenerateOptions) *options {
	temp := opts.Temperature
	pinned := opts.JSONMode || temp > 0
	if opts.JSONMode {
		temp = 0
	}

	if opts.MaxTokens == 0 && !pinned && len(opts.StopWords) == 0 {
		return nil
	}

	o := &options{
		NumPredict: opts.MaxTokens,
		Stop:       opts.StopWords,
	}
	if pinned {
		o.Temperature = &temp
	}
	return o
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: API returned status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
