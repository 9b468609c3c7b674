// Package file provides file-based configuration for leasewise: a typed
// TOML config and user-editable prompt template overrides, both living
// under ~/.leasewise by default.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// DefaultConfigDir is the directory under the user's home holding the
// config file and prompt overrides.
const DefaultConfigDir = ".leasewise"

// Config holds all tunable pipeline parameters. Everything has a usable
// default; the config file only needs the values being changed.
type Config struct {
	Chunking   ChunkingConfig   `toml:"chunking"`
	Retrieval  RetrievalConfig  `toml:"retrieval"`
	Generation GenerationConfig `toml:"generation"`
	Ollama     OllamaConfig     `toml:"ollama"`
}

// ChunkingConfig controls how documents are split for retrieval.
type ChunkingConfig struct {
	// ChunkSize is the chunk length in characters.
	ChunkSize int `toml:"chunk_size"`

	// Overlap is the shared span between consecutive chunks.
	Overlap int `toml:"overlap"`
}

// RetrievalConfig controls top-K retrieval.
type RetrievalConfig struct {
	// TopK is how many chunks ground a question answer.
	TopK int `toml:"top_k"`
}

// GenerationConfig controls LLM calls.
type GenerationConfig struct {
	// TimeoutSeconds bounds every generation call.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxContextChars clips full-document prompts.
	MaxContextChars int `toml:"max_context_chars"`
}

// OllamaConfig locates the local model runtime.
type OllamaConfig struct {
	BaseURL             string `toml:"base_url"`
	LLMModel            string `toml:"llm_model"`
	EmbeddingModel      string `toml:"embedding_model"`
	EmbeddingDimensions int    `toml:"embedding_dimensions"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Chunking:   ChunkingConfig{ChunkSize: 1200, Overlap: 200},
		Retrieval:  RetrievalConfig{TopK: 5},
		Generation: GenerationConfig{TimeoutSeconds: 120, MaxContextChars: 8000},
		Ollama: OllamaConfig{
			BaseURL:             "http://localhost:11434",
			LLMModel:            "llama3",
			EmbeddingModel:      "nomic-embed-text",
			EmbeddingDimensions: 768,
		},
	}
}

// LoadConfig reads the TOML config at path, filling unset values with
// defaults. An empty path means ~/.leasewise/config.toml; a missing file
// is not an error, it just yields the defaults. Bad parameter values fail
// with domain.ErrInvalidConfiguration since they are fatal at startup.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigDir, "config.toml")
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfiguration, path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the pipeline parameters.
func (c *Config) Validate() error {
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", domain.ErrInvalidConfiguration)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("%w: overlap must be in [0, chunk_size)", domain.ErrInvalidConfiguration)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidConfiguration)
	}
	if c.Generation.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout_seconds must be positive", domain.ErrInvalidConfiguration)
	}
	if c.Generation.MaxContextChars <= 0 {
		return fmt.Errorf("%w: max_context_chars must be positive", domain.ErrInvalidConfiguration)
	}
	return nil
}

// GenerationTimeout returns the generation timeout as a duration.
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.Generation.TimeoutSeconds) * time.Second
}
