// Package cli implements the leasewise command line interface.
package cli

import (
	"github.com/spf13/cobra"

	ollamaembed "github.com/JamesKang003/leasewise/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/JamesKang003/leasewise/internal/adapters/driven/llm/ollama"

	"github.com/JamesKang003/leasewise/internal/adapters/driven/config/file"
	"github.com/JamesKang003/leasewise/internal/adapters/driven/extract"
	"github.com/JamesKang003/leasewise/internal/adapters/driven/storage/memory"
	"github.com/JamesKang003/leasewise/internal/chunker"
	"github.com/JamesKang003/leasewise/internal/core/ports/driven"
	"github.com/JamesKang003/leasewise/internal/core/ports/driving"
	"github.com/JamesKang003/leasewise/internal/core/services"
	"github.com/JamesKang003/leasewise/internal/logger"
	"github.com/JamesKang003/leasewise/internal/prompt"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

// Services used by the commands. They are wired from configuration on
// first run; tests replace them directly.
var (
	analysisService driving.AnalysisService
	textExtractor   driven.TextExtractor
)

var (
	configPath  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "leasewise",
	Short: "Analyse residential leases with a local language model",
	Long: `LeaseWise runs a local retrieval pipeline over residential leases.

Upload a lease once, then ask questions about it, extract its key terms,
scan it for tenant-unfriendly clauses, or request a plain-language summary.
All analysis runs against a local Ollama instance; no lease text leaves
the machine.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.leasewise/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// initServices wires the analysis pipeline from configuration. It is a
// no-op when a service is already set, so tests can inject their own.
func initServices() error {
	if analysisService != nil {
		return nil
	}

	cfg, err := file.LoadConfig(configPath)
	if err != nil {
		return err
	}

	splitter, err := chunker.New(cfg.Chunking.ChunkSize, cfg.Chunking.Overlap)
	if err != nil {
		return err
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return err
	}

	embedder := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    cfg.Ollama.BaseURL,
		Model:      cfg.Ollama.EmbeddingModel,
		Dimensions: cfg.Ollama.EmbeddingDimensions,
	})

	llm := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.LLMModel,
		Timeout: cfg.GenerationTimeout(),
	})

	builder := prompt.New(
		prompt.WithMaxContextChars(cfg.Generation.MaxContextChars),
		prompt.WithPromptStore(promptStore),
	)

	analysisService = services.NewAnalysisService(
		memory.NewDocumentStore(),
		embedder,
		llm,
		splitter,
		builder,
		cfg.Retrieval.TopK,
	)
	textExtractor = extract.New()

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
