package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"career-backend/internal/bootstrap"
	"career-backend/internal/llm"
	"career-backend/internal/shared/config"
)

var (
	providerFlag string
	modelFlag    string
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "Operator tools for the career guidance API",
	Long:          "careerctl runs migrations and exercises the AI features from a terminal using the same configuration as the API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "LLM provider override (gemini|openai)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "LLM model override")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() config.Config {
	cfg := config.Load()
	if providerFlag != "" {
		cfg.LLMProvider = providerFlag
	}
	if modelFlag != "" {
		cfg.LLMModel = modelFlag
	}
	return cfg
}

// newLLM is replaced in tests.
var newLLM = func(ctx context.Context, cfg config.Config) (llm.Client, error) {
	return bootstrap.BuildLLM(ctx, cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
