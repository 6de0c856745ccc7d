package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"bitcoin-analyst/internal/interfaces"
	"bitcoin-analyst/internal/llm/claude"
	"bitcoin-analyst/internal/llm/llmobs"
	"bitcoin-analyst/internal/llm/noop"
	"bitcoin-analyst/internal/llm/openai"
	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/store"
	"bitcoin-analyst/internal/trace"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// placeholder values people leave in .env files
var placeholderKeys = []string{
	"",
	"your_openai_api_key_here",
	"your_serper_api_key_here",
	"your_anthropic_key_here",
}

func isPlaceholder(value string) bool {
	for _, p := range placeholderKeys {
		if value == p {
			return true
		}
	}
	return false
}

// checkEnvironment verifies that the API keys the configured pipeline needs
// are present and not placeholders.
func checkEnvironment(cfg *store.Config) []string {
	var issues []string

	required := []string{"SERPER_API_KEY"}
	switch cfg.LLM.Provider {
	case "OPENAI":
		required = append(required, "OPENAI_API_KEY")
	case "CLAUDE":
		required = append(required, "ANTHROPIC_API_KEY")
	}

	var missing []string
	for _, key := range required {
		if isPlaceholder(strings.TrimSpace(os.Getenv(key))) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, fmt.Sprintf("missing API keys: %s", strings.Join(missing, ", ")))
	}

	return issues
}

// initializeCompleter initializes the LLM completer with observability
func initializeCompleter(ctx context.Context, cfg *store.Config) interfaces.Completer {
	var completer interfaces.Completer

	switch cfg.LLM.Provider {
	case "OPENAI":
		completer = openai.NewCompleter(cfg)
	case "CLAUDE":
		completer = claude.NewCompleter(cfg)
	default:
		completer = noop.NewCompleter()
		logger.Warn(ctx, "No LLM provider configured - using Noop completer")
	}

	// Wrap with observability middleware
	return llmobs.Wrap(completer)
}
