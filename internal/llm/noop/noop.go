package noop

import (
	"context"

	"bitcoin-analyst/internal/logger"
)

// Completer is a fallback used when no LLM provider is configured. It lets
// the pipeline run end to end offline.
type Completer struct{}

func NewCompleter() *Completer {
	return &Completer{}
}

func (c *Completer) Complete(ctx context.Context, system, prompt string) (string, error) {
	logger.Debug(ctx, "Noop completer called - returning placeholder output")
	return "No language model configured. Set llm.provider to OPENAI or CLAUDE in config.yaml.", nil
}
