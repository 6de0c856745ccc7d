package llmobs

import (
	"context"

	"bitcoin-analyst/internal/interfaces"
	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/trace"
)

// observableCompleter wraps a Completer with observability (logging & tracing)
type observableCompleter struct {
	completer interfaces.Completer
}

// Compile-time interface check
var _ interfaces.Completer = (*observableCompleter)(nil)

// Wrap wraps a completer with observability middleware
func Wrap(completer interfaces.Completer) interfaces.Completer {
	return &observableCompleter{
		completer: completer,
	}
}

// Complete generates text with observability
func (oc *observableCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"system_chars", len(system),
		"prompt_chars", len(prompt),
	)

	out, err := oc.completer.Complete(ctx, system, prompt)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"prompt_chars", len(prompt),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Completion received",
		"output_chars", len(out),
	)

	return out, nil
}
