package interfaces

import "context"

// Completer is a text-generation backend for one agent call.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}
