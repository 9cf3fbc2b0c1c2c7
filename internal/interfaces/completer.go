package interfaces

import (
	"context"

	"finance-assistant/internal/types"
)

// Completer sends one system+user message pair and returns the first choice's text
type Completer interface {
	Complete(ctx context.Context, req types.CompletionRequest) (string, error)
}
