package noop

import (
	"context"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"
)

// Notice is the answer returned when no LLM provider is configured
const Notice = "No language model is configured, so no answer is available. Set llm.provider to OPENAI, CLAUDE or GEMINI."

// NoopCompleter is a fallback completer used when no LLM (like OpenAI) is configured
type NoopCompleter struct{}

var _ interfaces.Completer = (*NoopCompleter)(nil)

func NewNoopCompleter() *NoopCompleter {
	return &NoopCompleter{}
}

// Complete implements the Completer interface. It always returns Notice.
func (c *NoopCompleter) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	logger.Debug(ctx, "Noop completer called - returns a fixed notice", "flow", req.Flow)
	return Notice, nil
}
