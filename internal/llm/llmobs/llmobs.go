package llmobs

import (
	"context"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/trace"
	"finance-assistant/internal/types"
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

// Complete requests a completion with observability
func (oc *observableCompleter) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"flow", req.Flow,
		"model", req.Model,
		"max_tokens", req.MaxTokens,
		"temperature", req.Temperature,
	)

	answer, err := oc.completer.Complete(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"flow", req.Flow,
			"model", req.Model,
		)
		return "", err
	}

	logger.Completion(ctx, req.Flow, req.Model, len(req.System)+len(req.User), len(answer))

	return answer, nil
}
