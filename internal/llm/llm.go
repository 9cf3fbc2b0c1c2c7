// Package llm selects the chat-completion provider.
package llm

import (
	"os"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/llm/claude"
	"finance-assistant/internal/llm/gemini"
	"finance-assistant/internal/llm/noop"
	"finance-assistant/internal/llm/openai"
	"finance-assistant/internal/store"
)

// New returns the completer named by llm.provider. Unknown providers get the noop completer.
func New(cfg *store.Config) interfaces.Completer {
	switch cfg.LLM.Provider {
	case "OPENAI":
		return openai.NewCompleter(os.Getenv("OPENAI_API_KEY"), cfg.LLM.BaseURL, cfg.LLM.Timeout)
	case "CLAUDE":
		return claude.NewCompleter(os.Getenv("CLAUDE_API_KEY"), cfg.LLM.BaseURL, cfg.LLM.Timeout)
	case "GEMINI":
		return gemini.NewCompleter(os.Getenv("GEMINI_API_KEY"), cfg.LLM.BaseURL, cfg.LLM.Timeout)
	default:
		return noop.NewNoopCompleter()
	}
}
