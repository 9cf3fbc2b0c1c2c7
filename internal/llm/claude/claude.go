package claude

import (
	"context"
	"errors"
	"strings"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/types"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const op = "llm.claude"

// Completer implements interfaces.Completer on the Anthropic Messages API
type Completer struct {
	client anthropic.Client
	apiKey string
}

var _ interfaces.Completer = (*Completer)(nil)

// NewCompleter creates a Claude completer. An empty baseURL means the public API;
// set it to point at a proxy.
func NewCompleter(apiKey, baseURL string, timeout time.Duration) *Completer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &Completer{client: anthropic.NewClient(opts...), apiKey: apiKey}
}

// Complete sends the system prompt and a single user turn, returning the text of the reply
func (c *Completer) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Newf(apperr.Auth, op, "CLAUDE_API_KEY missing")
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		Temperature: anthropic.Float(req.Temperature),
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", apperr.New(apperr.FromStatus(apiErr.StatusCode), op, err)
		}
		return "", apperr.New(apperr.Network, op, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", apperr.Newf(apperr.Malformed, op, "response has no text content")
	}

	return strings.TrimSpace(sb.String()), nil
}
