package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/types"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const op = "llm.openai"

// Completer sends chat completions to the OpenAI API
type Completer struct {
	client sdk.Client
	apiKey string
}

var _ interfaces.Completer = (*Completer)(nil)

// NewCompleter creates an OpenAI completer. An empty baseURL means the public API.
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
	return &Completer{client: sdk.NewClient(opts...), apiKey: apiKey}
}

// Complete requests a single choice and returns its trimmed content
func (c *Completer) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Newf(apperr.Auth, op, "OPENAI_API_KEY missing")
	}

	resp, err := c.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(req.Model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(req.System),
			sdk.UserMessage(req.User),
		},
		MaxTokens:   sdk.Int(int64(req.MaxTokens)),
		Temperature: sdk.Float(req.Temperature),
		N:           sdk.Int(1),
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperr.Newf(apperr.Malformed, op, "no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func classify(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return apperr.New(apperr.FromStatus(apiErr.StatusCode), op, err)
	}
	return apperr.New(apperr.Network, op, err)
}
