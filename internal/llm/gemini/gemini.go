package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/types"

	"google.golang.org/genai"
)

const op = "llm.gemini"

type Completer struct {
	apiKey  string
	baseURL string
	timeout time.Duration
}

var _ interfaces.Completer = (*Completer)(nil)

func NewCompleter(apiKey, baseURL string, timeout time.Duration) *Completer {
	return &Completer{apiKey: apiKey, baseURL: baseURL, timeout: timeout}
}

func (c *Completer) newClient(ctx context.Context) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: c.timeout},
	}
	if c.baseURL != "" {
		cfg.HTTPOptions.BaseURL = c.baseURL
	}
	return genai.NewClient(ctx, cfg)
}

// Complete maps the request onto generateContent with the system prompt as system instruction
func (c *Completer) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Newf(apperr.Auth, op, "GEMINI_API_KEY missing")
	}

	client, err := c.newClient(ctx)
	if err != nil {
		return "", apperr.New(apperr.Auth, op, err)
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens:   int32(req.MaxTokens),
		CandidateCount:    1,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", apperr.New(apperr.FromStatus(apiErr.Code), op, err)
		}
		return "", apperr.New(apperr.Network, op, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", apperr.Newf(apperr.Malformed, op, "response has no text candidates")
	}
	return text, nil
}
