package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/types"
)

func TestComplete(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		System      []struct {
			Text string `json:"text"`
		} `json:"system"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "ck-test" {
			t.Errorf("missing api key header")
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
"content":[{"type":"text","text":" Hold a cash buffer. "}],"stop_reason":"end_turn",
"usage":{"input_tokens":10,"output_tokens":5}}`))
	}))
	defer srv.Close()

	c := NewCompleter("ck-test", srv.URL, time.Second)
	answer, err := c.Complete(context.Background(), types.CompletionRequest{
		Model: "claude-3-5-haiku-latest", System: "sys", User: "q", MaxTokens: 300, Temperature: 0.5,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if answer != "Hold a cash buffer." {
		t.Errorf("answer = %q", answer)
	}
	if got.MaxTokens != 300 || got.Temperature != 0.5 || len(got.System) != 1 || got.System[0].Text != "sys" {
		t.Errorf("payload = %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"type":"error","error":{"type":"permission_error","message":"denied"}}`))
	}))
	defer srv.Close()

	c := NewCompleter("ck-test", srv.URL, time.Second)
	if _, err := c.Complete(context.Background(), types.CompletionRequest{MaxTokens: 1}); apperr.KindOf(err) != apperr.Auth {
		t.Errorf("403 kind = %v, want Auth", apperr.KindOf(err))
	}

	if _, err := NewCompleter("", "", time.Second).Complete(context.Background(), types.CompletionRequest{}); apperr.KindOf(err) != apperr.Auth {
		t.Errorf("missing key kind = %v, want Auth", apperr.KindOf(err))
	}
}
