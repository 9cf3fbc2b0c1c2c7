package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/types"
)

func TestComplete(t *testing.T) {
	var got struct {
		GenerationConfig struct {
			MaxOutputTokens int     `json:"maxOutputTokens"`
			Temperature     float64 `json:"temperature"`
			CandidateCount  int     `json:"candidateCount"`
		} `json:"generationConfig"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent") {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Rebalance yearly.\n"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	c := NewCompleter("gk-test", srv.URL, time.Second)
	answer, err := c.Complete(context.Background(), types.CompletionRequest{
		Model: "gemini-2.0-flash", System: "sys", User: "q", MaxTokens: 300, Temperature: 0.5,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if answer != "Rebalance yearly." {
		t.Errorf("answer = %q", answer)
	}
	if got.GenerationConfig.MaxOutputTokens != 300 || got.GenerationConfig.CandidateCount != 1 || got.GenerationConfig.Temperature != 0.5 {
		t.Errorf("generationConfig = %+v", got.GenerationConfig)
	}
}

func TestCompleteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	c := NewCompleter("gk-test", srv.URL, time.Second)
	if _, err := c.Complete(context.Background(), types.CompletionRequest{Model: "gemini-2.0-flash", MaxTokens: 1}); apperr.KindOf(err) != apperr.Input {
		t.Errorf("400 kind = %v, want Input", apperr.KindOf(err))
	}

	if _, err := NewCompleter("", "", time.Second).Complete(context.Background(), types.CompletionRequest{}); apperr.KindOf(err) != apperr.Auth {
		t.Errorf("missing key kind = %v, want Auth", apperr.KindOf(err))
	}
}
