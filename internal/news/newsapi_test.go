package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-assistant/internal/apperr"
)

func newsAPIServer(t *testing.T, status int, payload interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/top-headlines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "business" {
			t.Errorf("category = %q, want business", got)
		}
		if got := r.URL.Query().Get("apiKey"); got != "key" {
			t.Errorf("apiKey = %q", got)
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewsAPITopHeadlines(t *testing.T) {
	articles := []map[string]interface{}{}
	for i := 1; i <= 7; i++ {
		articles = append(articles, map[string]interface{}{
			"title":       fmt.Sprintf("Headline %d", i),
			"description": fmt.Sprintf("Story %d", i),
			"url":         "https://example.com",
		})
	}
	articles[1]["description"] = nil
	articles[2]["description"] = "<p>Rand <b>firms</b> &amp; bonds rally</p>"

	srv := newsAPIServer(t, http.StatusOK, map[string]interface{}{"status": "ok", "articles": articles})
	n := NewNewsAPI(srv.URL, "key", "business", time.Second)

	digest, err := n.TopHeadlines(context.Background(), DigestSize)
	if err != nil {
		t.Fatalf("TopHeadlines() error = %v", err)
	}
	if len(digest) != 5 {
		t.Fatalf("expected 5 headlines, got %d", len(digest))
	}
	for i, item := range digest {
		if want := fmt.Sprintf("Headline %d", i+1); item.Title != want {
			t.Errorf("digest[%d].Title = %q, want %q", i, item.Title, want)
		}
	}
	if digest[1].Description != "None" {
		t.Errorf("null description should render as None, got %q", digest[1].Description)
	}
	if digest[2].Description != "Rand firms & bonds rally" {
		t.Errorf("markup not stripped: %q", digest[2].Description)
	}
}

func TestNewsAPIFewerThanLimit(t *testing.T) {
	srv := newsAPIServer(t, http.StatusOK, map[string]interface{}{
		"articles": []map[string]interface{}{{"title": "Only", "description": "one"}},
	})
	digest, err := NewNewsAPI(srv.URL, "key", "business", time.Second).TopHeadlines(context.Background(), DigestSize)
	if err != nil {
		t.Fatal(err)
	}
	if len(digest) != 1 || digest[0].Title != "Only" {
		t.Errorf("unexpected digest %+v", digest)
	}
}

func TestNewsAPIErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload interface{}
		want    apperr.Kind
	}{
		{"missing articles key", http.StatusOK, map[string]interface{}{"status": "ok"}, apperr.Malformed},
		{"articles not array", http.StatusOK, map[string]interface{}{"articles": "nope"}, apperr.Malformed},
		{"invalid key", http.StatusUnauthorized, map[string]interface{}{"status": "error", "code": "apiKeyInvalid"}, apperr.Auth},
		{"server error", http.StatusInternalServerError, map[string]interface{}{}, apperr.Network},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newsAPIServer(t, tt.status, tt.payload)
			_, err := NewNewsAPI(srv.URL, "key", "business", time.Second).TopHeadlines(context.Background(), DigestSize)
			if got := apperr.KindOf(err); got != tt.want {
				t.Errorf("kind = %q, want %q (err=%v)", got, tt.want, err)
			}
		})
	}
}

func TestNewsAPIMissingKey(t *testing.T) {
	_, err := NewNewsAPI("http://127.0.0.1:0", "", "business", time.Second).TopHeadlines(context.Background(), DigestSize)
	if apperr.KindOf(err) != apperr.Auth {
		t.Errorf("expected auth error, got %v", err)
	}
}
