package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-assistant/internal/apperr"
)

func finnhubServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "general" {
			t.Errorf("category = %q, want general", got)
		}
		if got := r.Header.Get("X-Finnhub-Token"); got != "key" {
			t.Errorf("token header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFinnHubTopHeadlines(t *testing.T) {
	srv := finnhubServer(t, http.StatusOK, `[
{"headline":"Rand firms","summary":"Currency up"},
{"headline":"Gold slips","summary":""},
{"headline":"Oil steady"},
{"headline":"Banks rally","summary":"<p>Lenders <b>gain</b> &amp; more</p>"},
{"headline":"Five"},
{"headline":"Six"}]`)

	f := NewFinnHubClient("key", "business", srv.URL, time.Second)
	digest, err := f.TopHeadlines(context.Background(), DigestSize)
	if err != nil {
		t.Fatalf("TopHeadlines() error = %v", err)
	}
	if len(digest) != DigestSize {
		t.Fatalf("len(digest) = %d, want %d", len(digest), DigestSize)
	}

	want := []struct{ title, desc string }{
		{"Rand firms", "Currency up"},
		{"Gold slips", "None"},
		{"Oil steady", "None"},
		{"Banks rally", "Lenders gain & more"},
		{"Five", "None"},
	}
	for i, w := range want {
		if digest[i].Title != w.title || digest[i].Description != w.desc {
			t.Errorf("digest[%d] = %+v, want %s: %s", i, digest[i], w.title, w.desc)
		}
	}
}

func TestFinnHubErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperr.Kind
	}{
		{"bad key", http.StatusUnauthorized, `{"error":"Invalid API key"}`, apperr.Auth},
		{"rate limited", http.StatusTooManyRequests, `{"error":"limit"}`, apperr.Network},
		{"not json", http.StatusOK, `<html>`, apperr.Malformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := finnhubServer(t, tt.status, tt.body)
			_, err := NewFinnHubClient("key", "", srv.URL, time.Second).TopHeadlines(context.Background(), DigestSize)
			if got := apperr.KindOf(err); got != tt.want {
				t.Errorf("kind = %q (err %v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestFinnHubUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFinnHubClient("key", "", url, time.Second).TopHeadlines(context.Background(), DigestSize)
	if got := apperr.KindOf(err); got != apperr.Network {
		t.Errorf("kind = %q, want NETWORK", got)
	}
}
