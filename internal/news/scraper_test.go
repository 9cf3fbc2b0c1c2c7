package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-assistant/internal/apperr"
)

const headlinesPage = `<html><body>
<ul>
  <li class="story"><h2><a href="/a">Markets open higher</a></h2><p>JSE  gains early.</p></li>
  <li class="story"><h2><a href="/b"></a></h2><p>no title, skipped</p></li>
  <li class="story"><h2><a href="/c">Rand steadies</a></h2></li>
  <li class="story"><h2><a href="/d">Gold slips</a></h2><p>Bullion down.</p></li>
</ul>
</body></html>`

func TestScraperTopHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(headlinesPage))
	}))
	defer srv.Close()

	s := NewScraper(NewsSource{
		URL: srv.URL + "/business",
		Selectors: ArticleSelectors{
			ArticleContainer: "li.story",
			Title:            "h2 a",
			Description:      "p",
		},
	}, time.Second)

	digest, err := s.TopHeadlines(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopHeadlines() error = %v", err)
	}
	if len(digest) != 2 {
		t.Fatalf("expected 2 headlines, got %d: %+v", len(digest), digest)
	}
	if digest[0].Title != "Markets open higher" || digest[0].Description != "JSE gains early." {
		t.Errorf("unexpected first item %+v", digest[0])
	}
	if digest[1].Title != "Rand steadies" || digest[1].Description != "None" {
		t.Errorf("unexpected second item %+v", digest[1])
	}
	if s.Name() != "127.0.0.1" {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestScraperHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewScraper(NewsSource{URL: srv.URL, Selectors: ArticleSelectors{ArticleContainer: "li", Title: "a"}}, time.Second)
	_, err := s.TopHeadlines(context.Background(), DigestSize)
	if apperr.KindOf(err) != apperr.Auth {
		t.Errorf("expected auth error for 403, got %v", err)
	}
}

func TestScraperHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.Write([]byte(headlinesPage))
	}))
	defer srv.Close()

	s := NewScraper(NewsSource{URL: srv.URL, Selectors: ArticleSelectors{ArticleContainer: "li.story", Title: "h2 a"}}, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.TopHeadlines(ctx, DigestSize)
	if apperr.KindOf(err) != apperr.Network {
		t.Errorf("expected network error after deadline, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("TopHeadlines() took %v, want it to stop at the deadline", elapsed)
	}
}
