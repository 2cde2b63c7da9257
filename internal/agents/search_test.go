package agents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTavilySearch_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"title": "First", "url": "https://one.example.com", "content": "aaa", "score": 0.91},
				{"title": "Second", "url": "https://two.example.com", "content": "bbb", "score": 0.72}
			]
		}`))
	}))
	defer srv.Close()

	s := NewTavilySearch(srv.URL, "test-key", "", 0)
	results, err := s.Search(context.Background(), "go testing")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].URL != "https://one.example.com" || results[0].RelevanceScore != 0.91 {
		t.Fatalf("first result wrong: %+v", results[0])
	}
	if results[1].Title != "Second" {
		t.Fatalf("order not preserved: %+v", results[1])
	}
}

func TestTavilySearch_NoResultsIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	s := NewTavilySearch(srv.URL, "test-key", "", 0)
	if _, err := s.Search(context.Background(), "obscure"); err == nil {
		t.Fatalf("expected error on empty result set")
	}
}

func TestTavilySearch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`))
	}))
	defer srv.Close()

	s := NewTavilySearch(srv.URL, "test-key", "", 0)
	_, err := s.Search(context.Background(), "anything")
	if err == nil {
		t.Fatalf("expected error on 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error should carry status: %v", err)
	}
}

func TestTavilySearch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	s := NewTavilySearch(srv.URL, "test-key", "", 0)
	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTavilySearch_RequiresAPIKey(t *testing.T) {
	s := NewTavilySearch("http://unused", "", "", 0)
	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error without api key")
	}
}
