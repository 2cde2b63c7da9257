package agents

import (
	"context"
	"testing"
)

var testSearchResults = []SearchResult{
	{URL: "https://one.example.com", Title: "One", Content: "aaa", RelevanceScore: 0.9},
}

func TestLLMResearch_ValidOutput(t *testing.T) {
	srv := llmServer(t, `{
		"insights": ["i1", "i2"],
		"key_points": ["k1"],
		"themes": ["t1"],
		"outline": [{"section": "Intro", "points": ["p1", "p2"]}]
	}`)
	defer srv.Close()

	a := NewLLMResearch(NewLLMClient(srv.URL, "key", "model", "", ""))
	out, err := a.Research(context.Background(), "topic", testSearchResults)
	if err != nil {
		t.Fatalf("research: %v", err)
	}
	if len(out.Insights) != 2 || len(out.Outline) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.Outline[0].Section != "Intro" || len(out.Outline[0].Points) != 2 {
		t.Fatalf("outline not parsed: %+v", out.Outline)
	}
}

func TestLLMResearch_RejectsMissingInsights(t *testing.T) {
	srv := llmServer(t, `{"insights": [], "key_points": [], "themes": [], "outline": [{"section": "s", "points": []}]}`)
	defer srv.Close()

	a := NewLLMResearch(NewLLMClient(srv.URL, "key", "model", "", ""))
	if _, err := a.Research(context.Background(), "topic", testSearchResults); err == nil {
		t.Fatalf("expected validation error for empty insights")
	}
}

func TestLLMResearch_RejectsMissingOutline(t *testing.T) {
	srv := llmServer(t, `{"insights": ["i"], "key_points": [], "themes": [], "outline": []}`)
	defer srv.Close()

	a := NewLLMResearch(NewLLMClient(srv.URL, "key", "model", "", ""))
	if _, err := a.Research(context.Background(), "topic", testSearchResults); err == nil {
		t.Fatalf("expected validation error for empty outline")
	}
}

func TestLLMResearch_RejectsNonJSON(t *testing.T) {
	srv := llmServer(t, `here are my thoughts in prose`)
	defer srv.Close()

	a := NewLLMResearch(NewLLMClient(srv.URL, "key", "model", "", ""))
	if _, err := a.Research(context.Background(), "topic", testSearchResults); err == nil {
		t.Fatalf("expected error for non-JSON output")
	}
}
