package agents

import "context"

// SearchResult is one ranked web source returned by the search agent.
type SearchResult struct {
	URL            string  `json:"url"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
}

// OutlineSection is one planned section of the article.
type OutlineSection struct {
	Section string   `json:"section"`
	Points  []string `json:"points"`
}

// Research is the structured synthesis produced from the search results.
type Research struct {
	Insights  []string         `json:"insights"`
	KeyPoints []string         `json:"key_points"`
	Themes    []string         `json:"themes"`
	Outline   []OutlineSection `json:"outline"`
}

// DraftCitation is one source reference emitted by the writer.
type DraftCitation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Draft is the writer agent's final article payload.
type Draft struct {
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Excerpt   string          `json:"excerpt"`
	Citations []DraftCitation `json:"citations"`
}

// Each agent validates its own upstream response and returns a descriptive
// error on malformed output; callers never see a half-parsed result.

type SearchAgent interface {
	Search(ctx context.Context, topic string) ([]SearchResult, error)
}

type ResearchAgent interface {
	Research(ctx context.Context, topic string, results []SearchResult) (*Research, error)
}

type WriterAgent interface {
	Write(ctx context.Context, topic string, results []SearchResult, research *Research) (*Draft, error)
}
