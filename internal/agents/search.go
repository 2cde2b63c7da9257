package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TavilySearch queries a Tavily-compatible web search API and returns ranked
// sources for a topic.
type TavilySearch struct {
	BaseURL    string
	APIKey     string
	Depth      string
	MaxResults int
	Client     *http.Client
}

type tavilySearchReq struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilySearchResp struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
	Error string `json:"error,omitempty"`
}

func NewTavilySearch(baseURL, apiKey, depth string, maxResults int) *TavilySearch {
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	if depth == "" {
		depth = "advanced"
	}
	if maxResults <= 0 {
		maxResults = 8
	}
	return &TavilySearch{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Depth:      depth,
		MaxResults: maxResults,
		Client:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *TavilySearch) Search(ctx context.Context, topic string) ([]SearchResult, error) {
	if s.Client == nil {
		return nil, errors.New("search: http client is nil")
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, errors.New("search: api key is required")
	}

	b, err := json.Marshal(tavilySearchReq{
		APIKey:      s.APIKey,
		Query:       topic,
		SearchDepth: s.Depth,
		MaxResults:  s.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/search", strings.TrimRight(s.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, fmt.Errorf("search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded tavilySearchResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}
	if decoded.Error != "" {
		return nil, errors.New(decoded.Error)
	}
	if len(decoded.Results) == 0 {
		return nil, fmt.Errorf("search: no results for topic %q", topic)
	}

	out := make([]SearchResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.URL == "" {
			continue
		}
		out = append(out, SearchResult{
			URL:            r.URL,
			Title:          r.Title,
			Content:        r.Content,
			RelevanceScore: r.Score,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("search: no usable results for topic %q", topic)
	}
	return out, nil
}
