package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const writerSystemPrompt = `You are a long-form blog writer. Given a topic, web sources, and a
research brief, write a complete article as a JSON object with exactly these
keys: "title" (string), "content" (markdown string), "excerpt" (string,
1-2 sentences), and "citations" (array of objects with "title" and "url"
for every source actually referenced; may be empty). Respond with JSON only.`

// LLMWriter drafts the final article from the topic, sources, and research.
type LLMWriter struct {
	llm *LLMClient
}

func NewLLMWriter(llm *LLMClient) *LLMWriter {
	return &LLMWriter{llm: llm}
}

func (a *LLMWriter) Write(ctx context.Context, topic string, results []SearchResult, research *Research) (*Draft, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\nSources:\n", topic)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, r.Title, r.URL)
	}
	brief, err := json.Marshal(research)
	if err != nil {
		return nil, fmt.Errorf("writer agent: %w", err)
	}
	fmt.Fprintf(&b, "\nResearch brief:\n%s\n", brief)

	raw, err := a.llm.CompleteJSON(ctx, writerSystemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("writer agent: %w", err)
	}

	var out Draft
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("writer agent: invalid JSON output: %w", err)
	}
	if strings.TrimSpace(out.Title) == "" {
		return nil, errors.New("writer agent: output has no title")
	}
	if strings.TrimSpace(out.Content) == "" {
		return nil, errors.New("writer agent: output has no content")
	}
	return &out, nil
}
