package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const researchSystemPrompt = `You are a research analyst. Given a topic and web search results,
synthesize the material into a JSON object with exactly these keys:
"insights" (array of strings), "key_points" (array of strings),
"themes" (array of strings), and "outline" (array of objects with
"section" string and "points" array of strings). Respond with JSON only.`

// LLMResearch synthesizes structured research from search results.
type LLMResearch struct {
	llm *LLMClient
}

func NewLLMResearch(llm *LLMClient) *LLMResearch {
	return &LLMResearch{llm: llm}
}

func (a *LLMResearch) Research(ctx context.Context, topic string, results []SearchResult) (*Research, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\nSearch results:\n", topic)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s (%s)\n%s\n\n", i+1, r.Title, r.URL, r.Content)
	}

	raw, err := a.llm.CompleteJSON(ctx, researchSystemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("research agent: %w", err)
	}

	var out Research
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("research agent: invalid JSON output: %w", err)
	}
	if len(out.Insights) == 0 {
		return nil, errors.New("research agent: output has no insights")
	}
	if len(out.Outline) == 0 {
		return nil, errors.New("research agent: output has no outline")
	}
	return &out, nil
}
