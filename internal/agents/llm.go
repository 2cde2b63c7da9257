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

// LLMClient talks to an OpenRouter-compatible chat completions endpoint.
// The research and writer agents share it; each agent owns its prompt and
// the validation of the structured output it expects back.
type LLMClient struct {
	BaseURL string
	APIKey  string
	Model   string
	SiteURL string
	AppName string
	Client  *http.Client
}

type llmMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponseFormat struct {
	Type string `json:"type"`
}

type llmChatReq struct {
	Model          string             `json:"model"`
	Messages       []llmMsg           `json:"messages"`
	ResponseFormat *llmResponseFormat `json:"response_format,omitempty"`
}

type llmChatResp struct {
	Choices []struct {
		Message llmMsg `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewLLMClient(baseURL, apiKey, model, siteURL, appName string) *LLMClient {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &LLMClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		SiteURL: siteURL,
		AppName: appName,
		Client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// CompleteJSON runs one chat completion and returns the assistant content as
// a raw JSON document, with any markdown code fence stripped.
func (c *LLMClient) CompleteJSON(ctx context.Context, system, user string) ([]byte, error) {
	if c.Client == nil {
		return nil, errors.New("llm: http client is nil")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("llm: api key is required")
	}
	model := strings.TrimSpace(c.Model)
	if model == "" {
		return nil, errors.New("llm: model is required")
	}

	reqBody := llmChatReq{
		Model: model,
		Messages: []llmMsg{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &llmResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(c.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.SiteURL != "" {
		req.Header.Set("HTTP-Referer", c.SiteURL)
	}
	if c.AppName != "" {
		req.Header.Set("X-Title", c.AppName)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, fmt.Errorf("llm: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded llmChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("llm: decode response: %w", err)
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return nil, errors.New(decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return nil, errors.New("llm: empty choices in response")
	}

	content := stripFence(decoded.Choices[0].Message.Content)
	if content == "" {
		return nil, errors.New("llm: empty completion content")
	}
	return []byte(content), nil
}

// stripFence removes a surrounding ```json ... ``` block some models emit
// even when asked for a bare JSON object.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
