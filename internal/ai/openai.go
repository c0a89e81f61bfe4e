package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

type OpenAI struct {
	key    string
	model  string
	client *http.Client
}

func NewOpenAI(key, model string) *OpenAI {
	return &OpenAI{
		key:   key,
		model: model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (o *OpenAI) Generate(ctx context.Context, r Request) (Response, error) {

	if o.key == "" {
		return Response{}, fmt.Errorf("openai api key not configured")
	}

	body := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": r.Prompt},
		},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshal openai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIEndpoint, bytes.NewReader(b))
	if err != nil {
		return Response{}, fmt.Errorf("build openai request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+o.key)
	req.Header.Set("Content-Type", "application/json")

	res, err := o.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return Response{}, fmt.Errorf("openai status %d: %s", res.StatusCode, string(msg))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode openai response: %w", err)
	}

	if len(out.Choices) == 0 {
		return Response{}, fmt.Errorf("empty openai response")
	}

	return Response{
		Content:  out.Choices[0].Message.Content,
		Provider: "openai",
		Model:    o.model,
		Usage: Usage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		},
	}, nil
}
