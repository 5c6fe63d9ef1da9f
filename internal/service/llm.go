package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/domain"
)

// Completer is the opaque text-completion capability consumed by the responder
// and the SQL agent.
type Completer interface {
	Complete(ctx context.Context, turns []domain.Turn) (string, error)
}

// GroqCompleter talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqCompleter struct {
	client *openai.Client
	model  string
}

func NewGroqCompleter(apiKey, baseURL, model string) *GroqCompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: config.RequestTimeout}
	return &GroqCompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *GroqCompleter) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: t.Role, Content: t.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: config.ChatTemperature,
		MaxTokens:   config.ChatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
