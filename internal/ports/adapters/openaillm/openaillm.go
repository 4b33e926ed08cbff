// Package openaillm adapts the OpenAI chat completions API to the LLM
// port.
package openaillm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type Adapter struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

func New(apiKey, model, baseURL string, allowedHosts []string, log *zap.Logger) (*Adapter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if err := ValidateBaseURL(baseURL, allowedHosts); err != nil {
		return nil, err
	}
	if model == "" {
		model = openai.GPT4
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = normalizeBaseURL(baseURL)
	}
	return &Adapter{client: openai.NewClientWithConfig(cfg), model: model, log: log}, nil
}

func (a *Adapter) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		a.log.Error("chat completion failed", zap.String("model", a.model), zap.Error(err))
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
