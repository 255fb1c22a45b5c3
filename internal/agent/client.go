package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Client is the single LLM entry point the steps call. A step sends one
// system prompt and one user prompt and gets the raw model reply back.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration // HTTP request timeout per attempt
	Retries     uint64        // retries on top of the first attempt
}

// ChatClient wraps an OpenAI chat model with retry and timeout handling.
type ChatClient struct {
	model   model.BaseChatModel
	retries uint64
}

func NewChatClient(cfg Config) (*ChatClient, error) {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Retries == 0 {
		cfg.Retries = 2
	}

	cm, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	return &ChatClient{model: cm, retries: cfg.Retries}, nil
}

func (c *ChatClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(prompt),
	}

	var out string
	operation := func() error {
		resp, err := c.model.Generate(ctx, messages)
		if err != nil {
			return err
		}
		if resp == nil || strings.TrimSpace(resp.Content) == "" {
			return fmt.Errorf("model returned an empty reply")
		}
		out = resp.Content
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries)
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	return out, nil
}
