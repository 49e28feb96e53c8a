package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrEmptyHistory = errors.New("ai: empty message history")
	ErrEmptyReply   = errors.New("ai: empty choices")
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIClient builds the client. baseURL is optional and points it at any
// OpenAI-compatible endpoint.
func NewOpenAIClient(apiKey, model, baseURL string, log zerolog.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log.With().Str("component", "ai").Logger(),
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, history []Message) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Text,
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: Temperature,
	})
	if err != nil {
		c.log.Error().Err(err).Str("model", c.model).Msg("chat completion failed")
		return "", fmt.Errorf("ai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log.Error().Str("model", c.model).Msg("empty choices")
		return "", ErrEmptyReply
	}

	raw := resp.Choices[0].Message.Content

	c.log.Debug().
		Str("model", c.model).
		Int("messages", len(msgs)).
		Dur("elapsed", time.Since(start)).
		Str("raw", short(raw)).
		Msg("chat completion")

	return strings.TrimSpace(raw), nil
}

func short(s string) string {
	if len(s) > 180 {
		return s[:180] + "..."
	}
	return s
}
