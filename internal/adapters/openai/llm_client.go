package openai

import (
	"context"
	"fmt"

	"github.com/mikey/news-agent/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the LLMClient interface for
// OpenAI-compatible chat completion endpoints (Groq by default)
type OpenAIClient struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) *OpenAIClient {
	return &OpenAIClient{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Summarize sends the prompt as a single user message and returns the first choice
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	c.logger.Debug("Requesting chat completion",
		zap.String("model", c.modelName),
		zap.Int("prompt_size", len(prompt)))

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("API Error", zap.Error(err))
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	// a choice without message content is treated like no choice at all
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Error("API Error", zap.Any("response", resp))
		return "", fmt.Errorf("chat completion %q: %w", resp.ID, core.ErrNoCompletion)
	}

	c.logger.Debug("Chat completion received",
		zap.String("id", resp.ID),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content, nil
}
