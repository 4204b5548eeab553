package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/mikey/news-agent/internal/core"
	"go.uber.org/zap"
)

// ConverseAPI is the part of the Bedrock runtime client used for summarization
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockClient is an implementation of the LLMClient interface using Amazon Bedrock
type BedrockClient struct {
	client      ConverseAPI
	modelID     string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	client ConverseAPI,
	modelID string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) *BedrockClient {
	return &BedrockClient{
		client:      client,
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Summarize sends the prompt through the Converse API, which accepts the same
// message shape for every model family
func (c *BedrockClient) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.modelID),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: prompt},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(c.maxTokens)),
			Temperature: aws.Float32(c.temperature),
		},
	})
	if err != nil {
		c.logger.Error("API Error", zap.Error(err))
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	text := outputText(resp)
	if text == "" {
		c.logger.Error("API Error",
			zap.String("model", c.modelID),
			zap.String("stop_reason", string(resp.StopReason)))
		return "", fmt.Errorf("bedrock model %s: %w", c.modelID, core.ErrNoCompletion)
	}

	return text, nil
}

func outputText(resp *bedrockruntime.ConverseOutput) string {
	if resp == nil {
		return ""
	}
	msg, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}

	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String()
}
