package config

import (
	"fmt"
	"time"
)

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// OpenAIConfig represents the configuration for an OpenAI-compatible chat completion endpoint
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
}

// DeliveryConfig represents the configuration for sending the briefing
type DeliveryConfig struct {
	Provider      string
	APIKey        string
	Endpoint      string
	From          string
	Recipient     string
	SubjectPrefix string
}

// SMTPConfig represents the configuration for SMTP delivery
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	StartTLS bool
}

// FeedsConfig represents the configuration for feed retrieval
type FeedsConfig struct {
	MaxItems      int
	SummaryLength int
	Timeout       time.Duration
	UserAgent     string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
	}
}

// GetDelivery returns the delivery configuration
func (c *Config) GetDelivery() DeliveryConfig {
	return DeliveryConfig{
		Provider:      c.GetString("delivery.provider"),
		APIKey:        c.GetString("delivery.api_key"),
		Endpoint:      c.GetString("delivery.endpoint"),
		From:          c.GetString("delivery.from"),
		Recipient:     c.GetString("delivery.recipient"),
		SubjectPrefix: c.GetString("delivery.subject_prefix"),
	}
}

// GetSMTP returns the SMTP configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Host:     c.GetString("smtp.host"),
		Port:     c.GetInt("smtp.port"),
		Username: c.GetString("smtp.username"),
		Password: c.GetString("smtp.password"),
		StartTLS: c.GetBool("smtp.starttls"),
	}
}

// GetFeeds returns the feed retrieval configuration
func (c *Config) GetFeeds() (FeedsConfig, error) {
	timeout, err := c.GetDuration("feeds.timeout")
	if err != nil {
		return FeedsConfig{}, fmt.Errorf("invalid feeds.timeout: %w", err)
	}

	return FeedsConfig{
		MaxItems:      c.GetInt("feeds.max_items"),
		SummaryLength: c.GetInt("feeds.summary_length"),
		Timeout:       timeout,
		UserAgent:     c.GetString("feeds.user_agent"),
	}, nil
}
