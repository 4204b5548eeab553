package core

import (
	"context"
	"errors"
)

// ErrNoCompletion is returned when the model response carries no generated text
var ErrNoCompletion = errors.New("no completion in model response")

// FeedFetcher collects articles from the configured feed sources
type FeedFetcher interface {
	// Fetch returns the articles of every source that could be read.
	// Sources that fail are logged and skipped.
	Fetch(ctx context.Context) []Article
}

// PromptBuilder turns articles into the model instruction
type PromptBuilder interface {
	Build(articles []Article) (string, error)
}

// LLMClient defines the interface for interacting with LLM services
type LLMClient interface {
	// Summarize sends the prompt and returns the generated report text
	Summarize(ctx context.Context, prompt string) (string, error)
}

// ReportFormatter renders the plain-text report as an HTML document
type ReportFormatter interface {
	Format(report string) (string, error)
}

// Mailer delivers a briefing email.
// A rejected delivery is logged by the implementation and is not an error;
// only failures to reach the provider are returned.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}
