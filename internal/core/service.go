package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SubjectDateLayout is the date format used in the briefing subject
const SubjectDateLayout = "Jan 02, 2006"

// NewsAgentService runs the fetch, summarize, format and deliver pipeline
type NewsAgentService struct {
	fetcher   FeedFetcher
	prompts   PromptBuilder
	llmClient LLMClient
	formatter ReportFormatter
	mailer    Mailer
	envelope  Envelope
	logger    *zap.Logger
	now       func() time.Time
}

// NewNewsAgentService creates a new news agent service
func NewNewsAgentService(
	fetcher FeedFetcher,
	prompts PromptBuilder,
	llmClient LLMClient,
	formatter ReportFormatter,
	mailer Mailer,
	envelope Envelope,
	logger *zap.Logger,
) *NewsAgentService {
	return &NewsAgentService{
		fetcher:   fetcher,
		prompts:   prompts,
		llmClient: llmClient,
		formatter: formatter,
		mailer:    mailer,
		envelope:  envelope,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for the subject date
func (s *NewsAgentService) WithClock(now func() time.Time) *NewsAgentService {
	s.now = now
	return s
}

// Subject returns the briefing subject for the given day
func (s *NewsAgentService) Subject(t time.Time) string {
	return fmt.Sprintf("%s - %s", s.envelope.SubjectPrefix, t.Format(SubjectDateLayout))
}

// Run executes one briefing. Summarization and formatting failures abort the
// run before anything is sent.
func (s *NewsAgentService) Run(ctx context.Context) error {
	s.logger.Info("Starting news briefing run")

	articles := s.fetcher.Fetch(ctx)
	s.logger.Info("Fetched articles", zap.Int("count", len(articles)))
	if len(articles) == 0 {
		s.logger.Warn("No articles fetched, the model will be asked to work with an empty list")
	}

	prompt, err := s.prompts.Build(articles)
	if err != nil {
		return fmt.Errorf("failed to build prompt: %w", err)
	}

	report, err := s.llmClient.Summarize(ctx, prompt)
	if err != nil {
		s.logger.Error("Summarization failed, no email will be sent", zap.Error(err))
		return fmt.Errorf("failed to summarize articles: %w", err)
	}
	s.logger.Info("Analysis done", zap.Int("report_length", len(report)))

	html, err := s.formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	email := &Email{
		From:    s.envelope.From,
		To:      []string{s.envelope.Recipient},
		Subject: s.Subject(s.now()),
		HTML:    html,
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		s.logger.Error("Failed to deliver briefing", zap.Error(err))
		return fmt.Errorf("failed to deliver briefing: %w", err)
	}

	s.logger.Info("Run complete", zap.String("subject", email.Subject))
	return nil
}
