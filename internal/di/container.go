package di

import (
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/news-agent/internal/adapters/feed"
	"github.com/mikey/news-agent/internal/config"
	"github.com/mikey/news-agent/internal/core"
	"github.com/mikey/news-agent/internal/factory"
	"github.com/mikey/news-agent/internal/format"
	"github.com/mikey/news-agent/internal/logging"
	"github.com/mikey/news-agent/internal/prompt"
	"github.com/mikey/news-agent/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer(flags *Flags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *Flags { return flags }); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(loadConfig); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFeedFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *factory.MailerFactory {
		return factory.NewMailerFactory(cfg, logger, os.Stdout)
	}); err != nil {
		return nil, err
	}

	// Register pipeline stages
	if err := container.Provide(func(f *factory.FeedFactory) (*feed.Aggregator, error) {
		return f.CreateAggregator()
	}, dig.As(new(core.FeedFetcher))); err != nil {
		return nil, err
	}
	if err := container.Provide(prompt.NewBuilder, dig.As(new(core.PromptBuilder))); err != nil {
		return nil, err
	}
	if err := container.Provide(format.NewHTMLFormatter, dig.As(new(core.ReportFormatter))); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register mailer and envelope
	if err := container.Provide(func(f *factory.MailerFactory) (core.Mailer, error) {
		return f.CreateMailer()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.MailerFactory) core.Envelope {
		return f.CreateEnvelope()
	}); err != nil {
		return nil, err
	}

	// Register news agent service
	if err := container.Provide(core.NewNewsAgentService); err != nil {
		return nil, err
	}

	return container, nil
}

// loadConfig reads the configuration and applies command line overrides
func loadConfig(flags *Flags) (*config.Config, error) {
	cfg, err := config.New(config.Options{
		ConfigFile: flags.ConfigFile,
		EnvFile:    flags.EnvFile,
	})
	if err != nil {
		return nil, err
	}

	if flags.Provider != "" {
		cfg.Set("llm.provider", flags.Provider)
	}
	if flags.DryRun {
		cfg.Set("delivery.provider", "preview")
	}
	if flags.Verbose {
		cfg.Set("logging.level", "debug")
	}
	if flags.JSONLog {
		cfg.Set("logging.format", "json")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
