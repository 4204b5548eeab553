package factory

import (
	"github.com/mikey/news-agent/internal/adapters/feed"
	"github.com/mikey/news-agent/internal/config"
	"github.com/mikey/news-agent/internal/utils"
	"go.uber.org/zap"
)

// FeedFactory creates the feed aggregator
type FeedFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFeedFactory creates a new feed factory
func NewFeedFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *FeedFactory {
	return &FeedFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateAggregator creates an aggregator over the default sources
func (f *FeedFactory) CreateAggregator() (*feed.Aggregator, error) {
	feedsCfg, err := f.cfg.GetFeeds()
	if err != nil {
		return nil, err
	}
	return feed.NewAggregator(feed.DefaultSources, feedsCfg, f.textProcessor, f.logger), nil
}
