package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mikey/news-agent/internal/config"
	"github.com/mikey/news-agent/internal/core"
	"github.com/mikey/news-agent/internal/utils"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// Aggregator reads every configured feed and flattens the entries into articles
type Aggregator struct {
	parser        *gofeed.Parser
	sources       []core.FeedSource
	maxItems      int
	summaryLength int
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
}

// fetchResult is the outcome of reading a single source
type fetchResult struct {
	Source   core.FeedSource
	Articles []core.Article
	Err      error
}

// NewAggregator creates a new feed aggregator
func NewAggregator(
	sources []core.FeedSource,
	cfg config.FeedsConfig,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
) *Aggregator {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.Timeout}
	parser.UserAgent = cfg.UserAgent

	return &Aggregator{
		parser:        parser,
		sources:       sources,
		maxItems:      cfg.MaxItems,
		summaryLength: cfg.SummaryLength,
		textProcessor: textProcessor,
		logger:        logger,
	}
}

// Fetch reads the sources one after another. A source that cannot be fetched
// or parsed is logged and contributes no articles.
func (a *Aggregator) Fetch(ctx context.Context) []core.Article {
	results := make([]fetchResult, 0, len(a.sources))
	for _, source := range a.sources {
		results = append(results, a.fetchSource(ctx, source))
	}

	var articles []core.Article
	for _, result := range results {
		if result.Err != nil {
			a.logger.Error("Failed to fetch feed",
				zap.String("source", result.Source.Name),
				zap.String("url", result.Source.URL),
				zap.Error(result.Err))
			continue
		}
		a.logger.Debug("Fetched feed",
			zap.String("source", result.Source.Name),
			zap.Int("articles", len(result.Articles)))
		articles = append(articles, result.Articles...)
	}

	return articles
}

func (a *Aggregator) fetchSource(ctx context.Context, source core.FeedSource) fetchResult {
	parsed, err := a.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return fetchResult{Source: source, Err: fmt.Errorf("failed to read feed: %w", err)}
	}

	items := parsed.Items
	if a.maxItems > 0 && len(items) > a.maxItems {
		items = items[:a.maxItems]
	}

	articles := make([]core.Article, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		articles = append(articles, a.toArticle(source, item))
	}

	return fetchResult{Source: source, Articles: articles}
}

func (a *Aggregator) toArticle(source core.FeedSource, item *gofeed.Item) core.Article {
	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	return core.Article{
		Title:   item.Title,
		Link:    item.Link,
		Source:  source.Name,
		Summary: a.textProcessor.ProcessText(summary, a.summaryLength),
	}
}
