package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/news-agent/internal/core"
)

// Divider separates stories in the model output
const Divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

const instructions = `You are a financial analyst. From these %d news articles, select the top 7-10 that will MOST LIKELY move stock prices today.

STRICT RULES:
- ONLY publicly traded US companies with REAL ticker symbols (verify they exist)
- Focus on material events: earnings surprises, M&A, FDA approvals, major contracts, regulatory fines
- SKIP: private companies (Figure, ByteDance), opinion pieces, minor updates, political news without clear stock impact
- Extract specific numbers from summaries when available
- If a story affects MULTIPLE stocks, list ALL of them with their individual directions
- Use 📈 for Bullish and 📉 for Bearish

Articles: %s

Format (number each story, add blank line after each field):

1. [Title] ([Source])

Summary: [Key details from summary - include numbers if available]

Market Impact: [Specific reason why this moves stock prices]

Stocks: [TICKER1] 📈 Bullish, [TICKER2] 📉 Bearish - [Sector]

Link: [url]

%s

`

// Builder renders the stock-impact selection prompt
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Build embeds the articles, in order, as indented JSON into the instructions
func (b *Builder) Build(articles []core.Article) (string, error) {
	serialized, err := serialize(articles)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(instructions, len(articles), serialized, Divider), nil
}

func serialize(articles []core.Article) (string, error) {
	if articles == nil {
		articles = []core.Article{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		return "", fmt.Errorf("failed to serialize articles: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
