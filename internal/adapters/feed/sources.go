package feed

import "github.com/mikey/news-agent/internal/core"

// DefaultSources is the fixed list of market, business, tech and crypto feeds
// read on every run, in the order their articles are presented to the model.
var DefaultSources = []core.FeedSource{
	{URL: "https://feeds.a.dj.com/rss/RSSMarketsMain.xml", Name: "WSJ Markets"},
	{URL: "https://feeds.a.dj.com/rss/WSJcomUSBusiness.xml", Name: "WSJ Business"},
	{URL: "https://www.reuters.com/finance", Name: "Reuters Finance"},
	{URL: "https://techcrunch.com/feed/", Name: "TechCrunch"},
	{URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Name: "CNBC"},
	{URL: "https://www.cnbc.com/id/10001147/device/rss/rss.html", Name: "CNBC Business"},
	{URL: "https://cointelegraph.com/rss", Name: "Cointelegraph"},
	{URL: "https://www.bloomberg.com/feed/podcast/etf-report.xml", Name: "Bloomberg"},
}
