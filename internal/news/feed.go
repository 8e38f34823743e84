package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// FeedProvider queries a public news syndication feed. It needs no
// credential and is only ever best-effort: the aggregator swallows any
// failure from it.
type FeedProvider struct {
	baseURL string
	parser  *gofeed.Parser
	timeout time.Duration
}

// NewFeedProvider creates a syndication feed provider
func NewFeedProvider(baseURL string, timeout time.Duration) *FeedProvider {
	if timeout <= 0 {
		timeout = provider.DefaultTimeout
	}
	return &FeedProvider{
		baseURL: baseURL,
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// Name returns the provider identifier
func (p *FeedProvider) Name() string { return "feed" }

// FetchNews retrieves feed items matching the keyword query
func (p *FeedProvider) FetchNews(ctx context.Context, keywords []string, limit int) ([]provider.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	query := url.QueryEscape(strings.Join(keywords, " "))
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en", p.baseURL, query)

	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching news feed: %w", err)
	}

	articles := make([]provider.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if limit > 0 && len(articles) >= limit {
			break
		}

		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		source := p.Name()
		// Feed items carry the originating outlet as the item source
		if item.Custom != nil && item.Custom["source"] != "" {
			source = item.Custom["source"]
		}

		articles = append(articles, provider.Article{
			Title:       item.Title,
			URL:         item.Link,
			Source:      source,
			PublishedAt: published,
			Snippet:     stripHTML(item.Description),
		})
	}

	return articles, nil
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
