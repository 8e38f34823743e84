package social

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// MirrorProvider queries no-credential syndication mirrors of the social
// platform. Hosts form an inner waterfall: the first host that returns
// any items wins and the rest are never contacted.
type MirrorProvider struct {
	hosts   []string
	parser  *gofeed.Parser
	timeout time.Duration
}

// NewMirrorProvider creates a mirror provider over the given hosts,
// tried in order.
func NewMirrorProvider(hosts []string, timeout time.Duration) *MirrorProvider {
	if timeout <= 0 {
		timeout = provider.DefaultTimeout
	}
	return &MirrorProvider{
		hosts:   hosts,
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// Name returns the provider identifier
func (p *MirrorProvider) Name() string { return "mirror" }

// FetchPosts retrieves posts matching the keyword query from the first
// responsive mirror host.
func (p *MirrorProvider) FetchPosts(ctx context.Context, keywords []string, limit int) ([]provider.SocialPost, error) {
	query := url.QueryEscape(strings.Join(keywords, " "))

	var lastErr error
	for _, host := range p.hosts {
		posts, err := p.fetchHost(ctx, host, query, limit)
		if err != nil {
			slog.Debug("social mirror host failed", "host", host, "error", err)
			lastErr = err
			continue
		}
		if len(posts) > 0 {
			return posts, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all mirror hosts failed: %w", lastErr)
	}
	return nil, nil
}

func (p *MirrorProvider) fetchHost(ctx context.Context, host, query string, limit int) ([]provider.SocialPost, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	feedURL := fmt.Sprintf("%s/search/rss?f=tweets&q=%s", host, query)
	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]provider.SocialPost, 0, len(feed.Items))
	for _, item := range feed.Items {
		if limit > 0 && len(posts) >= limit {
			break
		}

		created := time.Now()
		if item.PublishedParsed != nil {
			created = *item.PublishedParsed
		}

		author := ""
		if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
			author = item.DublinCoreExt.Creator[0]
		}

		posts = append(posts, provider.SocialPost{
			ID:        item.GUID,
			Text:      strings.TrimSpace(item.Title),
			Author:    author,
			CreatedAt: created,
			Source:    p.Name(),
		})
	}

	return posts, nil
}
