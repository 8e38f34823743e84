// Package news aggregates articles from a best-effort syndication feed
// and a parallel fan-out over credentialed providers. Coverage is only
// valuable merged across sources, so unlike the financial waterfall every
// configured provider is queried and awaited before dedup and sort.
package news

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/omondistanley/keep-notes-app-sub000/internal/cache"
	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// Aggregator merges article sets from all configured news providers
// behind a long-TTL cache.
type Aggregator struct {
	feed      provider.NewsProvider
	providers []provider.NewsProvider
	store     *cache.Store[[]provider.Article]
}

// NewAggregator creates an Aggregator. feed may be nil; providers are
// fanned out in parallel.
func NewAggregator(feed provider.NewsProvider, providers []provider.NewsProvider, store *cache.Store[[]provider.Article]) *Aggregator {
	return &Aggregator{
		feed:      feed,
		providers: providers,
		store:     store,
	}
}

// FetchRealNews returns up to count articles matching keywords, merged
// across every source, deduplicated by lower-cased URL (first occurrence
// wins), and sorted by publication time descending. An empty keyword
// list is a no-op.
func (a *Aggregator) FetchRealNews(ctx context.Context, keywords []string, count int) ([]provider.Article, error) {
	keywords = normalizeKeywords(keywords)
	if len(keywords) == 0 || count <= 0 {
		return nil, nil
	}

	key := cache.Key("news", keywords...)
	if cached, ok := a.store.Get(key); ok && len(cached) > 0 {
		return truncate(cached, count), nil
	}

	var all []provider.Article

	// Best-effort feed query first; any failure is swallowed
	if a.feed != nil {
		if articles, err := a.feed.FetchNews(ctx, keywords, count); err != nil {
			slog.Debug("news feed unavailable", "provider", a.feed.Name(), "error", err)
		} else {
			all = append(all, articles...)
		}
	}

	all = append(all, a.fanOut(ctx, keywords, count)...)

	for i := range all {
		if all[i].Relevance == 0 {
			all[i].Relevance = Relevance(all[i], keywords)
		}
	}

	merged := dedupByURL(all)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	merged = truncate(merged, count)
	if len(merged) > 0 {
		a.store.Set(key, merged)
	}
	return merged, nil
}

// fanOut queries every credentialed provider concurrently and waits for
// all of them: dedup and sort need the full candidate set, so stragglers
// are never cancelled early. Per-provider slices are concatenated in
// declared provider order to keep first-occurrence dedup deterministic.
func (a *Aggregator) fanOut(ctx context.Context, keywords []string, count int) []provider.Article {
	results := make([][]provider.Article, len(a.providers))

	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p provider.NewsProvider) {
			defer wg.Done()
			articles, err := p.FetchNews(ctx, keywords, count)
			if err != nil {
				if errors.Is(err, provider.ErrNotConfigured) {
					slog.Debug("skipping unconfigured provider", "provider", p.Name())
				} else {
					slog.Warn("news provider failed", "provider", p.Name(), "error", err)
				}
				return
			}
			results[i] = articles
		}(i, p)
	}
	wg.Wait()

	var all []provider.Article
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// dedupByURL collapses duplicate URLs case-insensitively, keeping the
// first occurrence in concatenation order.
func dedupByURL(articles []provider.Article) []provider.Article {
	seen := make(map[string]bool, len(articles))
	out := make([]provider.Article, 0, len(articles))
	for _, a := range articles {
		key := strings.ToLower(a.URL)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

func truncate(articles []provider.Article, count int) []provider.Article {
	if count > 0 && len(articles) > count {
		return articles[:count]
	}
	return articles
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
