// Package predictive aggregates prediction-market odds for note
// keywords. Markets change slowly relative to prices, so they share the
// long news/social cache class.
package predictive

import (
	"context"
	"log/slog"
	"strings"

	"github.com/omondistanley/keep-notes-app-sub000/internal/cache"
	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// Aggregator fetches markets from the configured platform behind a
// long-TTL cache.
type Aggregator struct {
	providers []provider.MarketProvider
	store     *cache.Store[[]provider.Market]
}

// NewAggregator creates an Aggregator over the given market platforms.
func NewAggregator(providers []provider.MarketProvider, store *cache.Store[[]provider.Market]) *Aggregator {
	return &Aggregator{providers: providers, store: store}
}

// FetchMarkets returns up to limit markets matching keywords. Platforms
// are tried in order; the first non-empty result wins, because the same
// real-world question is usually listed everywhere and a single
// platform's odds suffice.
func (a *Aggregator) FetchMarkets(ctx context.Context, keywords []string, limit int) ([]provider.Market, error) {
	keywords = trimAll(keywords)
	if len(keywords) == 0 || limit <= 0 {
		return nil, nil
	}

	key := cache.Key("markets", keywords...)
	if cached, ok := a.store.Get(key); ok && len(cached) > 0 {
		return cached, nil
	}

	for _, p := range a.providers {
		markets, err := p.FetchMarkets(ctx, keywords, limit)
		if err != nil {
			slog.Warn("market provider failed", "provider", p.Name(), "error", err)
			continue
		}
		if len(markets) > 0 {
			a.store.Set(key, markets)
			return markets, nil
		}
	}

	return nil, nil
}

func trimAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
