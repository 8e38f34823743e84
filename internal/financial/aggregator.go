// Package financial aggregates price quotes from multiple providers.
// Stock quotes run through an ordered fallback waterfall: one
// authoritative price is enough, and a successful cheap source should
// short-circuit the rate-limited credentialed ones.
package financial

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/omondistanley/keep-notes-app-sub000/internal/cache"
	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// Aggregator orchestrates stock and crypto quote providers behind a
// short-TTL cache.
type Aggregator struct {
	stockProviders []provider.QuoteProvider
	cryptoProvider provider.QuoteProvider
	store          *cache.Store[[]provider.PriceQuote]
}

// NewAggregator creates an Aggregator. stockProviders are tried in slice
// order; the first non-empty result wins.
func NewAggregator(stockProviders []provider.QuoteProvider, cryptoProvider provider.QuoteProvider, store *cache.Store[[]provider.PriceQuote]) *Aggregator {
	return &Aggregator{
		stockProviders: stockProviders,
		cryptoProvider: cryptoProvider,
		store:          store,
	}
}

// FetchStockPrices returns one quote per known symbol. An empty symbol
// list is a no-op, and total provider failure yields an empty slice:
// placeholder data is never synthesized for prices.
func (a *Aggregator) FetchStockPrices(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, nil
	}

	key := cache.Key("stocks", symbols...)
	if cached, ok := a.store.Get(key); ok && len(cached) > 0 {
		return cached, nil
	}

	quotes := a.waterfall(ctx, symbols)
	if len(quotes) > 0 {
		a.store.Set(key, quotes)
	}
	return quotes, nil
}

// FetchCryptoPrices returns one quote per known crypto symbol via the
// single crypto provider, behind the same cache.
func (a *Aggregator) FetchCryptoPrices(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, nil
	}

	key := cache.Key("crypto", symbols...)
	if cached, ok := a.store.Get(key); ok && len(cached) > 0 {
		return cached, nil
	}

	quotes, err := a.cryptoProvider.FetchQuotes(ctx, symbols)
	if err != nil {
		slog.Warn("crypto provider failed",
			"provider", a.cryptoProvider.Name(),
			"error", err)
		return nil, nil
	}

	if len(quotes) > 0 {
		a.store.Set(key, quotes)
	}
	return quotes, nil
}

// waterfall tries providers in declared order and stops at the first
// non-empty result. Later providers are never invoked once one succeeds.
func (a *Aggregator) waterfall(ctx context.Context, symbols []string) []provider.PriceQuote {
	for _, p := range a.stockProviders {
		quotes, err := p.FetchQuotes(ctx, symbols)
		if err != nil {
			if errors.Is(err, provider.ErrNotConfigured) {
				slog.Debug("skipping unconfigured provider", "provider", p.Name())
			} else {
				slog.Warn("quote provider failed", "provider", p.Name(), "error", err)
			}
			continue
		}
		if len(quotes) > 0 {
			return quotes
		}
	}
	return nil
}

// normalizeSymbols upper-cases, trims, and sorts symbols so equivalent
// requests share a cache key.
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
