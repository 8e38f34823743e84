package provider

import "context"

// QuoteProvider fetches price quotes for a symbol list. An adapter whose
// credential is absent returns ErrNotConfigured without touching the network.
type QuoteProvider interface {
	// FetchQuotes retrieves quotes for the given symbols. A provider that
	// has no data for any symbol returns an empty slice, not an error.
	FetchQuotes(ctx context.Context, symbols []string) ([]PriceQuote, error)

	// Name returns a short provider identifier used in logs and the
	// Source field of returned records.
	Name() string
}

// NewsProvider fetches articles matching a keyword set.
type NewsProvider interface {
	FetchNews(ctx context.Context, keywords []string, limit int) ([]Article, error)
	Name() string
}

// SocialProvider fetches social posts matching a keyword set.
type SocialProvider interface {
	FetchPosts(ctx context.Context, keywords []string, limit int) ([]SocialPost, error)
	Name() string
}

// MarketProvider fetches prediction markets matching a keyword set.
type MarketProvider interface {
	FetchMarkets(ctx context.Context, keywords []string, limit int) ([]Market, error)
	Name() string
}
