// Package testutil provides mock providers for aggregator tests.
package testutil

import (
	"context"
	"sync/atomic"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// MockQuoteProvider is a mock implementation of provider.QuoteProvider.
// Calls counts FetchQuotes invocations so waterfall short-circuit
// behavior can be asserted.
type MockQuoteProvider struct {
	NameValue string
	FetchFunc func(ctx context.Context, symbols []string) ([]provider.PriceQuote, error)
	Calls     atomic.Int32
}

// FetchQuotes implements the QuoteProvider interface
func (m *MockQuoteProvider) FetchQuotes(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	m.Calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, symbols)
	}
	return nil, nil
}

// Name implements the QuoteProvider interface
func (m *MockQuoteProvider) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// NewMockQuoteProvider creates a mock that always returns the given
// quotes and error.
func NewMockQuoteProvider(name string, quotes []provider.PriceQuote, err error) *MockQuoteProvider {
	return &MockQuoteProvider{
		NameValue: name,
		FetchFunc: func(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
			return quotes, err
		},
	}
}

// MockNewsProvider is a mock implementation of provider.NewsProvider.
type MockNewsProvider struct {
	NameValue string
	FetchFunc func(ctx context.Context, keywords []string, limit int) ([]provider.Article, error)
	Calls     atomic.Int32
}

// FetchNews implements the NewsProvider interface
func (m *MockNewsProvider) FetchNews(ctx context.Context, keywords []string, limit int) ([]provider.Article, error) {
	m.Calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, keywords, limit)
	}
	return nil, nil
}

// Name implements the NewsProvider interface
func (m *MockNewsProvider) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// NewMockNewsProvider creates a mock that always returns the given
// articles and error.
func NewMockNewsProvider(name string, articles []provider.Article, err error) *MockNewsProvider {
	return &MockNewsProvider{
		NameValue: name,
		FetchFunc: func(ctx context.Context, keywords []string, limit int) ([]provider.Article, error) {
			return articles, err
		},
	}
}

// MockSocialProvider is a mock implementation of provider.SocialProvider.
type MockSocialProvider struct {
	NameValue string
	FetchFunc func(ctx context.Context, keywords []string, limit int) ([]provider.SocialPost, error)
	Calls     atomic.Int32
}

// FetchPosts implements the SocialProvider interface
func (m *MockSocialProvider) FetchPosts(ctx context.Context, keywords []string, limit int) ([]provider.SocialPost, error) {
	m.Calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, keywords, limit)
	}
	return nil, nil
}

// Name implements the SocialProvider interface
func (m *MockSocialProvider) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// NewMockSocialProvider creates a mock that always returns the given
// posts and error.
func NewMockSocialProvider(name string, posts []provider.SocialPost, err error) *MockSocialProvider {
	return &MockSocialProvider{
		NameValue: name,
		FetchFunc: func(ctx context.Context, keywords []string, limit int) ([]provider.SocialPost, error) {
			return posts, err
		},
	}
}

// MockMarketProvider is a mock implementation of provider.MarketProvider.
type MockMarketProvider struct {
	NameValue string
	FetchFunc func(ctx context.Context, keywords []string, limit int) ([]provider.Market, error)
	Calls     atomic.Int32
}

// FetchMarkets implements the MarketProvider interface
func (m *MockMarketProvider) FetchMarkets(ctx context.Context, keywords []string, limit int) ([]provider.Market, error) {
	m.Calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, keywords, limit)
	}
	return nil, nil
}

// Name implements the MarketProvider interface
func (m *MockMarketProvider) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// NewMockMarketProvider creates a mock that always returns the given
// markets and error.
func NewMockMarketProvider(name string, markets []provider.Market, err error) *MockMarketProvider {
	return &MockMarketProvider{
		NameValue: name,
		FetchFunc: func(ctx context.Context, keywords []string, limit int) ([]provider.Market, error) {
			return markets, err
		},
	}
}
