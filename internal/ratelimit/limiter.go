package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// API represents the different external APIs we interact with
type API string

const (
	// APIChart represents the no-credential quote-chart API
	APIChart API = "chart"
	// APIAlphaVantage represents the AlphaVantage API
	APIAlphaVantage API = "alphavantage"
	// APIFinnhub represents the Finnhub API
	APIFinnhub API = "finnhub"
	// APICoinGecko represents the CoinGecko API
	APICoinGecko API = "coingecko"
	// APINewsAPI represents the NewsAPI API
	APINewsAPI API = "newsapi"
	// APISocial represents the social platform API
	APISocial API = "social"
)

// Limiter manages rate limits for different APIs. It is constructed
// explicitly and handed to the adapters that need it, so tests can
// substitute an unlimited instance.
type Limiter struct {
	limiters map[API]*rate.Limiter
	mu       sync.RWMutex
}

// New creates a Limiter with conservative production limits per API.
func New() *Limiter {
	l := &Limiter{limiters: make(map[API]*rate.Limiter)}

	// Chart API tolerates bursts but throttles sustained traffic
	l.limiters[APIChart] = rate.NewLimiter(rate.Limit(2), 1)

	// AlphaVantage: 5 requests per minute on free tier = 1 request every 12 seconds
	l.limiters[APIAlphaVantage] = rate.NewLimiter(rate.Limit(1.0/12.0), 1)

	// Finnhub: 60 requests per minute on free tier
	l.limiters[APIFinnhub] = rate.NewLimiter(rate.Limit(1), 1)

	// CoinGecko: 10-30 calls per minute unauthenticated
	l.limiters[APICoinGecko] = rate.NewLimiter(rate.Limit(1.0/6.0), 1)

	// NewsAPI: generous burst headroom is pointless on the free tier
	l.limiters[APINewsAPI] = rate.NewLimiter(rate.Limit(0.5), 1)

	l.limiters[APISocial] = rate.NewLimiter(rate.Limit(1), 1)

	return l
}

// NewUnlimited creates a Limiter that never blocks, for tests.
func NewUnlimited() *Limiter {
	l := &Limiter{limiters: make(map[API]*rate.Limiter)}
	for _, api := range []API{APIChart, APIAlphaVantage, APIFinnhub, APICoinGecko, APINewsAPI, APISocial} {
		l.limiters[api] = rate.NewLimiter(rate.Inf, 1)
	}
	return l
}

// Wait blocks until the rate limiter permits an event for the given API.
// It returns an error if the context is canceled before the event can proceed.
func (l *Limiter) Wait(ctx context.Context, api API) error {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		// If no limiter exists for this API, allow the request without limiting
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given API may happen now
func (l *Limiter) Allow(api API) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
