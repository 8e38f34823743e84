package financial

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/ratelimit"
)

// quoteResponse represents the Finnhub /quote response
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// FinnhubProvider fetches stock quotes from Finnhub. Credentialed.
type FinnhubProvider struct {
	apiKey  string
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewFinnhubProvider creates a Finnhub quote provider
func NewFinnhubProvider(apiKey, baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *FinnhubProvider {
	return &FinnhubProvider{
		apiKey:  apiKey,
		client:  provider.NewHTTPClient(baseURL, timeout),
		limiter: limiter,
	}
}

// Name returns the provider identifier
func (p *FinnhubProvider) Name() string { return "finnhub" }

// FetchQuotes retrieves one quote per symbol
func (p *FinnhubProvider) FetchQuotes(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	if p.apiKey == "" {
		return nil, provider.ErrNotConfigured
	}

	var quotes []provider.PriceQuote

	for i, symbol := range symbols {
		if i > 0 {
			select {
			case <-ctx.Done():
				return quotes, ctx.Err()
			case <-time.After(interSymbolDelay):
			}
		}

		if err := p.limiter.Wait(ctx, ratelimit.APIFinnhub); err != nil {
			return quotes, err
		}

		q, err := p.fetchOne(ctx, strings.ToUpper(symbol))
		if err != nil {
			return quotes, err
		}
		if q != nil {
			quotes = append(quotes, *q)
		}
	}

	return quotes, nil
}

func (p *FinnhubProvider) fetchOne(ctx context.Context, symbol string) (*provider.PriceQuote, error) {
	var result quoteResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"token":  p.apiKey,
		}).
		SetResult(&result).
		Get("/quote")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	// Finnhub reports unknown symbols as an all-zero quote
	if result.Current == 0 && result.PreviousClose == 0 {
		return nil, nil
	}

	changePercent := result.ChangePercent
	if changePercent == 0 && result.PreviousClose != 0 {
		changePercent = (result.Current - result.PreviousClose) / result.PreviousClose * 100
	}

	return &provider.PriceQuote{
		Symbol:        symbol,
		Price:         result.Current,
		Change:        result.Change,
		ChangePercent: changePercent,
		High:          result.High,
		Low:           result.Low,
		Timestamp:     time.Unix(result.Timestamp, 0),
		Source:        p.Name(),
	}, nil
}
