package financial

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/ratelimit"
)

// globalQuoteResponse represents the AlphaVantage API response for stock quotes
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol           string `json:"01. symbol"`
		Open             string `json:"02. open"`
		High             string `json:"03. high"`
		Low              string `json:"04. low"`
		Price            string `json:"05. price"`
		Volume           string `json:"06. volume"`
		LatestTradingDay string `json:"07. latest trading day"`
		PreviousClose    string `json:"08. previous close"`
		Change           string `json:"09. change"`
		ChangePercent    string `json:"10. change percent"`
	} `json:"Global Quote"`
}

// AlphaVantageProvider fetches stock quotes from AlphaVantage. It is
// credentialed: without an API key FetchQuotes short-circuits with
// ErrNotConfigured before any network call.
type AlphaVantageProvider struct {
	apiKey  string
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewAlphaVantageProvider creates an AlphaVantage quote provider
func NewAlphaVantageProvider(apiKey, baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		apiKey:  apiKey,
		client:  provider.NewHTTPClient(baseURL, timeout),
		limiter: limiter,
	}
}

// Name returns the provider identifier
func (p *AlphaVantageProvider) Name() string { return "alphavantage" }

// FetchQuotes retrieves one quote per symbol
func (p *AlphaVantageProvider) FetchQuotes(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
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

		if err := p.limiter.Wait(ctx, ratelimit.APIAlphaVantage); err != nil {
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

func (p *AlphaVantageProvider) fetchOne(ctx context.Context, symbol string) (*provider.PriceQuote, error) {
	var result globalQuoteResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apikey":   p.apiKey,
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
		}).
		SetResult(&result).
		Get("")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock quote for %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	gq := result.GlobalQuote
	if gq.Price == "" {
		// Rate-limit notes and unknown symbols come back as an empty
		// quote object with HTTP 200
		return nil, nil
	}

	price, err := strconv.ParseFloat(gq.Price, 64)
	if err != nil {
		return nil, provider.NewValidationError(fmt.Sprintf("failed to parse price for %s", symbol))
	}

	change, _ := strconv.ParseFloat(gq.Change, 64)
	high, _ := strconv.ParseFloat(gq.High, 64)
	low, _ := strconv.ParseFloat(gq.Low, 64)
	volume, _ := strconv.ParseInt(gq.Volume, 10, 64)

	changePercent, err := strconv.ParseFloat(strings.TrimSuffix(gq.ChangePercent, "%"), 64)
	if err != nil {
		if prev, perr := strconv.ParseFloat(gq.PreviousClose, 64); perr == nil && prev != 0 {
			changePercent = (price - prev) / prev * 100
		}
	}

	timestamp := time.Now()
	if day, err := time.Parse("2006-01-02", gq.LatestTradingDay); err == nil {
		timestamp = day
	}

	return &provider.PriceQuote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		High:          high,
		Low:           low,
		Timestamp:     timestamp,
		Source:        p.Name(),
	}, nil
}
