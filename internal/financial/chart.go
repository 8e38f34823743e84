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

// interSymbolDelay spaces out consecutive calls to one provider when a
// symbol list is fetched, to stay clear of burst limits.
const interSymbolDelay = 150 * time.Millisecond

// chartResponse represents the quote-chart API response for one symbol
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketTime    int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// ChartProvider fetches quotes from the public quote-chart endpoint. It
// needs no credential, which makes it the first rung of the waterfall.
type ChartProvider struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewChartProvider creates a quote-chart provider
func NewChartProvider(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *ChartProvider {
	return &ChartProvider{
		client:  provider.NewHTTPClient(baseURL, timeout),
		limiter: limiter,
	}
}

// Name returns the provider identifier
func (p *ChartProvider) Name() string { return "chart" }

// FetchQuotes retrieves one quote per symbol, skipping symbols the
// endpoint has no data for.
func (p *ChartProvider) FetchQuotes(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	var quotes []provider.PriceQuote

	for i, symbol := range symbols {
		if i > 0 {
			select {
			case <-ctx.Done():
				return quotes, ctx.Err()
			case <-time.After(interSymbolDelay):
			}
		}

		if err := p.limiter.Wait(ctx, ratelimit.APIChart); err != nil {
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

func (p *ChartProvider) fetchOne(ctx context.Context, symbol string) (*provider.PriceQuote, error) {
	var result chartResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    "1d",
		}).
		SetResult(&result).
		Get("/v8/finance/chart/{symbol}")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart quote for %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	if result.Chart.Error != nil || len(result.Chart.Result) == 0 {
		// Unknown symbol: not an error, just no data from this provider
		return nil, nil
	}

	meta := result.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, nil
	}

	change := meta.RegularMarketPrice - meta.ChartPreviousClose
	changePercent := 0.0
	if meta.ChartPreviousClose != 0 {
		changePercent = change / meta.ChartPreviousClose * 100
	}

	return &provider.PriceQuote{
		Symbol:        symbol,
		Price:         meta.RegularMarketPrice,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        meta.RegularMarketVolume,
		High:          meta.RegularMarketDayHigh,
		Low:           meta.RegularMarketDayLow,
		Timestamp:     time.Unix(meta.RegularMarketTime, 0),
		Source:        p.Name(),
	}, nil
}
