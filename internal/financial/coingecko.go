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

// coinIDs maps common ticker symbols to CoinGecko coin ids. Symbols not
// in the table fall back to the lower-cased input.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"AVAX":  "avalanche-2",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"BNB":   "binancecoin",
}

type coinPrice struct {
	USD          float64 `json:"usd"`
	USDChange24h float64 `json:"usd_24h_change"`
	USDVol24h    float64 `json:"usd_24h_vol"`
}

// CoinGeckoProvider fetches crypto prices in a single batched call. It
// needs no credential.
type CoinGeckoProvider struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewCoinGeckoProvider creates a CoinGecko price provider
func NewCoinGeckoProvider(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  provider.NewHTTPClient(baseURL, timeout),
		limiter: limiter,
	}
}

// Name returns the provider identifier
func (p *CoinGeckoProvider) Name() string { return "coingecko" }

// CoinID resolves a ticker symbol to a CoinGecko coin id.
func CoinID(symbol string) string {
	if id, ok := coinIDs[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

// FetchQuotes retrieves current prices for the given crypto symbols
func (p *CoinGeckoProvider) FetchQuotes(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	if err := p.limiter.Wait(ctx, ratelimit.APICoinGecko); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(symbols))
	idToSymbol := make(map[string]string, len(symbols))
	for _, s := range symbols {
		id := CoinID(s)
		ids = append(ids, id)
		idToSymbol[id] = strings.ToUpper(s)
	}

	result := make(map[string]coinPrice)

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 strings.Join(ids, ","),
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
			"include_24hr_vol":    "true",
		}).
		SetResult(&result).
		Get("/simple/price")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch crypto prices: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	now := time.Now()
	var quotes []provider.PriceQuote
	for _, id := range ids {
		cp, ok := result[id]
		if !ok || cp.USD == 0 {
			continue
		}

		// CoinGecko reports the 24h change as a percentage; recover the
		// absolute change from it
		change := 0.0
		if cp.USDChange24h != 0 {
			change = cp.USD * cp.USDChange24h / (100 + cp.USDChange24h)
		}

		quotes = append(quotes, provider.PriceQuote{
			Symbol:        idToSymbol[id],
			Price:         cp.USD,
			Change:        change,
			ChangePercent: cp.USDChange24h,
			Volume:        int64(cp.USDVol24h),
			Timestamp:     now,
			Source:        p.Name(),
		})
	}

	return quotes, nil
}
