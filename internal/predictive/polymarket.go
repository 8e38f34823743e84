package predictive

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// gammaMarket represents a market from the Gamma API. Outcomes and their
// prices arrive as JSON-encoded string arrays inside string fields.
type gammaMarket struct {
	ID            string  `json:"id"`
	Question      string  `json:"question"`
	Outcomes      string  `json:"outcomes"`
	OutcomePrices string  `json:"outcomePrices"`
	Volume        string  `json:"volume"`
	EndDate       string  `json:"endDate"`
	Active        bool    `json:"active"`
	Closed        bool    `json:"closed"`
	Liquidity     float64 `json:"liquidityNum"`
}

// PolymarketProvider fetches prediction markets from the Polymarket
// Gamma API. No credential required.
type PolymarketProvider struct {
	client *resty.Client
}

// NewPolymarketProvider creates a Polymarket market provider
func NewPolymarketProvider(baseURL string, timeout time.Duration) *PolymarketProvider {
	return &PolymarketProvider{
		client: provider.NewHTTPClient(baseURL, timeout),
	}
}

// Name returns the provider identifier
func (p *PolymarketProvider) Name() string { return "polymarket" }

// FetchMarkets retrieves active markets whose question mentions any of
// the keywords.
func (p *PolymarketProvider) FetchMarkets(ctx context.Context, keywords []string, limit int) ([]provider.Market, error) {
	var raw []gammaMarket

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"active":    "true",
			"closed":    "false",
			"limit":     strconv.Itoa(limit * 3), // fetch extra to allow for keyword filtering
			"order":     "volumeNum",
			"ascending": "false",
		}).
		SetResult(&raw).
		Get("/markets")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	markets := make([]provider.Market, 0, limit)
	for _, gm := range raw {
		if len(markets) >= limit {
			break
		}
		if !gm.Active || gm.Closed {
			continue
		}
		if !matchesAny(gm.Question, keywords) {
			continue
		}

		outcomes, err := parseOutcomes(gm)
		if err != nil || len(outcomes) == 0 {
			continue
		}

		volume, _ := strconv.ParseFloat(gm.Volume, 64)
		endDate, _ := time.Parse(time.RFC3339, gm.EndDate)

		markets = append(markets, provider.Market{
			ID:       gm.ID,
			Question: gm.Question,
			Outcomes: outcomes,
			Volume:   volume,
			EndDate:  endDate,
			Source:   p.Name(),
		})
	}

	return markets, nil
}

// parseOutcomes decodes the doubly-encoded outcome name and price arrays
// and zips them together.
func parseOutcomes(gm gammaMarket) ([]provider.Outcome, error) {
	var names []string
	if err := json.Unmarshal([]byte(gm.Outcomes), &names); err != nil {
		return nil, fmt.Errorf("failed to parse outcomes: %w", err)
	}

	var prices []string
	if err := json.Unmarshal([]byte(gm.OutcomePrices), &prices); err != nil {
		return nil, fmt.Errorf("failed to parse outcome prices: %w", err)
	}

	outcomes := make([]provider.Outcome, 0, len(names))
	for i, name := range names {
		if i >= len(prices) {
			break
		}
		prob, err := strconv.ParseFloat(prices[i], 64)
		if err != nil {
			continue
		}
		outcomes = append(outcomes, provider.Outcome{Name: name, Probability: prob})
	}
	return outcomes, nil
}

func matchesAny(question string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	q := strings.ToLower(question)
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
