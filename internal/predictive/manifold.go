package predictive

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// manifoldMarket is a search result from the Manifold API. Binary
// markets carry a single implied yes-probability.
type manifoldMarket struct {
	ID          string  `json:"id"`
	Question    string  `json:"question"`
	OutcomeType string  `json:"outcomeType"`
	Probability float64 `json:"probability"`
	Volume      float64 `json:"volume"`
	CloseTime   int64   `json:"closeTime"`
	IsResolved  bool    `json:"isResolved"`
}

// ManifoldProvider fetches binary prediction markets from the Manifold
// search API. No credential required.
type ManifoldProvider struct {
	client *resty.Client
}

// NewManifoldProvider creates a Manifold market provider
func NewManifoldProvider(baseURL string, timeout time.Duration) *ManifoldProvider {
	return &ManifoldProvider{
		client: provider.NewHTTPClient(baseURL, timeout),
	}
}

// Name returns the provider identifier
func (p *ManifoldProvider) Name() string { return "manifold" }

// FetchMarkets searches open binary markets for the keywords. Non-binary
// and resolved markets are skipped since the correlation rules only read
// yes/no probabilities.
func (p *ManifoldProvider) FetchMarkets(ctx context.Context, keywords []string, limit int) ([]provider.Market, error) {
	var raw []manifoldMarket

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"term":   strings.Join(keywords, " "),
			"filter": "open",
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&raw).
		Get("/v0/search-markets")

	if err != nil {
		return nil, fmt.Errorf("failed to search markets: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	markets := make([]provider.Market, 0, len(raw))
	for _, mm := range raw {
		if mm.OutcomeType != "BINARY" || mm.IsResolved {
			continue
		}

		markets = append(markets, provider.Market{
			ID:       mm.ID,
			Question: mm.Question,
			Outcomes: []provider.Outcome{
				{Name: "Yes", Probability: mm.Probability},
				{Name: "No", Probability: 1 - mm.Probability},
			},
			Volume:  mm.Volume,
			EndDate: time.UnixMilli(mm.CloseTime).UTC(),
			Source:  p.Name(),
		})
	}

	return markets, nil
}
