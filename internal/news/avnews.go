package news

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

type avNewsResponse struct {
	Feed []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	URL            string `json:"url"`
	Source         string `json:"source"`
	TimePublished  string `json:"time_published"`
	RelevanceScore string `json:"relevance_score"`
}

// AlphaVantageNewsProvider fetches market news from the AlphaVantage
// NEWS_SENTIMENT endpoint. Credentialed.
type AlphaVantageNewsProvider struct {
	apiKey  string
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewAlphaVantageNewsProvider creates an AlphaVantage news provider
func NewAlphaVantageNewsProvider(apiKey, baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *AlphaVantageNewsProvider {
	return &AlphaVantageNewsProvider{
		apiKey:  apiKey,
		client:  provider.NewHTTPClient(baseURL, timeout),
		limiter: limiter,
	}
}

// Name returns the provider identifier
func (p *AlphaVantageNewsProvider) Name() string { return "alphavantage" }

// FetchNews retrieves the latest market news. The endpoint filters by
// ticker, so keywords that look like symbols are forwarded; the
// aggregator handles relevance for the rest.
func (p *AlphaVantageNewsProvider) FetchNews(ctx context.Context, keywords []string, limit int) ([]provider.Article, error) {
	if p.apiKey == "" {
		return nil, provider.ErrNotConfigured
	}

	if err := p.limiter.Wait(ctx, ratelimit.APIAlphaVantage); err != nil {
		return nil, err
	}

	params := map[string]string{
		"function": "NEWS_SENTIMENT",
		"sort":     "LATEST",
		"limit":    strconv.Itoa(limit),
		"apikey":   p.apiKey,
	}
	if tickers := symbolLike(keywords); len(tickers) > 0 {
		params["tickers"] = strings.Join(tickers, ",")
	}

	var result avNewsResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&result).
		Get("")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch market news: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	articles := make([]provider.Article, 0, len(result.Feed))
	for _, item := range result.Feed {
		published, err := time.Parse("20060102T150405", item.TimePublished)
		if err != nil {
			published = time.Time{}
		}

		relevance := 0.0
		if item.RelevanceScore != "" {
			relevance, _ = strconv.ParseFloat(item.RelevanceScore, 64)
		}

		articles = append(articles, provider.Article{
			Title:       item.Title,
			URL:         item.URL,
			Source:      item.Source,
			PublishedAt: published,
			Snippet:     item.Summary,
			Relevance:   relevance,
		})
	}

	return articles, nil
}

// symbolLike keeps keywords that plausibly name a ticker: short,
// all-letter tokens.
func symbolLike(keywords []string) []string {
	var out []string
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if len(k) == 0 || len(k) > 5 {
			continue
		}
		upper := strings.ToUpper(k)
		if upper != k {
			continue
		}
		out = append(out, upper)
	}
	return out
}
