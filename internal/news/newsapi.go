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

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// NewsAPIProvider fetches articles from NewsAPI. Credentialed.
type NewsAPIProvider struct {
	apiKey  string
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewNewsAPIProvider creates a NewsAPI provider
func NewNewsAPIProvider(apiKey, baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *NewsAPIProvider {
	return &NewsAPIProvider{
		apiKey:  apiKey,
		client:  provider.NewHTTPClient(baseURL, timeout),
		limiter: limiter,
	}
}

// Name returns the provider identifier
func (p *NewsAPIProvider) Name() string { return "newsapi" }

// FetchNews retrieves articles matching the keyword query
func (p *NewsAPIProvider) FetchNews(ctx context.Context, keywords []string, limit int) ([]provider.Article, error) {
	if p.apiKey == "" {
		return nil, provider.ErrNotConfigured
	}

	if err := p.limiter.Wait(ctx, ratelimit.APINewsAPI); err != nil {
		return nil, err
	}

	var result newsAPIResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        strings.Join(keywords, " OR "),
			"sortBy":   "publishedAt",
			"language": "en",
			"pageSize": strconv.Itoa(limit),
			"apiKey":   p.apiKey,
		}).
		SetResult(&result).
		Get("/everything")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}
	if result.Status != "ok" {
		return nil, provider.NewValidationError(fmt.Sprintf("unexpected response status %q", result.Status))
	}

	articles := make([]provider.Article, 0, len(result.Articles))
	for _, item := range result.Articles {
		published, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			published = time.Time{}
		}

		articles = append(articles, provider.Article{
			Title:       item.Title,
			URL:         item.URL,
			Source:      item.Source.Name,
			PublishedAt: published,
			Snippet:     item.Description,
		})
	}

	return articles, nil
}
