package social

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

type searchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		AuthorID      string `json:"author_id"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// APIProvider queries the official social platform search API.
// Credentialed via bearer token.
type APIProvider struct {
	bearerToken string
	client      *resty.Client
	limiter     *ratelimit.Limiter
}

// NewAPIProvider creates an official API provider
func NewAPIProvider(bearerToken, baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *APIProvider {
	return &APIProvider{
		bearerToken: bearerToken,
		client:      provider.NewHTTPClient(baseURL, timeout),
		limiter:     limiter,
	}
}

// Name returns the provider identifier
func (p *APIProvider) Name() string { return "api" }

// FetchPosts retrieves recent posts matching the keyword query
func (p *APIProvider) FetchPosts(ctx context.Context, keywords []string, limit int) ([]provider.SocialPost, error) {
	if p.bearerToken == "" {
		return nil, provider.ErrNotConfigured
	}

	if err := p.limiter.Wait(ctx, ratelimit.APISocial); err != nil {
		return nil, err
	}

	// The recent-search endpoint floors max_results at 10
	maxResults := limit
	if maxResults < 10 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	var result searchResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.bearerToken).
		SetQueryParams(map[string]string{
			"query":        strings.Join(keywords, " ") + " -is:retweet lang:en",
			"max_results":  strconv.Itoa(maxResults),
			"tweet.fields": "created_at,public_metrics,author_id",
		}).
		SetResult(&result).
		Get("/tweets/search/recent")

	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, provider.ClassifyHTTPError(resp.StatusCode())
	}

	posts := make([]provider.SocialPost, 0, len(result.Data))
	for _, item := range result.Data {
		created, err := time.Parse(time.RFC3339, item.CreatedAt)
		if err != nil {
			created = time.Time{}
		}

		posts = append(posts, provider.SocialPost{
			ID:        item.ID,
			Text:      item.Text,
			Author:    item.AuthorID,
			CreatedAt: created,
			Metrics: provider.PostMetrics{
				Likes:   item.PublicMetrics.LikeCount,
				Reposts: item.PublicMetrics.RetweetCount,
				Replies: item.PublicMetrics.ReplyCount,
			},
			Source: p.Name(),
		})
	}

	return posts, nil
}
