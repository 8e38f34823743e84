// Package social aggregates posts from syndication mirrors and the
// official platform API. It is the one domain that fabricates placeholder
// posts on total provider failure; the result carries an explicit
// provenance tag so callers can tell real data from synthetic.
package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omondistanley/keep-notes-app-sub000/internal/cache"
	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/sentiment"
)

// dedupPrefixLen is how much post text identifies a duplicate. Provider
// IDs are not comparable across mirrors and the official API, but the
// leading text is.
const dedupPrefixLen = 80

// Provenance tags where a result set came from.
type Provenance string

const (
	// ProvenanceReal marks posts fetched from at least one live provider
	ProvenanceReal Provenance = "real"
	// ProvenanceSynthetic marks fabricated placeholder posts emitted on
	// total provider failure
	ProvenanceSynthetic Provenance = "synthetic"
	// ProvenanceEmpty marks a result with no posts at all
	ProvenanceEmpty Provenance = "empty"
)

// Result is the outcome of a social search: the post set, its aggregate
// sentiment, and where the posts came from.
type Result struct {
	Posts      []provider.SocialPost `json:"posts"`
	Sentiment  sentiment.Aggregate   `json:"overallSentiment"`
	Provenance Provenance            `json:"provenance"`
}

// SearchOptions tunes a social search.
type SearchOptions struct {
	MaxResults int
}

// Aggregator merges posts from the mirror waterfall and the official API
// behind a long-TTL cache.
type Aggregator struct {
	mirror provider.SocialProvider
	api    provider.SocialProvider
	store  *cache.Store[Result]
}

// NewAggregator creates an Aggregator. Either provider may be nil.
func NewAggregator(mirror, api provider.SocialProvider, store *cache.Store[Result]) *Aggregator {
	return &Aggregator{mirror: mirror, api: api, store: store}
}

// SearchPosts returns up to MaxResults posts matching keywords, each
// annotated with sentiment, plus the aggregate sentiment over the set.
// The mirror and the official API are queried independently and both are
// awaited before merging.
func (a *Aggregator) SearchPosts(ctx context.Context, keywords []string, opts SearchOptions) (Result, error) {
	keywords = normalizeKeywords(keywords)
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	if len(keywords) == 0 {
		return Result{Provenance: ProvenanceEmpty}, nil
	}

	key := cache.Key("social", keywords...)
	if cached, ok := a.store.Get(key); ok && len(cached.Posts) > 0 {
		return cached, nil
	}

	merged := a.fetchAll(ctx, keywords, maxResults)

	result := Result{Provenance: ProvenanceReal}
	if len(merged) == 0 {
		// Total provider outage: fall back to placeholder posts so the
		// downstream pipeline still has a shape to work with. The tag is
		// the caller's only honest signal that this happened.
		merged = synthesizePosts(keywords, maxResults)
		result.Provenance = ProvenanceSynthetic
	}

	merged = dedupByText(merged)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}

	sentiments := make([]provider.SentimentResult, len(merged))
	for i := range merged {
		merged[i].Sentiment = sentiment.Analyze(merged[i].Text)
		sentiments[i] = merged[i].Sentiment
	}

	result.Posts = merged
	result.Sentiment = sentiment.Summarize(sentiments)

	if result.Provenance == ProvenanceReal {
		a.store.Set(key, result)
	}
	return result, nil
}

// fetchAll runs the mirror waterfall and the official API concurrently
// and concatenates whatever they produced.
func (a *Aggregator) fetchAll(ctx context.Context, keywords []string, limit int) []provider.SocialPost {
	var (
		wg          sync.WaitGroup
		mirrorPosts []provider.SocialPost
		apiPosts    []provider.SocialPost
	)

	fetch := func(p provider.SocialProvider, out *[]provider.SocialPost) {
		defer wg.Done()
		posts, err := p.FetchPosts(ctx, keywords, limit)
		if err != nil {
			if errors.Is(err, provider.ErrNotConfigured) {
				slog.Debug("skipping unconfigured provider", "provider", p.Name())
			} else {
				slog.Warn("social provider failed", "provider", p.Name(), "error", err)
			}
			return
		}
		*out = posts
	}

	if a.mirror != nil {
		wg.Add(1)
		go fetch(a.mirror, &mirrorPosts)
	}
	if a.api != nil {
		wg.Add(1)
		go fetch(a.api, &apiPosts)
	}
	wg.Wait()

	return append(mirrorPosts, apiPosts...)
}

// dedupByText collapses posts sharing the same leading text, keeping the
// first occurrence.
func dedupByText(posts []provider.SocialPost) []provider.SocialPost {
	seen := make(map[string]bool, len(posts))
	out := make([]provider.SocialPost, 0, len(posts))
	for _, p := range posts {
		key := strings.ToLower(p.Text)
		if len(key) > dedupPrefixLen {
			key = key[:dedupPrefixLen]
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

var placeholderTemplates = []string{
	"Seeing a lot of chatter about %s today, interesting moves",
	"Anyone else watching %s right now?",
	"%s keeps coming up in my feed, worth keeping an eye on",
	"Big discussion around %s this week",
	"Not sure what to make of the latest %s news",
	"%s trending again, mixed feelings about this",
}

// synthesizePosts fabricates a deterministic-shaped but randomly-valued
// placeholder set.
func synthesizePosts(keywords []string, count int) []provider.SocialPost {
	if count > len(placeholderTemplates) {
		count = len(placeholderTemplates)
	}
	topic := keywords[0]
	now := time.Now()

	posts := make([]provider.SocialPost, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, provider.SocialPost{
			ID:        uuid.NewString(),
			Text:      fmt.Sprintf(placeholderTemplates[i], topic),
			Author:    fmt.Sprintf("user%d", rand.Intn(90000)+10000),
			CreatedAt: now.Add(-time.Duration(rand.Intn(120)) * time.Minute),
			Metrics: provider.PostMetrics{
				Likes:   rand.Intn(200),
				Reposts: rand.Intn(50),
				Replies: rand.Intn(30),
			},
			Source: "synthetic",
		})
	}
	return posts
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
