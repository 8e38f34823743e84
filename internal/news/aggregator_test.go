package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omondistanley/keep-notes-app-sub000/internal/cache"
	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/testutil"
)

func newStore() *cache.Store[[]provider.Article] {
	return cache.New[[]provider.Article](15 * time.Minute)
}

func article(title, url string, published time.Time) provider.Article {
	return provider.Article{Title: title, URL: url, PublishedAt: published}
}

func TestFetchRealNews_MergeDedupSort(t *testing.T) {
	t1 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)

	feed := testutil.NewMockNewsProvider("feed", []provider.Article{
		article("A", "https://example.com/u1", t2),
		article("B", "https://example.com/u2", t1),
	}, nil)
	prov := testutil.NewMockNewsProvider("prov", []provider.Article{
		article("C", "https://example.com/u1", t2),
		article("D", "https://example.com/u3", t3),
	}, nil)

	agg := NewAggregator(feed, []provider.NewsProvider{prov}, newStore())

	got, err := agg.FetchRealNews(context.Background(), []string{"bitcoin"}, 10)
	if err != nil {
		t.Fatalf("FetchRealNews() returned unexpected error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("FetchRealNews() returned %d articles, want 3", len(got))
	}
	// Sorted by publication time descending; u1 keeps its first
	// occurrence (A from the feed, not C from the provider)
	if got[0].Title != "D" {
		t.Errorf("got[0].Title = %q, want D", got[0].Title)
	}
	if got[1].Title != "A" {
		t.Errorf("got[1].Title = %q, want A (first-seen wins for duplicate URL)", got[1].Title)
	}
	if got[2].Title != "B" {
		t.Errorf("got[2].Title = %q, want B", got[2].Title)
	}
}

func TestFetchRealNews_DedupIsCaseInsensitive(t *testing.T) {
	now := time.Now()
	feed := testutil.NewMockNewsProvider("feed", []provider.Article{
		article("A", "https://Example.com/Story", now),
		article("B", "https://example.com/story", now.Add(-time.Hour)),
	}, nil)

	agg := NewAggregator(feed, nil, newStore())

	got, err := agg.FetchRealNews(context.Background(), []string{"story"}, 10)
	if err != nil {
		t.Fatalf("FetchRealNews() returned unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("FetchRealNews() returned %d articles, want 1", len(got))
	}
	if got[0].Title != "A" {
		t.Errorf("got[0].Title = %q, want A (first occurrence)", got[0].Title)
	}
}

func TestFetchRealNews_FeedFailureIsSwallowed(t *testing.T) {
	feed := testutil.NewMockNewsProvider("feed", nil, errors.New("feed down"))
	prov := testutil.NewMockNewsProvider("prov", []provider.Article{
		article("A", "https://example.com/a", time.Now()),
	}, nil)

	agg := NewAggregator(feed, []provider.NewsProvider{prov}, newStore())

	got, err := agg.FetchRealNews(context.Background(), []string{"topic"}, 10)
	if err != nil {
		t.Fatalf("FetchRealNews() returned unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("FetchRealNews() returned %d articles, want 1", len(got))
	}
}

func TestFetchRealNews_AllProvidersFailReturnsEmpty(t *testing.T) {
	feed := testutil.NewMockNewsProvider("feed", nil, errors.New("down"))
	p1 := testutil.NewMockNewsProvider("p1", nil, provider.ErrNotConfigured)
	p2 := testutil.NewMockNewsProvider("p2", nil, errors.New("down"))

	agg := NewAggregator(feed, []provider.NewsProvider{p1, p2}, newStore())

	got, err := agg.FetchRealNews(context.Background(), []string{"topic"}, 10)
	if err != nil {
		t.Fatalf("FetchRealNews() returned unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FetchRealNews() = %+v, want empty", got)
	}
}

func TestFetchRealNews_TruncatesToCount(t *testing.T) {
	now := time.Now()
	articles := make([]provider.Article, 10)
	for i := range articles {
		articles[i] = article(
			string(rune('A'+i)),
			"https://example.com/"+string(rune('a'+i)),
			now.Add(-time.Duration(i)*time.Minute),
		)
	}
	feed := testutil.NewMockNewsProvider("feed", articles, nil)

	agg := NewAggregator(feed, nil, newStore())

	got, err := agg.FetchRealNews(context.Background(), []string{"x"}, 3)
	if err != nil {
		t.Fatalf("FetchRealNews() returned unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("FetchRealNews() returned %d articles, want 3", len(got))
	}
}

func TestFetchRealNews_EmptyKeywordsIsNoOp(t *testing.T) {
	feed := testutil.NewMockNewsProvider("feed", []provider.Article{
		article("A", "https://example.com/a", time.Now()),
	}, nil)

	agg := NewAggregator(feed, nil, newStore())

	got, err := agg.FetchRealNews(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("FetchRealNews() returned unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("FetchRealNews(nil keywords) = %+v, want nil", got)
	}
	if calls := feed.Calls.Load(); calls != 0 {
		t.Errorf("feed called %d times for empty keywords, want 0", calls)
	}
}

func TestFetchRealNews_SecondCallHitsCache(t *testing.T) {
	feed := testutil.NewMockNewsProvider("feed", []provider.Article{
		article("A", "https://example.com/a", time.Now()),
	}, nil)

	agg := NewAggregator(feed, nil, newStore())
	ctx := context.Background()

	if _, err := agg.FetchRealNews(ctx, []string{"topic"}, 5); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := agg.FetchRealNews(ctx, []string{"topic"}, 5); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if calls := feed.Calls.Load(); calls != 1 {
		t.Errorf("feed called %d times, want 1 (second call should hit the cache)", calls)
	}
}

func TestFetchRealNews_FillsRelevance(t *testing.T) {
	now := time.Now()
	feed := testutil.NewMockNewsProvider("feed", []provider.Article{
		{Title: "Bitcoin hits new high as bitcoin ETFs surge", URL: "https://example.com/a", PublishedAt: now},
	}, nil)

	agg := NewAggregator(feed, nil, newStore())

	got, err := agg.FetchRealNews(context.Background(), []string{"bitcoin"}, 5)
	if err != nil {
		t.Fatalf("FetchRealNews() returned unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("FetchRealNews() returned %d articles, want 1", len(got))
	}
	if got[0].Relevance != 1 {
		t.Errorf("Relevance = %v, want 1 (two matches for one keyword, clamped)", got[0].Relevance)
	}
}
