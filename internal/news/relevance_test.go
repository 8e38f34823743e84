package news

import (
	"testing"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

func TestRelevance(t *testing.T) {
	tests := []struct {
		name     string
		article  provider.Article
		keywords []string
		want     float64
	}{
		{
			name:     "single keyword single match",
			article:  provider.Article{Title: "Bitcoin rallies", Snippet: "markets react"},
			keywords: []string{"bitcoin"},
			want:     1,
		},
		{
			name:     "no match",
			article:  provider.Article{Title: "Weather report", Snippet: "sunny skies"},
			keywords: []string{"bitcoin"},
			want:     0,
		},
		{
			name:     "half the keywords match",
			article:  provider.Article{Title: "Bitcoin news", Snippet: ""},
			keywords: []string{"bitcoin", "ethereum"},
			want:     0.5,
		},
		{
			name:     "case insensitive",
			article:  provider.Article{Title: "BITCOIN Surges", Snippet: ""},
			keywords: []string{"Bitcoin"},
			want:     1,
		},
		{
			name:     "clamped at one",
			article:  provider.Article{Title: "bitcoin bitcoin bitcoin", Snippet: "bitcoin"},
			keywords: []string{"bitcoin"},
			want:     1,
		},
		{
			name:     "empty keywords",
			article:  provider.Article{Title: "anything"},
			keywords: nil,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relevance(tt.article, tt.keywords)
			if got != tt.want {
				t.Errorf("Relevance() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Relevance() = %v, outside [0,1]", got)
			}
		})
	}
}
