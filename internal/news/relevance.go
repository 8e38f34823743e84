package news

import (
	"strings"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

// Relevance scores an article against a keyword set: the case-insensitive
// occurrence count of every literal keyword in title+snippet, divided by
// the keyword count, clamped to 1. Used when a provider does not supply
// its own relevance signal.
func Relevance(article provider.Article, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	haystack := strings.ToLower(article.Title + " " + article.Snippet)

	matches := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		matches += strings.Count(haystack, kw)
	}

	score := float64(matches) / float64(len(keywords))
	if score > 1 {
		return 1
	}
	return score
}
