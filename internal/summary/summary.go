// Package summary builds short extractive digests from ranked article
// sets. The caller is responsible for relevance-sorting beforehand; the
// digest simply works down the list it is given.
package summary

import (
	"strings"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

const (
	// maxArticles bounds how deep into the ranked list the digest looks
	maxArticles = 25

	// headline caps shrink as the digest fills up
	firstHeadlineCap  = 110
	secondHeadlineCap = 100
	thirdHeadlineCap  = 95

	// snippets shorter than this carry no information worth quoting
	minSnippetLen = 40
	snippetCap    = 140

	// maxDigestLen hard-caps the assembled digest
	maxDigestLen = 680

	// shortDigestLen is the threshold below which the digest keeps
	// appending material
	shortDigestLen = 400

	lead     = "Based on the latest coverage:"
	sentinel = "Recent coverage exists but no usable headlines were found."
)

// ForNote builds a digest from the top articles. Returns "" for an empty
// article list and a sentinel message when every title is empty.
func ForNote(articles []provider.Article, noteContext string) string {
	if len(articles) == 0 {
		return ""
	}
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	titles := make([]string, 0, len(articles))
	snippets := make([]string, 0, len(articles))
	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if seen[key] {
			continue
		}
		seen[key] = true
		titles = append(titles, title)
		snippets = append(snippets, strings.TrimSpace(a.Snippet))
	}

	if len(titles) == 0 {
		return sentinel
	}

	var b strings.Builder
	b.WriteString(lead)
	b.WriteString(" ")
	b.WriteString(sentence(clip(titles[0], firstHeadlineCap)))

	if len(titles) > 1 {
		b.WriteString(" ")
		b.WriteString(sentence(clip(titles[1], secondHeadlineCap)))
	}

	if b.Len() < shortDigestLen {
		for _, s := range snippets {
			if len(s) > minSnippetLen {
				b.WriteString(" ")
				b.WriteString(sentence(clip(s, snippetCap)))
				break
			}
		}
	}

	if len(titles) > 2 && b.Len() < shortDigestLen {
		b.WriteString(" ")
		b.WriteString(sentence(clip(titles[2], thirdHeadlineCap)))
	}

	digest := b.String()
	if len(digest) > maxDigestLen {
		digest = digest[:maxDigestLen-3] + "..."
	}
	return digest
}

// clip truncates s to max characters, appending an ellipsis when it cuts.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}

// sentence period-terminates s unless it already ends in punctuation.
func sentence(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
