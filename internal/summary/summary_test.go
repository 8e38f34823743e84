package summary

import (
	"strings"
	"testing"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

func TestForNote_EmptyList(t *testing.T) {
	if got := ForNote(nil, "ctx"); got != "" {
		t.Errorf("ForNote(nil) = %q, want empty string", got)
	}
}

func TestForNote_AllTitlesEmpty(t *testing.T) {
	articles := []provider.Article{
		{Title: "", Snippet: "some text"},
		{Title: "   ", Snippet: "more text"},
	}
	got := ForNote(articles, "")
	if got != sentinel {
		t.Errorf("ForNote() = %q, want sentinel message", got)
	}
}

func TestForNote_LeadSentenceAndHeadlines(t *testing.T) {
	articles := []provider.Article{
		{Title: "First headline"},
		{Title: "Second headline"},
	}

	got := ForNote(articles, "")
	if !strings.HasPrefix(got, "Based on the latest coverage:") {
		t.Errorf("ForNote() = %q, want lead sentence prefix", got)
	}
	if !strings.Contains(got, "First headline.") {
		t.Errorf("ForNote() = %q, want period-terminated first headline", got)
	}
	if !strings.Contains(got, "Second headline.") {
		t.Errorf("ForNote() = %q, want second headline", got)
	}
}

func TestForNote_DedupsTitlesCaseInsensitively(t *testing.T) {
	articles := []provider.Article{
		{Title: "Same Headline"},
		{Title: "SAME HEADLINE"},
		{Title: "Different headline"},
	}

	got := ForNote(articles, "")
	if strings.Count(strings.ToLower(got), "same headline") != 1 {
		t.Errorf("ForNote() = %q, want duplicate title collapsed", got)
	}
	if !strings.Contains(got, "Different headline") {
		t.Errorf("ForNote() = %q, want second distinct title", got)
	}
}

func TestForNote_LongHeadlineTruncated(t *testing.T) {
	long := strings.Repeat("word ", 50) // 250 chars
	articles := []provider.Article{{Title: long}}

	got := ForNote(articles, "")
	if !strings.Contains(got, "...") {
		t.Errorf("ForNote() = %q, want ellipsis for truncated headline", got)
	}
}

func TestForNote_IncludesSubstantialSnippet(t *testing.T) {
	articles := []provider.Article{
		{Title: "Headline one", Snippet: "short"},
		{Title: "Headline two", Snippet: "This snippet is comfortably longer than forty characters and should appear."},
	}

	got := ForNote(articles, "")
	if !strings.Contains(got, "comfortably longer") {
		t.Errorf("ForNote() = %q, want the first non-trivial snippet included", got)
	}
}

func TestForNote_HardCap(t *testing.T) {
	long := strings.Repeat("x", 300)
	articles := make([]provider.Article, 10)
	for i := range articles {
		articles[i] = provider.Article{
			Title:   long + string(rune('a'+i)),
			Snippet: long,
		}
	}

	got := ForNote(articles, "")
	if len(got) > 680 {
		t.Errorf("len(ForNote()) = %d, want <= 680", len(got))
	}
}

func TestForNote_LooksAtTopTwentyFiveOnly(t *testing.T) {
	articles := make([]provider.Article, 30)
	for i := range articles {
		articles[i] = provider.Article{Title: ""}
	}
	articles[26] = provider.Article{Title: "Hidden beyond the window"}

	got := ForNote(articles, "")
	if got != sentinel {
		t.Errorf("ForNote() = %q, want sentinel (title past index 25 must be ignored)", got)
	}
}
