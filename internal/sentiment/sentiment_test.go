package sentiment

import (
	"testing"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, ClassNeutral},
		{1, ClassPositive},
		{-1, ClassNegative},
		{10, ClassPositive},
		{-10, ClassNegative},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive", "amazing growth and strong gains", ClassPositive},
		{"negative", "terrible losses after the crash", ClassNegative},
		{"neutral", "the company announced a meeting", ClassNeutral},
		{"empty", "", ClassNeutral},
		{"mixed cancels", "good bad", ClassNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			if got.Classification != tt.want {
				t.Errorf("Analyze(%q).Classification = %q, want %q", tt.text, got.Classification, tt.want)
			}
		})
	}
}

func TestAnalyze_Comparative(t *testing.T) {
	got := Analyze("great great great great")
	if got.Score != 12 {
		t.Errorf("Score = %d, want 12", got.Score)
	}
	if got.Comparative != 3.0 {
		t.Errorf("Comparative = %f, want 3.0", got.Comparative)
	}
}

func TestAnalyze_CaseInsensitive(t *testing.T) {
	lower := Analyze("bullish rally")
	upper := Analyze("BULLISH RALLY")
	if lower.Score != upper.Score {
		t.Errorf("case changed the score: %d vs %d", lower.Score, upper.Score)
	}
}

func TestClassifyComparative(t *testing.T) {
	tests := []struct {
		comparative float64
		want        string
	}{
		{0.11, ClassPositive},
		{0.1, ClassNeutral},
		{0, ClassNeutral},
		{-0.1, ClassNeutral},
		{-0.11, ClassNegative},
	}

	for _, tt := range tests {
		if got := ClassifyComparative(tt.comparative); got != tt.want {
			t.Errorf("ClassifyComparative(%v) = %q, want %q", tt.comparative, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	res := func(class string) provider.SentimentResult {
		return provider.SentimentResult{Classification: class}
	}

	tests := []struct {
		name        string
		results     []provider.SentimentResult
		wantOverall string
		wantPos     float64
	}{
		{
			name:        "majority positive",
			results:     []provider.SentimentResult{res(ClassPositive), res(ClassPositive), res(ClassNegative), res(ClassNeutral)},
			wantOverall: ClassPositive,
			wantPos:     0.5,
		},
		{
			name:        "majority negative",
			results:     []provider.SentimentResult{res(ClassNegative), res(ClassNegative), res(ClassPositive)},
			wantOverall: ClassNegative,
			wantPos:     1.0 / 3.0,
		},
		{
			name:        "tie resolves neutral",
			results:     []provider.SentimentResult{res(ClassPositive), res(ClassNegative)},
			wantOverall: ClassNeutral,
			wantPos:     0.5,
		},
		{
			name:        "empty collection",
			results:     nil,
			wantOverall: ClassNeutral,
			wantPos:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.results)
			if got.Overall != tt.wantOverall {
				t.Errorf("Overall = %q, want %q", got.Overall, tt.wantOverall)
			}
			if got.Positive != tt.wantPos {
				t.Errorf("Positive = %v, want %v", got.Positive, tt.wantPos)
			}
		})
	}
}

func TestSummarize_FractionsSumToOne(t *testing.T) {
	results := []provider.SentimentResult{
		{Classification: ClassPositive},
		{Classification: ClassNegative},
		{Classification: ClassNeutral},
		{Classification: ClassNeutral},
	}

	got := Summarize(results)
	sum := got.Positive + got.Negative + got.Neutral
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("fractions sum to %v, want 1", sum)
	}
}
