// Package sentiment scores free text with a weighted-word lexicon and
// classifies it into positive, negative, or neutral.
package sentiment

import (
	"strings"
	"unicode"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
)

const (
	ClassPositive = "positive"
	ClassNegative = "negative"
	ClassNeutral  = "neutral"
)

// lexicon maps lower-cased tokens to integer sentiment weights,
// AFINN-style. Unknown tokens score zero.
var lexicon = map[string]int{
	"amazing": 4, "awesome": 4, "excellent": 3, "outstanding": 5,
	"great": 3, "good": 3, "love": 3, "best": 3, "win": 4, "wins": 4,
	"winning": 4, "strong": 2, "bullish": 3, "growth": 2, "gain": 2,
	"gains": 2, "profit": 2, "profits": 2, "rally": 2, "surge": 2,
	"soar": 3, "soars": 3, "up": 1, "rise": 1, "rises": 1, "beat": 2,
	"beats": 2, "success": 2, "successful": 3, "optimistic": 2,
	"positive": 2, "happy": 3, "breakthrough": 3, "record": 1,
	"improve": 2, "improved": 2, "improving": 2, "upgrade": 2,
	"upgraded": 2, "momentum": 1, "boom": 2, "recovery": 2,

	"terrible": -3, "awful": -3, "horrible": -3, "worst": -3,
	"bad": -3, "hate": -3, "lose": -3, "loses": -3, "losing": -3,
	"loss": -3, "losses": -3, "weak": -2, "bearish": -3, "crash": -2,
	"crashes": -2, "plunge": -3, "plunges": -3, "drop": -1, "drops": -1,
	"down": -1, "fall": -1, "falls": -1, "falling": -1, "decline": -2,
	"declines": -2, "miss": -2, "misses": -2, "fail": -2, "fails": -2,
	"failure": -2, "fear": -2, "fears": -2, "panic": -3, "risk": -2,
	"risks": -2, "warning": -3, "warn": -2, "warns": -2, "fraud": -4,
	"scandal": -3, "lawsuit": -2, "downgrade": -2, "downgraded": -2,
	"bankrupt": -3, "bankruptcy": -3, "recession": -2, "crisis": -3,
	"sell-off": -2, "selloff": -2, "negative": -2, "pessimistic": -2,
	"doubt": -1, "doubts": -1, "concern": -2, "concerns": -2,
}

// Analyze scores text and classifies it. Score is the lexicon sum over
// tokens; comparative is the score normalized by token count.
func Analyze(text string) provider.SentimentResult {
	tokens := tokenize(text)

	score := 0
	for _, tok := range tokens {
		score += lexicon[tok]
	}

	comparative := 0.0
	if len(tokens) > 0 {
		comparative = float64(score) / float64(len(tokens))
	}

	return provider.SentimentResult{
		Score:          score,
		Comparative:    comparative,
		Classification: Classify(score),
	}
}

// Classify maps an integer score to the three-way label: positive above
// zero, negative below, neutral at exactly zero.
func Classify(score int) string {
	switch {
	case score > 0:
		return ClassPositive
	case score < 0:
		return ClassNegative
	default:
		return ClassNeutral
	}
}

// ClassifyComparative maps an averaged comparative value to a label using
// a +-0.1 dead zone.
func ClassifyComparative(comparative float64) string {
	switch {
	case comparative > 0.1:
		return ClassPositive
	case comparative < -0.1:
		return ClassNegative
	default:
		return ClassNeutral
	}
}

// Aggregate summarizes the classifications of a collection. Ties,
// including the empty collection, resolve to neutral; fractions are
// count/total with total floored at 1.
type Aggregate struct {
	Overall  string  `json:"overall"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Summarize counts classifications and reports the majority label with
// per-bucket fractions.
func Summarize(results []provider.SentimentResult) Aggregate {
	var pos, neg, neu int
	for _, r := range results {
		switch r.Classification {
		case ClassPositive:
			pos++
		case ClassNegative:
			neg++
		default:
			neu++
		}
	}

	total := len(results)
	if total < 1 {
		total = 1
	}

	overall := ClassNeutral
	if pos > neg {
		overall = ClassPositive
	} else if neg > pos {
		overall = ClassNegative
	}

	return Aggregate{
		Overall:  overall,
		Positive: float64(pos) / float64(total),
		Negative: float64(neg) / float64(total),
		Neutral:  float64(neu) / float64(total),
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}
