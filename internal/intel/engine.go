// Package intel correlates the domain payloads already attached to one
// note and surfaces cross-domain alerts and insights. The engine is
// stateless and pure over its input snapshot: no I/O, no prior state.
package intel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omondistanley/keep-notes-app-sub000/internal/sentiment"
)

const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Engine runs a fixed sequence of independent correlation rules. Each
// rule guards on the presence of the fields it needs; no rule assumes
// another rule ran.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an Engine with an injectable clock for
// deterministic timestamps in tests.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Generate computes cross-domain intelligence for one note snapshot.
func (e *Engine) Generate(note NoteSnapshot) Intelligence {
	out := Intelligence{
		Correlation: make(map[string]any),
		Alerts:      []Alert{},
		Insights:    []Insight{},
	}

	e.sentimentDivergence(note, &out)
	e.marketMisalignment(note, &out)
	e.deadlineAlignment(note, &out)
	e.consensus(note, &out)
	e.earlySignal(note, &out)

	return out
}

// sentimentDivergence compares the social sentiment label against a
// sentiment derived from the news articles. A mismatch means the crowd
// and the coverage disagree.
func (e *Engine) sentimentDivergence(note NoteSnapshot, out *Intelligence) {
	if note.Social == nil || note.News == nil || len(note.News.Articles) == 0 {
		return
	}

	newsLabel := newsSentiment(note.News)
	socialLabel := note.Social.Sentiment.Overall

	out.Correlation["newsSentiment"] = newsLabel
	out.Correlation["socialSentiment"] = socialLabel

	if newsLabel != socialLabel {
		out.Alerts = append(out.Alerts, Alert{
			ID:        uuid.NewString(),
			Type:      "sentiment_divergence",
			Severity:  SeverityMedium,
			Message:   fmt.Sprintf("Social sentiment is %s while news sentiment is %s", socialLabel, newsLabel),
			Timestamp: e.now(),
		})
	}
}

// marketMisalignment flags prediction markets pricing an outcome the
// price action contradicts.
func (e *Engine) marketMisalignment(note NoteSnapshot, out *Intelligence) {
	if len(note.Markets) == 0 || note.Financial == nil || len(note.Financial.Quotes) == 0 {
		return
	}

	prob, ok := averageYesProbability(note)
	if !ok {
		return
	}
	change := latestChangePercent(note.Financial)

	out.Correlation["avgYesProbability"] = prob
	out.Correlation["priceChangePercent"] = change

	misaligned := (prob > 0.7 && change < -2) || (prob < 0.3 && change > 2)
	if misaligned {
		out.Alerts = append(out.Alerts, Alert{
			ID:       uuid.NewString(),
			Type:     "market_misalignment",
			Severity: SeverityHigh,
			Message: fmt.Sprintf("Prediction markets price the outcome at %.0f%% but the price moved %.1f%%",
				prob*100, change),
			Timestamp: e.now(),
		})
	}
}

// deadlineAlignment surfaces markets resolving before the note's own
// deadline.
func (e *Engine) deadlineAlignment(note NoteSnapshot, out *Intelligence) {
	if note.Deadline == nil || len(note.Markets) == 0 {
		return
	}

	count := 0
	for _, m := range note.Markets {
		if m.EndDate.IsZero() {
			continue
		}
		if !m.EndDate.After(*note.Deadline) {
			count++
		}
	}

	out.Correlation["marketsBeforeDeadline"] = count

	if count > 0 {
		out.Insights = append(out.Insights, Insight{
			ID:          uuid.NewString(),
			Type:        "deadline_market_alignment",
			Description: fmt.Sprintf("%d prediction market(s) resolve on or before this note's deadline", count),
			Confidence:  0.8,
			Timestamp:   e.now(),
		})
	}
}

// consensus blends social sentiment with the prediction-market
// probability into a five-bucket label, alerting only on the two strong
// buckets.
func (e *Engine) consensus(note NoteSnapshot, out *Intelligence) {
	if note.Social == nil || len(note.Markets) == 0 {
		return
	}

	prob, ok := averageYesProbability(note)
	if !ok {
		return
	}

	var socialScalar float64
	switch note.Social.Sentiment.Overall {
	case sentiment.ClassPositive:
		socialScalar = 0.7
	case sentiment.ClassNegative:
		socialScalar = 0.3
	default:
		socialScalar = 0.5
	}

	avg := (socialScalar + prob) / 2

	var label string
	switch {
	case avg > 0.75:
		label = "strong_bullish"
	case avg > 0.6:
		label = "bullish"
	case avg < 0.25:
		label = "strong_bearish"
	case avg < 0.4:
		label = "bearish"
	default:
		label = "neutral"
	}

	out.Correlation["consensus"] = label
	out.Correlation["consensusScore"] = avg

	if label == "strong_bullish" || label == "strong_bearish" {
		out.Alerts = append(out.Alerts, Alert{
			ID:       uuid.NewString(),
			Type:     "strong_consensus",
			Severity: SeverityHigh,
			Message: fmt.Sprintf("Social sentiment and prediction markets agree: %s (%.2f)",
				strings.ReplaceAll(label, "_", " "), avg),
			Timestamp: e.now(),
		})
	}
}

// earlySignal reports when a linked intelligence platform saw the move
// before the news did.
func (e *Engine) earlySignal(note NoteSnapshot, out *Intelligence) {
	if note.EarlySignal == nil || note.EarlySignal.LeadMinutes <= 0 {
		return
	}

	out.Insights = append(out.Insights, Insight{
		ID:   uuid.NewString(),
		Type: "early_signal",
		Description: fmt.Sprintf("Market activity led news coverage by %.0f minutes on %q",
			note.EarlySignal.LeadMinutes, note.EarlySignal.Topic),
		Confidence: 0.9,
		Timestamp:  e.now(),
	})
}

// newsSentiment scores every article's title+snippet, averages the
// comparative values, and classifies with the same +-0.1 dead zone used
// for averaged comparatives elsewhere.
func newsSentiment(news *NewsData) string {
	total := 0.0
	for _, a := range news.Articles {
		total += sentiment.Analyze(a.Title + " " + a.Snippet).Comparative
	}
	avg := total / float64(len(news.Articles))
	return sentiment.ClassifyComparative(avg)
}

// averageYesProbability averages the probability of the "yes"-named
// outcome across all linked markets.
func averageYesProbability(note NoteSnapshot) (float64, bool) {
	total := 0.0
	count := 0
	for _, m := range note.Markets {
		for _, o := range m.Outcomes {
			if strings.Contains(strings.ToLower(o.Name), "yes") {
				total += o.Probability
				count++
			}
		}
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

// latestChangePercent picks the changePercent of the most recent quote.
func latestChangePercent(fin *FinancialData) float64 {
	latest := fin.Quotes[0]
	for _, q := range fin.Quotes[1:] {
		if q.Timestamp.After(latest.Timestamp) {
			latest = q
		}
	}
	return latest.ChangePercent
}
