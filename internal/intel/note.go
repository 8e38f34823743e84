package intel

import (
	"time"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/social"
)

// FinancialKind tags the sub-kind of an attached financial payload.
type FinancialKind string

const (
	KindStock  FinancialKind = "stock"
	KindCrypto FinancialKind = "crypto"
)

// NewsData is the news payload attached to a note.
type NewsData struct {
	Keywords  []string           `json:"keywords"`
	Articles  []provider.Article `json:"articles"`
	Summary   string             `json:"summary"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

// FinancialData is the financial payload attached to a note.
type FinancialData struct {
	Kind      FinancialKind         `json:"kind"`
	Quotes    []provider.PriceQuote `json:"quotes"`
	FetchedAt time.Time             `json:"fetchedAt"`
}

// EarlySignal is an intelligence-platform payload reporting how far a
// market move ran ahead of news coverage.
type EarlySignal struct {
	Topic       string  `json:"topic"`
	LeadMinutes float64 `json:"leadMinutes"`
}

// NoteSnapshot is a read-only view of one note's attached domain
// payloads. Every field is optional; each correlation rule guards on the
// presence of the fields it needs and assumes nothing about the rest.
type NoteSnapshot struct {
	ID          string            `json:"id"`
	Deadline    *time.Time        `json:"deadline,omitempty"`
	News        *NewsData         `json:"news,omitempty"`
	Financial   *FinancialData    `json:"financial,omitempty"`
	Social      *social.Result    `json:"social,omitempty"`
	Markets     []provider.Market `json:"markets,omitempty"`
	EarlySignal *EarlySignal      `json:"earlySignal,omitempty"`
}

// Alert flags a cross-domain condition that needs attention.
type Alert struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Acknowledged bool      `json:"acknowledged"`
}

// Insight records a cross-domain observation with a confidence level.
type Insight struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Confidence  float64   `json:"confidence"`
	Timestamp   time.Time `json:"timestamp"`
}

// Intelligence is the engine's output, recomputed fresh on every
// invocation and never merged with prior results.
type Intelligence struct {
	Correlation map[string]any `json:"correlation"`
	Alerts      []Alert        `json:"alerts"`
	Insights    []Insight      `json:"insights"`
}
