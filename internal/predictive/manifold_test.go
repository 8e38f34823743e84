package predictive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const manifoldResponse = `[
  {
    "id": "abc",
    "question": "Will Bitcoin close above $100k this year?",
    "outcomeType": "BINARY",
    "probability": 0.25,
    "volume": 9000,
    "closeTime": 1735689600000,
    "isResolved": false
  },
  {
    "id": "def",
    "question": "Who wins the election?",
    "outcomeType": "MULTIPLE_CHOICE",
    "volume": 500,
    "closeTime": 1735689600000,
    "isResolved": false
  },
  {
    "id": "ghi",
    "question": "Resolved bitcoin market",
    "outcomeType": "BINARY",
    "probability": 0.99,
    "volume": 100,
    "closeTime": 1700000000000,
    "isResolved": true
  }
]`

func TestManifoldFetchMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/search-markets" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("term") != "bitcoin election" {
			t.Errorf("term = %q, want joined keywords", r.URL.Query().Get("term"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(manifoldResponse))
	}))
	defer server.Close()

	p := NewManifoldProvider(server.URL, 5*time.Second)

	markets, err := p.FetchMarkets(context.Background(), []string{"bitcoin", "election"}, 10)
	if err != nil {
		t.Fatalf("FetchMarkets() returned unexpected error: %v", err)
	}

	// def is multiple choice, ghi is resolved
	if len(markets) != 1 {
		t.Fatalf("FetchMarkets() returned %d markets, want 1", len(markets))
	}

	m := markets[0]
	if m.ID != "abc" || m.Source != "manifold" {
		t.Errorf("market = %+v, want abc from manifold", m)
	}
	if len(m.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(m.Outcomes))
	}
	if m.Outcomes[0].Name != "Yes" || m.Outcomes[0].Probability != 0.25 {
		t.Errorf("Outcomes[0] = %+v, want Yes/0.25", m.Outcomes[0])
	}
	if m.Outcomes[1].Probability != 0.75 {
		t.Errorf("Outcomes[1].Probability = %v, want 0.75", m.Outcomes[1].Probability)
	}
	wantEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !m.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", m.EndDate, wantEnd)
	}
}

func TestManifoldFetchMarkets_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	p := NewManifoldProvider(server.URL, 5*time.Second)

	if _, err := p.FetchMarkets(context.Background(), []string{"bitcoin"}, 10); err == nil {
		t.Error("FetchMarkets() returned nil error for HTTP 418")
	}
}
