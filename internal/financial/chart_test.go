package financial

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omondistanley/keep-notes-app-sub000/internal/ratelimit"
)

func TestChartProvider_FetchQuotes_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {
						"symbol": "AAPL",
						"regularMarketPrice": 178.23,
						"chartPreviousClose": 176.50,
						"regularMarketVolume": 50000000,
						"regularMarketDayHigh": 178.75,
						"regularMarketDayLow": 174.25,
						"regularMarketTime": 1705334400
					}
				}],
				"error": null
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	p := NewChartProvider(server.URL, time.Second, ratelimit.NewUnlimited())

	quotes, err := p.FetchQuotes(context.Background(), []string{"aapl"})
	if err != nil {
		t.Fatalf("FetchQuotes() returned unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("FetchQuotes() returned %d quotes, want 1", len(quotes))
	}

	q := quotes[0]
	if q.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", q.Symbol)
	}
	if q.Price != 178.23 {
		t.Errorf("Price = %v, want 178.23", q.Price)
	}

	// changePercent = (178.23 - 176.50) / 176.50 * 100
	wantChange := (178.23 - 176.50) / 176.50 * 100
	if diff := q.ChangePercent - wantChange; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ChangePercent = %v, want %v", q.ChangePercent, wantChange)
	}
}

func TestChartProvider_FetchQuotes_UnknownSymbolSkipped(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"chart": {"result": [], "error": {"code": "Not Found", "description": "No data found"}}}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	p := NewChartProvider(server.URL, time.Second, ratelimit.NewUnlimited())

	quotes, err := p.FetchQuotes(context.Background(), []string{"ZZZZ"})
	if err != nil {
		t.Fatalf("FetchQuotes() returned unexpected error: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("FetchQuotes() = %+v, want empty", quotes)
	}
}

func TestChartProvider_FetchQuotes_ServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	p := NewChartProvider(server.URL, time.Second, ratelimit.NewUnlimited())

	_, err := p.FetchQuotes(context.Background(), []string{"AAPL"})
	if err == nil {
		t.Error("FetchQuotes() expected error, got nil")
	}
}
