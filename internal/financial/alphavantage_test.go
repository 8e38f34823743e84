package financial

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/ratelimit"
)

func TestAlphaVantageProvider_FetchQuotes_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("function") != "GLOBAL_QUOTE" {
			t.Errorf("function = %q, want GLOBAL_QUOTE", r.URL.Query().Get("function"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"Global Quote": {
				"01. symbol": "AAPL",
				"02. open": "175.50",
				"03. high": "178.75",
				"04. low": "174.25",
				"05. price": "178.23",
				"06. volume": "50000000",
				"07. latest trading day": "2024-01-15",
				"08. previous close": "176.50",
				"09. change": "1.73",
				"10. change percent": "0.9802%"
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	p := NewAlphaVantageProvider("test_key", server.URL, time.Second, ratelimit.NewUnlimited())

	quotes, err := p.FetchQuotes(context.Background(), []string{"AAPL"})
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
	if q.ChangePercent != 0.9802 {
		t.Errorf("ChangePercent = %v, want 0.9802", q.ChangePercent)
	}
	if q.Volume != 50000000 {
		t.Errorf("Volume = %d, want 50000000", q.Volume)
	}
	if q.Source != "alphavantage" {
		t.Errorf("Source = %q, want alphavantage", q.Source)
	}
}

func TestAlphaVantageProvider_FetchQuotes_ChangePercentFromPreviousClose(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"Global Quote": {
				"01. symbol": "AAPL",
				"05. price": "102.00",
				"08. previous close": "100.00"
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	p := NewAlphaVantageProvider("test_key", server.URL, time.Second, ratelimit.NewUnlimited())

	quotes, err := p.FetchQuotes(context.Background(), []string{"AAPL"})
	if err != nil {
		t.Fatalf("FetchQuotes() returned unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("FetchQuotes() returned %d quotes, want 1", len(quotes))
	}

	// (102 - 100) / 100 * 100 = 2
	if quotes[0].ChangePercent != 2.0 {
		t.Errorf("ChangePercent = %v, want 2.0", quotes[0].ChangePercent)
	}
}

func TestAlphaVantageProvider_FetchQuotes_EmptyQuoteSkipped(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"Global Quote": {}}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	p := NewAlphaVantageProvider("test_key", server.URL, time.Second, ratelimit.NewUnlimited())

	quotes, err := p.FetchQuotes(context.Background(), []string{"ZZZZ"})
	if err != nil {
		t.Fatalf("FetchQuotes() returned unexpected error: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("FetchQuotes() = %+v, want empty for unknown symbol", quotes)
	}
}

func TestAlphaVantageProvider_FetchQuotes_NotConfigured(t *testing.T) {
	p := NewAlphaVantageProvider("", "http://localhost", time.Second, ratelimit.NewUnlimited())

	_, err := p.FetchQuotes(context.Background(), []string{"AAPL"})
	if !errors.Is(err, provider.ErrNotConfigured) {
		t.Errorf("FetchQuotes() error = %v, want ErrNotConfigured", err)
	}
}
