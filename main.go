package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/omondistanley/keep-notes-app-sub000/internal/augment"
	"github.com/omondistanley/keep-notes-app-sub000/internal/cache"
	"github.com/omondistanley/keep-notes-app-sub000/internal/config"
	"github.com/omondistanley/keep-notes-app-sub000/internal/financial"
	"github.com/omondistanley/keep-notes-app-sub000/internal/intel"
	"github.com/omondistanley/keep-notes-app-sub000/internal/news"
	"github.com/omondistanley/keep-notes-app-sub000/internal/predictive"
	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/ratelimit"
	"github.com/omondistanley/keep-notes-app-sub000/internal/social"
)

func main() {
	keywordsFlag := flag.String("keywords", "", "comma-separated keywords to augment a note with")
	symbolsFlag := flag.String("symbols", "", "comma-separated stock symbols")
	cryptoFlag := flag.String("crypto", "", "comma-separated crypto symbols")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	svc := buildService(cfg)

	req := augment.Request{
		NoteID:        "cli",
		Keywords:      splitList(*keywordsFlag),
		StockSymbols:  splitList(*symbolsFlag),
		CryptoSymbols: splitList(*cryptoFlag),
	}
	if len(req.Keywords) == 0 && len(req.StockSymbols) == 0 && len(req.CryptoSymbols) == 0 {
		log.Fatal("nothing to do: pass -keywords, -symbols, or -crypto")
	}

	// Add timeout to prevent hanging indefinitely
	fetchCtx, fetchCancel := context.WithTimeout(ctx, 60*time.Second)
	defer fetchCancel()

	fmt.Println("Augmenting note from external sources...")
	fmt.Println("========================================")
	note, report := svc.Augment(fetchCtx, req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(note); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	if len(report.Alerts) > 0 || len(report.Insights) > 0 {
		fmt.Println("---- intelligence ----")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to encode intelligence: %v", err)
		}
	}
}

// buildService constructs the adapter stacks from configuration. A
// missing credential simply leaves that provider returning
// ErrNotConfigured, which the aggregators skip.
func buildService(cfg *config.Config) *augment.Service {
	limiter := ratelimit.New()
	timeout := cfg.RequestTimeout

	stockProviders := []provider.QuoteProvider{
		financial.NewChartProvider(cfg.ChartBaseURL, timeout, limiter),
		financial.NewAlphaVantageProvider(cfg.AlphavantageAPIKey, cfg.AlphavantageBaseURL, timeout, limiter),
		financial.NewFinnhubProvider(cfg.FinnhubAPIKey, cfg.FinnhubBaseURL, timeout, limiter),
	}
	cryptoProvider := financial.NewCoinGeckoProvider(cfg.CoingeckoBaseURL, timeout, limiter)

	fin := financial.NewAggregator(
		stockProviders,
		cryptoProvider,
		cache.New[[]provider.PriceQuote](cfg.FinancialTTL),
	)

	n := news.NewAggregator(
		news.NewFeedProvider(cfg.NewsFeedBaseURL, timeout),
		[]provider.NewsProvider{
			news.NewNewsAPIProvider(cfg.NewsAPIKey, cfg.NewsAPIBaseURL, timeout, limiter),
			news.NewAlphaVantageNewsProvider(cfg.AlphavantageAPIKey, cfg.AlphavantageBaseURL, timeout, limiter),
		},
		cache.New[[]provider.Article](cfg.NewsTTL),
	)

	soc := social.NewAggregator(
		social.NewMirrorProvider([]string{cfg.SocialMirrorHost, cfg.SocialMirrorFallbackHost}, timeout),
		social.NewAPIProvider(cfg.SocialBearerToken, cfg.SocialAPIBaseURL, timeout, limiter),
		cache.New[social.Result](cfg.NewsTTL),
	)

	pred := predictive.NewAggregator(
		[]provider.MarketProvider{
			predictive.NewPolymarketProvider(cfg.PredictiveBaseURL, timeout),
			predictive.NewManifoldProvider(cfg.ManifoldBaseURL, timeout),
		},
		cache.New[[]provider.Market](cfg.NewsTTL),
	)

	return augment.New(fin, n, soc, pred, intel.NewEngine())
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
