package augment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/omondistanley/keep-notes-app-sub000/internal/intel"
	"github.com/omondistanley/keep-notes-app-sub000/internal/social"
	"github.com/omondistanley/keep-notes-app-sub000/internal/summary"
)

// Request names what one note wants fetched.
type Request struct {
	NoteID        string
	Keywords      []string
	StockSymbols  []string
	CryptoSymbols []string
	NewsCount     int
	MaxPosts      int
	Deadline      *time.Time
}

// domainResult is sent by each domain worker to the collector.
type domainResult struct {
	domain string
	err    error
}

// Augment fetches every requested domain for one note concurrently,
// attaches the payloads to a snapshot, and runs the correlation engine
// once at least two domains produced data. Per-domain failures are
// logged, never fatal: absence of data is a normal outcome.
func (s *Service) Augment(ctx context.Context, req Request) (intel.NoteSnapshot, intel.Intelligence) {
	if req.NewsCount <= 0 {
		req.NewsCount = 10
	}
	if req.MaxPosts <= 0 {
		req.MaxPosts = 20
	}

	note := intel.NoteSnapshot{ID: req.NoteID, Deadline: req.Deadline}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(chan domainResult, 4)
	)

	run := func(domain string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- domainResult{domain: domain, err: fn()}
		}()
	}

	if len(req.Keywords) > 0 {
		run("news", func() error {
			articles, err := s.news.FetchRealNews(ctx, req.Keywords, req.NewsCount)
			if err != nil || len(articles) == 0 {
				return err
			}
			mu.Lock()
			note.News = &intel.NewsData{
				Keywords:  req.Keywords,
				Articles:  articles,
				Summary:   summary.ForNote(articles, req.NoteID),
				FetchedAt: time.Now(),
			}
			mu.Unlock()
			return nil
		})

		run("social", func() error {
			result, err := s.social.SearchPosts(ctx, req.Keywords, social.SearchOptions{MaxResults: req.MaxPosts})
			if err != nil || len(result.Posts) == 0 {
				return err
			}
			mu.Lock()
			note.Social = &result
			mu.Unlock()
			return nil
		})

		if s.predictive != nil {
			run("predictive", func() error {
				markets, err := s.predictive.FetchMarkets(ctx, req.Keywords, 10)
				if err != nil || len(markets) == 0 {
					return err
				}
				mu.Lock()
				note.Markets = markets
				mu.Unlock()
				return nil
			})
		}
	}

	if len(req.StockSymbols) > 0 || len(req.CryptoSymbols) > 0 {
		run("financial", func() error {
			quotes, err := s.financial.FetchStockPrices(ctx, req.StockSymbols)
			kind := intel.KindStock
			if len(quotes) == 0 {
				quotes, err = s.financial.FetchCryptoPrices(ctx, req.CryptoSymbols)
				kind = intel.KindCrypto
			}
			if err != nil || len(quotes) == 0 {
				return err
			}
			mu.Lock()
			note.Financial = &intel.FinancialData{
				Kind:      kind,
				Quotes:    quotes,
				FetchedAt: time.Now(),
			}
			mu.Unlock()
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.err != nil {
			slog.Warn("domain fetch failed", "domain", r.domain, "error", r.err)
		}
	}

	var report intel.Intelligence
	if attachedDomains(note) >= 2 {
		report = s.engine.Generate(note)
	}
	return note, report
}

func attachedDomains(note intel.NoteSnapshot) int {
	count := 0
	if note.News != nil {
		count++
	}
	if note.Financial != nil {
		count++
	}
	if note.Social != nil {
		count++
	}
	if len(note.Markets) > 0 {
		count++
	}
	return count
}
