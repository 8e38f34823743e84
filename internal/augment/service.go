// Package augment is the service facade over the domain aggregators. It
// exposes the operations the transport layer calls and a fan-out that
// fetches every domain for one note concurrently.
package augment

import (
	"context"

	"github.com/omondistanley/keep-notes-app-sub000/internal/financial"
	"github.com/omondistanley/keep-notes-app-sub000/internal/intel"
	"github.com/omondistanley/keep-notes-app-sub000/internal/news"
	"github.com/omondistanley/keep-notes-app-sub000/internal/predictive"
	"github.com/omondistanley/keep-notes-app-sub000/internal/provider"
	"github.com/omondistanley/keep-notes-app-sub000/internal/social"
	"github.com/omondistanley/keep-notes-app-sub000/internal/summary"
)

// Service wires the domain aggregators and the correlation engine
// together. All fields are explicitly constructed and injected; there is
// no package-level instance.
type Service struct {
	financial  *financial.Aggregator
	news       *news.Aggregator
	social     *social.Aggregator
	predictive *predictive.Aggregator
	engine     *intel.Engine
}

// New creates a Service. predictive may be nil when no market platform
// is wanted.
func New(fin *financial.Aggregator, n *news.Aggregator, soc *social.Aggregator, pred *predictive.Aggregator, engine *intel.Engine) *Service {
	return &Service{
		financial:  fin,
		news:       n,
		social:     soc,
		predictive: pred,
		engine:     engine,
	}
}

// FetchStockPrices returns quotes for the given stock symbols.
func (s *Service) FetchStockPrices(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	return s.financial.FetchStockPrices(ctx, symbols)
}

// FetchCryptoPrices returns quotes for the given crypto symbols.
func (s *Service) FetchCryptoPrices(ctx context.Context, symbols []string) ([]provider.PriceQuote, error) {
	return s.financial.FetchCryptoPrices(ctx, symbols)
}

// FetchRealNews returns up to count merged articles for the keywords.
func (s *Service) FetchRealNews(ctx context.Context, keywords []string, count int) ([]provider.Article, error) {
	return s.news.FetchRealNews(ctx, keywords, count)
}

// SummarizeArticlesForNote builds a short digest from a ranked article set.
func (s *Service) SummarizeArticlesForNote(articles []provider.Article, noteContext string) string {
	return summary.ForNote(articles, noteContext)
}

// SearchTweets returns merged, sentiment-annotated posts for the keywords.
func (s *Service) SearchTweets(ctx context.Context, keywords []string, opts social.SearchOptions) (social.Result, error) {
	return s.social.SearchPosts(ctx, keywords, opts)
}

// GenerateCrossDomainIntelligence correlates the note's attached domain
// payloads.
func (s *Service) GenerateCrossDomainIntelligence(note intel.NoteSnapshot) intel.Intelligence {
	return s.engine.Generate(note)
}
