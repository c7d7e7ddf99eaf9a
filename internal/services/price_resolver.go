package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paperbroker/internal/models"
)

// quoteFreshness is the window after which a cached quote is no longer
// trusted and must be refreshed.
const quoteFreshness = 60 * time.Second

// priceResolver resolves execution prices through an ordered chain of
// attempts: client price, cache, live quote, deterministic mock. Every
// attempt before the mock may fail and is absorbed; the mock cannot fail, so
// Resolve always produces a price.
type priceResolver struct {
	cache    PriceCacheService
	provider QuoteProvider
	logger   *zap.Logger
	now      func() time.Time
}

// NewPriceResolver creates the tiered price resolution service.
func NewPriceResolver(cache PriceCacheService, provider QuoteProvider, log *zap.Logger) PriceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &priceResolver{
		cache:    cache,
		provider: provider,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// resolveAttempt is one tier of the chain. An error means "no price here,
// try the next tier".
type resolveAttempt func(ctx context.Context, ticker string) (decimal.Decimal, string, error)

func (r *priceResolver) Resolve(ctx context.Context, ticker string, clientPrice *decimal.Decimal) (decimal.Decimal, string) {
	// Client-supplied prices short-circuit the chain. Whether client prices
	// are trusted is the caller's concern, not the resolver's.
	if clientPrice != nil && clientPrice.IsPositive() {
		return clientPrice.Round(2), SourceClientProvided
	}

	chain := []resolveAttempt{
		r.fromCache,
		r.fromLiveQuote,
	}
	for _, attempt := range chain {
		price, source, err := attempt(ctx, ticker)
		if err == nil {
			return price, source
		}
		r.logger.Debug("price tier miss",
			zap.String("ticker", ticker),
			zap.Error(err))
	}

	price, source := MockPrice(ticker)
	r.logger.Debug("falling back to mock price",
		zap.String("ticker", ticker),
		zap.String("source", source),
		zap.String("price", price.String()))
	return price, source
}

func (r *priceResolver) fromCache(ctx context.Context, ticker string) (decimal.Decimal, string, error) {
	quote, err := r.cache.GetCachedQuote(ctx, ticker)
	if err != nil {
		return decimal.Zero, "", err
	}
	if quote == nil {
		return decimal.Zero, "", fmt.Errorf("no cached quote for %s", ticker)
	}
	if !quote.FreshWithin(quoteFreshness, r.now()) {
		return decimal.Zero, "", fmt.Errorf("cached quote for %s is stale", ticker)
	}
	return quote.Price, SourceCached, nil
}

func (r *priceResolver) fromLiveQuote(ctx context.Context, ticker string) (decimal.Decimal, string, error) {
	price, _, err := r.provider.GetQuote(ctx, ticker)
	if err != nil {
		return decimal.Zero, "", err
	}

	// Write back so the next resolution within the freshness window hits
	// the cache. A failed write-back does not invalidate the quote itself.
	if cacheErr := r.cache.UpsertQuote(ctx, &models.PriceQuote{
		Ticker:    ticker,
		Price:     price,
		Source:    SourceRealtime,
		UpdatedAt: r.now(),
	}); cacheErr != nil {
		r.logger.Warn("failed to cache realtime quote",
			zap.String("ticker", ticker),
			zap.Error(cacheErr))
	}
	return price, SourceRealtime, nil
}
