package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"paperbroker/internal/models"
)

// Price source tags recorded against resolved prices.
const (
	SourceClientProvided = "client-provided"
	SourceCached         = "cached"
	SourceRealtime       = "realtime"
	SourceMockFixed      = "mock-fixed"
	SourceMockRandom     = "mock-random"
)

// QuoteProvider fetches a live quote from an external market-data source.
type QuoteProvider interface {
	// GetQuote returns the current price for a ticker. A source reporting a
	// zero or missing current price is "no data" and must return an error.
	GetQuote(ctx context.Context, ticker string) (decimal.Decimal, time.Time, error)
}

// PriceCacheService is the shared quote cache. Upsert is atomic per ticker;
// no cross-ticker coordination is required.
type PriceCacheService interface {
	GetCachedQuote(ctx context.Context, ticker string) (*models.PriceQuote, error)
	UpsertQuote(ctx context.Context, quote *models.PriceQuote) error
}

// PriceService resolves an execution price for a ticker. Resolution never
// fails: the mock tier guarantees a price for every ticker.
type PriceService interface {
	Resolve(ctx context.Context, ticker string, clientPrice *decimal.Decimal) (decimal.Decimal, string)
}

// TradeService is the trade execution engine: it resolves a price, validates
// the trade against portfolio state and applies the ledger mutations
// atomically.
type TradeService interface {
	ExecuteTrade(ctx context.Context, portfolioID string, req *models.TradeRequest) (*models.Trade, error)
	GetTrade(ctx context.Context, portfolioID, tradeID string) (*models.Trade, error)
	ListTrades(ctx context.Context, portfolioID string, limit, offset int) ([]*models.Trade, error)
	// DeleteTrade removes a trade record administratively. It does not
	// reverse the trade's cash or holding effects.
	DeleteTrade(ctx context.Context, portfolioID, tradeID string) error
}

// PortfolioService covers portfolio lifecycle and read access to holdings.
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, userID string, limit, offset int) ([]*models.Portfolio, error)
	RenamePortfolio(ctx context.Context, id, name string) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) error
	ListHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error)
}
