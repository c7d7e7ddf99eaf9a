package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "paperbroker/internal/errors"
)

// TradeSide is the direction of a trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Trade is one executed buy or sell, immutable once committed. The only
// lifecycle events are create and administrative delete; corrections are new
// trades, never edits.
type Trade struct {
	ID          string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	PortfolioID string          `json:"portfolio_id" gorm:"column:portfolio_id;type:varchar(255);not null;index"`
	Ticker      string          `json:"ticker" gorm:"column:ticker;type:varchar(20);not null;index"`
	Side        TradeSide       `json:"side" gorm:"column:side;type:varchar(4);not null"`
	Quantity    int64           `json:"quantity" gorm:"column:quantity;not null"`
	Price       decimal.Decimal `json:"price" gorm:"column:price;type:decimal(18,2);not null"`
	PriceSource string          `json:"price_source" gorm:"column:price_source;type:varchar(50);not null"`
	ExecutedAt  time.Time       `json:"executed_at" gorm:"column:executed_at;type:timestamptz;not null;index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;autoCreateTime"`
}

// TableName returns the table name for the Trade model
func (Trade) TableName() string {
	return "trades"
}

// TradeRequest is a proposed trade as it enters the executor. Price is
// optional; when nil the execution price comes from the resolver chain.
type TradeRequest struct {
	Ticker   string           `json:"ticker"`
	Side     TradeSide        `json:"side"`
	Quantity int64            `json:"quantity"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// Validate checks the request before any price resolution or storage work.
func (r *TradeRequest) Validate() error {
	if strings.TrimSpace(r.Ticker) == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	if r.Side != TradeSideBuy && r.Side != TradeSideSell {
		return &apperrors.ErrValidation{Field: "side", Message: "must be BUY or SELL"}
	}
	if r.Quantity <= 0 {
		return &apperrors.ErrValidation{Field: "quantity", Message: "must be positive"}
	}
	if r.Price != nil && !r.Price.IsPositive() {
		return &apperrors.ErrValidation{Field: "price", Message: "must be positive when provided"}
	}
	return nil
}

// NormalizedTicker returns the upper-cased, trimmed ticker symbol.
func (r *TradeRequest) NormalizedTicker() string {
	return strings.ToUpper(strings.TrimSpace(r.Ticker))
}
