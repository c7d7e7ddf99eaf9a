package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "paperbroker/internal/errors"
)

// Holding is a portfolio's current position in one ticker. A row exists only
// while quantity > 0; closing a position deletes the row. At most one holding
// per (portfolio, ticker) pair.
type Holding struct {
	ID              string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	PortfolioID     string          `json:"portfolio_id" gorm:"column:portfolio_id;type:varchar(255);not null;uniqueIndex:uq_portfolio_ticker"`
	Ticker          string          `json:"ticker" gorm:"column:ticker;type:varchar(20);not null;uniqueIndex:uq_portfolio_ticker"`
	Quantity        int64           `json:"quantity" gorm:"column:quantity;not null"`
	AverageBuyPrice decimal.Decimal `json:"average_buy_price" gorm:"column:average_buy_price;type:decimal(18,2);not null"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at;type:timestamptz;autoUpdateTime"`
}

// TableName returns the table name for the Holding model
func (Holding) TableName() string {
	return "holdings"
}

// HoldingChangeKind tags the single mutation a trade implies for a holding.
type HoldingChangeKind int

const (
	// HoldingCreate opens a fresh position.
	HoldingCreate HoldingChangeKind = iota
	// HoldingUpdate adjusts quantity (and, on buys, the average cost).
	HoldingUpdate
	// HoldingDelete closes the position entirely.
	HoldingDelete
)

// HoldingChange describes exactly one holding mutation for the executor to
// apply. PrevQuantity carries the quantity the computation was based on, so
// the executor can detect a concurrent writer at apply time.
type HoldingChange struct {
	Kind            HoldingChangeKind
	PrevQuantity    int64
	Quantity        int64
	AverageBuyPrice decimal.Decimal
}

// ApplyTrade computes the holding mutation implied by a trade against the
// existing position. Pure computation: no I/O, no clock.
//
// Buys recompute the weighted-average cost basis, rounded to 2 decimal places
// half-up. Sells never touch the average; selling the entire position deletes
// the holding, and selling more than held is rejected.
func ApplyTrade(existing *Holding, side TradeSide, quantity int64, price decimal.Decimal) (HoldingChange, error) {
	switch side {
	case TradeSideBuy:
		if existing == nil {
			return HoldingChange{
				Kind:            HoldingCreate,
				Quantity:        quantity,
				AverageBuyPrice: price.Round(2),
			}, nil
		}
		newQty := existing.Quantity + quantity
		oldCost := existing.AverageBuyPrice.Mul(decimal.NewFromInt(existing.Quantity))
		addedCost := price.Mul(decimal.NewFromInt(quantity))
		newAvg := oldCost.Add(addedCost).Div(decimal.NewFromInt(newQty)).Round(2)
		return HoldingChange{
			Kind:            HoldingUpdate,
			PrevQuantity:    existing.Quantity,
			Quantity:        newQty,
			AverageBuyPrice: newAvg,
		}, nil

	case TradeSideSell:
		if existing == nil || existing.Quantity < quantity {
			return HoldingChange{}, apperrors.ErrInsufficientHoldings
		}
		if existing.Quantity == quantity {
			return HoldingChange{
				Kind:         HoldingDelete,
				PrevQuantity: existing.Quantity,
			}, nil
		}
		return HoldingChange{
			Kind:            HoldingUpdate,
			PrevQuantity:    existing.Quantity,
			Quantity:        existing.Quantity - quantity,
			AverageBuyPrice: existing.AverageBuyPrice,
		}, nil

	default:
		return HoldingChange{}, &apperrors.ErrValidation{Field: "side", Message: "must be BUY or SELL"}
	}
}
