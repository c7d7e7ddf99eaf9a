package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is one cached market price, keyed by normalized ticker. Rows are
// upserted whole, so readers never observe a half-written entry.
type PriceQuote struct {
	Ticker    string          `json:"ticker" gorm:"primaryKey;column:ticker;type:varchar(20)"`
	Price     decimal.Decimal `json:"price" gorm:"column:price;type:decimal(18,2);not null"`
	Source    string          `json:"source" gorm:"column:source;type:varchar(50);not null"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"column:updated_at;type:timestamptz;not null"`
}

// TableName returns the table name for the PriceQuote model
func (PriceQuote) TableName() string {
	return "price_quotes"
}

// FreshWithin reports whether the quote is still inside the freshness window
// as of now.
func (q *PriceQuote) FreshWithin(window time.Duration, now time.Time) bool {
	return now.Sub(q.UpdatedAt) <= window
}
