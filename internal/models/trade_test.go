package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTradeRequestValidate(t *testing.T) {
	price := decimal.RequireFromString("100.00")
	zero := decimal.Zero

	tests := []struct {
		name        string
		req         TradeRequest
		expectError bool
	}{
		{
			name:        "valid buy without client price",
			req:         TradeRequest{Ticker: "AAPL", Side: TradeSideBuy, Quantity: 10},
			expectError: false,
		},
		{
			name:        "valid sell with client price",
			req:         TradeRequest{Ticker: "msft", Side: TradeSideSell, Quantity: 1, Price: &price},
			expectError: false,
		},
		{
			name:        "missing ticker",
			req:         TradeRequest{Side: TradeSideBuy, Quantity: 1},
			expectError: true,
		},
		{
			name:        "blank ticker",
			req:         TradeRequest{Ticker: "   ", Side: TradeSideBuy, Quantity: 1},
			expectError: true,
		},
		{
			name:        "unknown side",
			req:         TradeRequest{Ticker: "AAPL", Side: "HOLD", Quantity: 1},
			expectError: true,
		},
		{
			name:        "zero quantity",
			req:         TradeRequest{Ticker: "AAPL", Side: TradeSideBuy, Quantity: 0},
			expectError: true,
		},
		{
			name:        "negative quantity",
			req:         TradeRequest{Ticker: "AAPL", Side: TradeSideSell, Quantity: -3},
			expectError: true,
		},
		{
			name:        "zero client price",
			req:         TradeRequest{Ticker: "AAPL", Side: TradeSideBuy, Quantity: 1, Price: &zero},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTradeRequestNormalizedTicker(t *testing.T) {
	req := TradeRequest{Ticker: "  aapl "}
	assert.Equal(t, "AAPL", req.NormalizedTicker())
}

func TestPortfolioValidate(t *testing.T) {
	valid := Portfolio{UserID: "user-1", Name: "Growth", CashBalance: decimal.RequireFromString("1000.00")}
	assert.NoError(t, valid.Validate())

	missingName := Portfolio{UserID: "user-1"}
	assert.Error(t, missingName.Validate())

	missingUser := Portfolio{Name: "Growth"}
	assert.Error(t, missingUser.Validate())

	negativeCash := Portfolio{UserID: "user-1", Name: "Growth", CashBalance: decimal.RequireFromString("-1.00")}
	assert.Error(t, negativeCash.Validate())
}
