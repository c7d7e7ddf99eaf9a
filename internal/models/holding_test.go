package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "paperbroker/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyTradeBuyOpensPosition(t *testing.T) {
	change, err := ApplyTrade(nil, TradeSideBuy, 10, dec("100.00"))
	require.NoError(t, err)

	assert.Equal(t, HoldingCreate, change.Kind)
	assert.Equal(t, int64(10), change.Quantity)
	assert.True(t, change.AverageBuyPrice.Equal(dec("100.00")))
}

func TestApplyTradeBuyRecomputesWeightedAverage(t *testing.T) {
	tests := []struct {
		name        string
		heldQty     int64
		heldAvg     string
		buyQty      int64
		buyPrice    string
		expectQty   int64
		expectAvg   string
	}{
		{
			name:      "equal quantities average midpoint",
			heldQty:   10, heldAvg: "100.00",
			buyQty:    10, buyPrice: "200.00",
			expectQty: 20, expectAvg: "150.00",
		},
		{
			name:      "weighted toward larger lot",
			heldQty:   30, heldAvg: "10.00",
			buyQty:    10, buyPrice: "20.00",
			expectQty: 40, expectAvg: "12.50",
		},
		{
			name:      "rounds half up to two places",
			heldQty:   1, heldAvg: "10.00",
			buyQty:    2, buyPrice: "10.01",
			expectQty: 3, expectAvg: "10.01", // (10.00 + 20.02) / 3 = 10.0066…
		},
		{
			name:      "repeated buys at same price keep average",
			heldQty:   5, heldAvg: "42.42",
			buyQty:    7, buyPrice: "42.42",
			expectQty: 12, expectAvg: "42.42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := &Holding{Quantity: tt.heldQty, AverageBuyPrice: dec(tt.heldAvg)}
			change, err := ApplyTrade(existing, TradeSideBuy, tt.buyQty, dec(tt.buyPrice))
			require.NoError(t, err)

			assert.Equal(t, HoldingUpdate, change.Kind)
			assert.Equal(t, tt.heldQty, change.PrevQuantity)
			assert.Equal(t, tt.expectQty, change.Quantity)
			assert.True(t, change.AverageBuyPrice.Equal(dec(tt.expectAvg)),
				"expected avg %s, got %s", tt.expectAvg, change.AverageBuyPrice)
		})
	}
}

func TestApplyTradeSellPartialKeepsAverage(t *testing.T) {
	existing := &Holding{Quantity: 10, AverageBuyPrice: dec("100.00")}

	change, err := ApplyTrade(existing, TradeSideSell, 4, dec("120.00"))
	require.NoError(t, err)

	assert.Equal(t, HoldingUpdate, change.Kind)
	assert.Equal(t, int64(6), change.Quantity)
	assert.True(t, change.AverageBuyPrice.Equal(dec("100.00")),
		"sell must not touch the cost basis")
}

func TestApplyTradeSellEntirePositionDeletes(t *testing.T) {
	existing := &Holding{Quantity: 6, AverageBuyPrice: dec("100.00")}

	change, err := ApplyTrade(existing, TradeSideSell, 6, dec("110.00"))
	require.NoError(t, err)

	assert.Equal(t, HoldingDelete, change.Kind)
	assert.Equal(t, int64(6), change.PrevQuantity)
}

func TestApplyTradeSellRejections(t *testing.T) {
	t.Run("no position", func(t *testing.T) {
		_, err := ApplyTrade(nil, TradeSideSell, 1, dec("10.00"))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientHoldings)
	})

	t.Run("sell exceeds position", func(t *testing.T) {
		existing := &Holding{Quantity: 3, AverageBuyPrice: dec("50.00")}
		_, err := ApplyTrade(existing, TradeSideSell, 4, dec("10.00"))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientHoldings)
	})
}

func TestApplyTradeUnknownSide(t *testing.T) {
	_, err := ApplyTrade(nil, TradeSide("SHORT"), 1, dec("10.00"))

	var validationErr *apperrors.ErrValidation
	assert.ErrorAs(t, err, &validationErr)
}
