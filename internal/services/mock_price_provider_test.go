package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMockPriceKnownTickers(t *testing.T) {
	tests := []struct {
		ticker string
		price  string
	}{
		{"AAPL", "170.25"},
		{"aapl", "170.25"},
		{" msft ", "300.50"},
		{"TSLA", "1000.00"},
		{"BTC-USD", "40000.00"},
		{"EURUSD=X", "1.08"},
	}

	for _, tt := range tests {
		price, source := MockPrice(tt.ticker)
		assert.Equal(t, SourceMockFixed, source, tt.ticker)
		assert.True(t, price.Equal(decimal.RequireFromString(tt.price)),
			"%s: expected %s, got %s", tt.ticker, tt.price, price)
	}
}

func TestMockPriceUnknownTickerIsReproducible(t *testing.T) {
	first, source := MockPrice("ZZZQ")
	second, _ := MockPrice("ZZZQ")

	assert.Equal(t, SourceMockRandom, source)
	assert.True(t, first.Equal(second), "same ticker must always price the same")
}

func TestMockPriceUnknownTickerInBounds(t *testing.T) {
	min := decimal.RequireFromString("10.00")
	max := decimal.RequireFromString("5000.00")

	for _, ticker := range []string{"ZZZQ", "ABCD", "WXYZ", "FOO", "BARBAZ"} {
		price, source := MockPrice(ticker)
		assert.Equal(t, SourceMockRandom, source, ticker)
		assert.True(t, price.GreaterThanOrEqual(min), "%s priced below range: %s", ticker, price)
		assert.True(t, price.LessThanOrEqual(max), "%s priced above range: %s", ticker, price)
		assert.Equal(t, int32(-2), minExponent(price), "%s not rounded to 2 places: %s", ticker, price)
	}
}

func minExponent(d decimal.Decimal) int32 {
	if d.Exponent() < -2 {
		return d.Exponent()
	}
	return -2
}
