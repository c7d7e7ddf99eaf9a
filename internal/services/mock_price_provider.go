package services

import (
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed mock prices for a known set of tickers. The price-availability
// backstop for the whole system: every ticker outside this table gets a
// reproducible pseudo-random price instead.
var mockPrices = map[string]decimal.Decimal{
	"AAPL":     decimal.RequireFromString("170.25"),
	"MSFT":     decimal.RequireFromString("300.50"),
	"GOOGL":    decimal.RequireFromString("2750.75"),
	"TSLA":     decimal.RequireFromString("1000.00"),
	"NVDA":     decimal.RequireFromString("250.60"),
	"AMZN":     decimal.RequireFromString("3200.00"),
	"BTC-USD":  decimal.RequireFromString("40000.00"),
	"EURUSD=X": decimal.RequireFromString("1.08"),
}

const (
	mockRandomMin = 10.00
	mockRandomMax = 5000.00
)

// MockPrice returns a deterministic mock price and its source tag for any
// ticker. Known tickers come from the fixed table; unknown tickers get a
// price in [10.00, 5000.00] seeded from the ticker itself, so repeated calls
// agree. Never fails.
func MockPrice(ticker string) (decimal.Decimal, string) {
	upper := strings.ToUpper(strings.TrimSpace(ticker))
	if price, ok := mockPrices[upper]; ok {
		return price, SourceMockFixed
	}

	h := fnv.New64a()
	h.Write([]byte(upper))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	price := mockRandomMin + rng.Float64()*(mockRandomMax-mockRandomMin)
	return decimal.NewFromFloat(price).Round(2), SourceMockRandom
}
