package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// FinnhubQuoteProvider fetches realtime quotes from the Finnhub /quote
// endpoint. Requires an API key; without one every fetch fails and the
// resolver falls through to mock prices.
type FinnhubQuoteProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFinnhubQuoteProvider creates a Finnhub-backed provider with a bounded
// request timeout.
func NewFinnhubQuoteProvider(apiKey string) QuoteProvider {
	return &FinnhubQuoteProvider{
		apiKey:     apiKey,
		baseURL:    "https://finnhub.io/api/v1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *FinnhubQuoteProvider) GetQuote(ctx context.Context, ticker string) (decimal.Decimal, time.Time, error) {
	if p.apiKey == "" {
		return decimal.Zero, time.Time{}, fmt.Errorf("finnhub api key not configured")
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s", p.baseURL, url.QueryEscape(ticker), p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, time.Time{}, fmt.Errorf("finnhub status %d", resp.StatusCode)
	}

	var payload struct {
		Current   float64 `json:"c"`
		Timestamp int64   `json:"t"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	// Finnhub reports c=0 for unknown symbols; treat as no data, not a
	// valid zero price.
	if payload.Current <= 0 {
		return decimal.Zero, time.Time{}, fmt.Errorf("no current price for %s", ticker)
	}

	observedAt := time.Now().UTC()
	if payload.Timestamp > 0 {
		observedAt = time.Unix(payload.Timestamp, 0).UTC()
	}
	return decimal.NewFromFloat(payload.Current).Round(2), observedAt, nil
}
