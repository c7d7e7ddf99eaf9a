package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"paperbroker/internal/services"
)

type MarketDataHandler struct {
	prices services.PriceService
}

func NewMarketDataHandler(prices services.PriceService) *MarketDataHandler {
	return &MarketDataHandler{prices: prices}
}

type tickerPriceResponse struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source"`
}

// HandleGetPrice resolves the current price for a ticker.
// @Summary Get current price for a ticker
// @Description Price comes from the cache, a realtime source, or the mock fallback; source indicates which
// @Tags marketdata
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {object} tickerPriceResponse
// @Router /marketdata/{ticker} [get]
func (h *MarketDataHandler) HandleGetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["ticker"]))
	price, source := h.prices.Resolve(r.Context(), ticker, nil)
	writeJSON(w, http.StatusOK, tickerPriceResponse{
		Ticker: ticker,
		Price:  price,
		Source: source,
	})
}
