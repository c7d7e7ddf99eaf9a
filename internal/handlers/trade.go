package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "paperbroker/internal/errors"
	"paperbroker/internal/models"
	"paperbroker/internal/services"
)

type TradeHandler struct {
	service services.TradeService
}

func NewTradeHandler(service services.TradeService) *TradeHandler {
	return &TradeHandler{service: service}
}

// HandleExecute records a buy or sell against a portfolio.
// @Summary Execute a trade
// @Description Resolve an execution price, validate against cash/holdings and apply atomically
// @Tags trades
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param trade body models.TradeRequest true "Proposed trade"
// @Success 201 {object} models.Trade
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /portfolios/{id}/trades [post]
func (h *TradeHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req models.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &apperrors.ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	trade, err := h.service.ExecuteTrade(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

// HandleList lists a portfolio's trades, newest first.
// @Summary List trades
// @Tags trades
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Trade
// @Router /portfolios/{id}/trades [get]
func (h *TradeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	trades, err := h.service.ListTrades(r.Context(), mux.Vars(r)["id"], limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

// HandleGet returns one trade record.
// @Summary Get a trade
// @Tags trades
// @Produce json
// @Param id path string true "Portfolio ID"
// @Param tradeId path string true "Trade ID"
// @Success 200 {object} models.Trade
// @Failure 404 {object} map[string]string
// @Router /portfolios/{id}/trades/{tradeId} [get]
func (h *TradeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trade, err := h.service.GetTrade(r.Context(), vars["id"], vars["tradeId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

// HandleDelete removes a trade record administratively; ledger effects stand.
// @Summary Delete a trade record
// @Tags trades
// @Param id path string true "Portfolio ID"
// @Param tradeId path string true "Trade ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /portfolios/{id}/trades/{tradeId} [delete]
func (h *TradeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.service.DeleteTrade(r.Context(), vars["id"], vars["tradeId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
