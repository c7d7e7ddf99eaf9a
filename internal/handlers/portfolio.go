package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	apperrors "paperbroker/internal/errors"
	"paperbroker/internal/models"
	"paperbroker/internal/services"
)

type PortfolioHandler struct {
	service services.PortfolioService
}

func NewPortfolioHandler(service services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type createPortfolioRequest struct {
	UserID      string           `json:"user_id"`
	Name        string           `json:"name"`
	CashBalance *decimal.Decimal `json:"cash_balance,omitempty"`
}

type renamePortfolioRequest struct {
	Name string `json:"name"`
}

// HandleCreate creates a portfolio.
// @Summary Create a portfolio
// @Tags portfolios
// @Accept json
// @Produce json
// @Success 201 {object} models.Portfolio
// @Failure 400 {object} map[string]string
// @Router /portfolios [post]
func (h *PortfolioHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &apperrors.ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	portfolio := &models.Portfolio{
		UserID: req.UserID,
		Name:   req.Name,
	}
	if req.CashBalance != nil {
		portfolio.CashBalance = *req.CashBalance
	}

	if err := h.service.CreatePortfolio(r.Context(), portfolio); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, portfolio)
}

// HandleList lists portfolios, optionally filtered by user_id.
// @Summary List portfolios
// @Tags portfolios
// @Produce json
// @Param user_id query string false "Owning user"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Portfolio
// @Router /portfolios [get]
func (h *PortfolioHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	portfolios, err := h.service.ListPortfolios(r.Context(), r.URL.Query().Get("user_id"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolios)
}

// HandleGet returns one portfolio by ID.
// @Summary Get a portfolio
// @Tags portfolios
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} models.Portfolio
// @Failure 404 {object} map[string]string
// @Router /portfolios/{id} [get]
func (h *PortfolioHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.service.GetPortfolio(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

// HandleRename updates the portfolio display name.
// @Summary Rename a portfolio
// @Tags portfolios
// @Accept json
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {object} models.Portfolio
// @Failure 404 {object} map[string]string
// @Router /portfolios/{id} [put]
func (h *PortfolioHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	var req renamePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &apperrors.ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	portfolio, err := h.service.RenamePortfolio(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

// HandleDelete deletes a portfolio with its holdings and trades.
// @Summary Delete a portfolio
// @Tags portfolios
// @Param id path string true "Portfolio ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /portfolios/{id} [delete]
func (h *PortfolioHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePortfolio(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListHoldings lists the current positions of a portfolio.
// @Summary List holdings
// @Tags portfolios
// @Produce json
// @Param id path string true "Portfolio ID"
// @Success 200 {array} models.Holding
// @Failure 404 {object} map[string]string
// @Router /portfolios/{id}/holdings [get]
func (h *PortfolioHandler) HandleListHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.service.ListHoldings(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}
