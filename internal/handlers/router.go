package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires all handlers onto a gorilla/mux router with CORS enabled.
func NewRouter(portfolios *PortfolioHandler, trades *TradeHandler, marketData *MarketDataHandler, health http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/health", health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/portfolios", portfolios.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/portfolios", portfolios.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{id}", portfolios.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{id}", portfolios.HandleRename).Methods(http.MethodPut)
	api.HandleFunc("/portfolios/{id}", portfolios.HandleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/portfolios/{id}/holdings", portfolios.HandleListHoldings).Methods(http.MethodGet)

	api.HandleFunc("/portfolios/{id}/trades", trades.HandleExecute).Methods(http.MethodPost)
	api.HandleFunc("/portfolios/{id}/trades", trades.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{id}/trades/{tradeId}", trades.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{id}/trades/{tradeId}", trades.HandleDelete).Methods(http.MethodDelete)

	api.HandleFunc("/marketdata/{ticker}", marketData.HandleGetPrice).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
