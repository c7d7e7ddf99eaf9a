package main

import (
	"encoding/json"
	"log"
	"net/http"

	"go.uber.org/zap"

	"paperbroker/internal/config"
	"paperbroker/internal/db"
	"paperbroker/internal/handlers"
	"paperbroker/internal/logger"
	"paperbroker/internal/services"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	database, err := db.Connect(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		zapLogger.Fatal("Database health check failed", zap.Error(err))
	}
	zapLogger.Info("Database connection established")

	// Initialize services
	priceCache := services.NewPriceCacheService(database)
	quoteProvider := services.NewFinnhubQuoteProvider(cfg.FinnhubAPIKey)
	priceService := services.NewPriceResolver(priceCache, quoteProvider, zapLogger)
	tradeService := services.NewTradeService(database, priceService, zapLogger)
	portfolioService := services.NewPortfolioService(database, zapLogger)

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	marketDataHandler := handlers.NewMarketDataHandler(priceService)

	health := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "paperbroker",
		})
	}

	router := handlers.NewRouter(portfolioHandler, tradeHandler, marketDataHandler, health)

	zapLogger.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := http.ListenAndServe(":"+cfg.ServerPort, router); err != nil {
		zapLogger.Fatal("Server stopped", zap.Error(err))
	}
}
