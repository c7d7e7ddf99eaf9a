package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"paperbroker/internal/db"
	"paperbroker/internal/models"
)

// setupTestDB opens an isolated in-memory sqlite database with the full
// schema. Each call gets its own database; the shared cache keeps it alive
// across the pool's connections.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&models.Portfolio{},
		&models.Holding{},
		&models.Trade{},
		&models.PriceQuote{},
	))

	return &db.DB{DB: gormDB}
}

func createTestPortfolio(t *testing.T, database *db.DB, cash string) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		ID:          uuid.NewString(),
		UserID:      "user-1",
		Name:        "Test Portfolio",
		CashBalance: decimal.RequireFromString(cash),
	}
	require.NoError(t, database.Create(portfolio).Error)
	return portfolio
}

func getPortfolio(t *testing.T, database *db.DB, id string) *models.Portfolio {
	t.Helper()

	var portfolio models.Portfolio
	require.NoError(t, database.First(&portfolio, "id = ?", id).Error)
	return &portfolio
}

func getHolding(t *testing.T, database *db.DB, portfolioID, ticker string) *models.Holding {
	t.Helper()

	var holding models.Holding
	err := database.First(&holding, "portfolio_id = ? AND ticker = ?", portfolioID, ticker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	require.NoError(t, err)
	return &holding
}

func countTrades(t *testing.T, database *db.DB, portfolioID string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.Model(&models.Trade{}).
		Where("portfolio_id = ?", portfolioID).Count(&count).Error)
	return count
}

// fixedPriceService resolves every ticker to one price unless the caller
// supplies their own.
type fixedPriceService struct {
	price decimal.Decimal
}

func (f *fixedPriceService) Resolve(_ context.Context, _ string, clientPrice *decimal.Decimal) (decimal.Decimal, string) {
	if clientPrice != nil && clientPrice.IsPositive() {
		return clientPrice.Round(2), SourceClientProvided
	}
	return f.price, SourceMockFixed
}

// fakeQuoteProvider is a scriptable stand-in for the external market-data
// source.
type fakeQuoteProvider struct {
	price decimal.Decimal
	err   error
	calls int
}

func (f *fakeQuoteProvider) GetQuote(_ context.Context, _ string) (decimal.Decimal, time.Time, error) {
	f.calls++
	if f.err != nil {
		return decimal.Zero, time.Time{}, f.err
	}
	return f.price, time.Now().UTC(), nil
}

func clientPrice(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
