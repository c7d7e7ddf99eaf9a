package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paperbroker/internal/db"
	"paperbroker/internal/models"
)

type priceCacheService struct {
	db *db.DB
}

// NewPriceCacheService creates a DB-backed quote cache.
func NewPriceCacheService(database *db.DB) PriceCacheService {
	return &priceCacheService{db: database}
}

func (s *priceCacheService) GetCachedQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	var quote models.PriceQuote
	err := s.db.WithContext(ctx).First(&quote, "ticker = ?", ticker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached quote: %w", err)
	}
	return &quote, nil
}

func (s *priceCacheService) UpsertQuote(ctx context.Context, quote *models.PriceQuote) error {
	// Whole-row upsert keyed on ticker keeps the entry atomic per key.
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "source", "updated_at"}),
	}).Create(quote).Error
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}
	return nil
}
