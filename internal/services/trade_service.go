package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paperbroker/internal/db"
	apperrors "paperbroker/internal/errors"
	"paperbroker/internal/models"
)

// maxCommitAttempts bounds the optimistic retry loop on commit conflicts.
const maxCommitAttempts = 3

// errCommitConflict signals that a concurrent trade on the same portfolio won
// the race; the executor re-reads state and recomputes. Never surfaced to
// callers.
var errCommitConflict = errors.New("commit conflict on portfolio state")

type tradeService struct {
	db     *db.DB
	prices PriceService
	logger *zap.Logger
	now    func() time.Time
}

// NewTradeService creates the trade execution engine.
func NewTradeService(database *db.DB, prices PriceService, log *zap.Logger) TradeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &tradeService{
		db:     database,
		prices: prices,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ExecuteTrade applies one trade atomically: append the trade record, mutate
// the holding, adjust cash. All three commit together or not at all; a failed
// call leaves portfolio state exactly as before.
func (s *tradeService) ExecuteTrade(ctx context.Context, portfolioID string, req *models.TradeRequest) (*models.Trade, error) {
	if req == nil {
		return nil, &apperrors.ErrValidation{Field: "trade", Message: "request body is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ticker := req.NormalizedTicker()

	price, source := s.prices.Resolve(ctx, ticker, req.Price)

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		trade, err := s.tryExecute(ctx, portfolioID, ticker, req.Side, req.Quantity, price, source)
		if err == nil {
			s.logger.Info("trade executed",
				zap.String("trade_id", trade.ID),
				zap.String("portfolio_id", portfolioID),
				zap.String("ticker", ticker),
				zap.String("side", string(req.Side)),
				zap.Int64("quantity", req.Quantity),
				zap.String("price", price.String()),
				zap.String("price_source", source))
			return trade, nil
		}
		if !errors.Is(err, errCommitConflict) {
			return nil, err
		}
		lastErr = err
		s.logger.Debug("commit conflict, retrying trade",
			zap.String("portfolio_id", portfolioID),
			zap.String("ticker", ticker),
			zap.Int("attempt", attempt))
	}
	return nil, apperrors.Persistence(fmt.Errorf("trade did not commit after %d attempts: %w", maxCommitAttempts, lastErr))
}

// tryExecute runs one optimistic pass: read state, compute mutations, apply
// them under guards that detect concurrent writers. A guard miss rolls the
// transaction back and reports errCommitConflict.
func (s *tradeService) tryExecute(ctx context.Context, portfolioID, ticker string, side models.TradeSide, quantity int64, price decimal.Decimal, source string) (*models.Trade, error) {
	var created *models.Trade

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := tx.First(&portfolio, "id = ?", portfolioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("portfolio", portfolioID)
			}
			return apperrors.Persistence(err)
		}

		existing, err := loadHolding(tx, portfolioID, ticker)
		if err != nil {
			return err
		}

		change, err := models.ApplyTrade(existing, side, quantity, price)
		if err != nil {
			return err
		}

		amount := price.Mul(decimal.NewFromInt(quantity)).Round(2)
		if side == models.TradeSideBuy {
			if amount.GreaterThan(portfolio.CashBalance) {
				return apperrors.ErrInsufficientFunds
			}
			// The balance guard re-checks under the row lock, so two
			// concurrent buys cannot both spend the same cash.
			res := tx.Model(&models.Portfolio{}).
				Where("id = ? AND cash_balance >= ?", portfolioID, amount).
				Update("cash_balance", gorm.Expr("cash_balance - ?", amount))
			if res.Error != nil {
				return apperrors.Persistence(res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrInsufficientFunds
			}
		} else {
			res := tx.Model(&models.Portfolio{}).
				Where("id = ?", portfolioID).
				Update("cash_balance", gorm.Expr("cash_balance + ?", amount))
			if res.Error != nil {
				return apperrors.Persistence(res.Error)
			}
			if res.RowsAffected == 0 {
				return errCommitConflict
			}
		}

		if err := applyHoldingChange(tx, portfolioID, ticker, change); err != nil {
			return err
		}

		created = &models.Trade{
			ID:          uuid.NewString(),
			PortfolioID: portfolioID,
			Ticker:      ticker,
			Side:        side,
			Quantity:    quantity,
			Price:       price,
			PriceSource: source,
			ExecutedAt:  s.now(),
		}
		if err := tx.Create(created).Error; err != nil {
			return apperrors.Persistence(err)
		}
		return nil
	})

	if txErr != nil {
		return nil, classifyTxError(txErr)
	}
	return created, nil
}

func loadHolding(tx *gorm.DB, portfolioID, ticker string) (*models.Holding, error) {
	var holding models.Holding
	err := tx.First(&holding, "portfolio_id = ? AND ticker = ?", portfolioID, ticker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return &holding, nil
}

// applyHoldingChange applies the ledger's mutation inside the caller's
// transaction. Updates and deletes are guarded on the quantity the ledger
// computed from; a miss means another trade committed in between.
func applyHoldingChange(tx *gorm.DB, portfolioID, ticker string, change models.HoldingChange) error {
	switch change.Kind {
	case models.HoldingCreate:
		holding := &models.Holding{
			ID:              uuid.NewString(),
			PortfolioID:     portfolioID,
			Ticker:          ticker,
			Quantity:        change.Quantity,
			AverageBuyPrice: change.AverageBuyPrice,
		}
		if err := tx.Create(holding).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Concurrent trade opened this position first.
				return errCommitConflict
			}
			return apperrors.Persistence(err)
		}
		return nil

	case models.HoldingUpdate:
		res := tx.Model(&models.Holding{}).
			Where("portfolio_id = ? AND ticker = ? AND quantity = ?", portfolioID, ticker, change.PrevQuantity).
			Updates(map[string]interface{}{
				"quantity":          change.Quantity,
				"average_buy_price": change.AverageBuyPrice,
			})
		if res.Error != nil {
			return apperrors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			return errCommitConflict
		}
		return nil

	case models.HoldingDelete:
		res := tx.Where("portfolio_id = ? AND ticker = ? AND quantity = ?", portfolioID, ticker, change.PrevQuantity).
			Delete(&models.Holding{})
		if res.Error != nil {
			return apperrors.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			return errCommitConflict
		}
		return nil

	default:
		return apperrors.Persistence(fmt.Errorf("unknown holding change kind %d", change.Kind))
	}
}

// classifyTxError keeps typed errors and conflicts intact and wraps anything
// else (including commit failures) as a persistence error.
func classifyTxError(err error) error {
	if errors.Is(err, errCommitConflict) {
		return err
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErr *apperrors.ErrValidation
	if errors.As(err, &validationErr) {
		return err
	}
	return apperrors.Persistence(err)
}

func (s *tradeService) GetTrade(ctx context.Context, portfolioID, tradeID string) (*models.Trade, error) {
	var trade models.Trade
	err := s.db.WithContext(ctx).First(&trade, "id = ? AND portfolio_id = ?", tradeID, portfolioID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("trade", tradeID)
	}
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return &trade, nil
}

func (s *tradeService) ListTrades(ctx context.Context, portfolioID string, limit, offset int) ([]*models.Trade, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var trades []*models.Trade
	err := s.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("executed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&trades).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return trades, nil
}

// DeleteTrade removes the trade record only. Cash and holdings keep the
// trade's effects; this is an administrative correction, not a reversal.
func (s *tradeService) DeleteTrade(ctx context.Context, portfolioID, tradeID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND portfolio_id = ?", tradeID, portfolioID).
		Delete(&models.Trade{})
	if res.Error != nil {
		return apperrors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("trade", tradeID)
	}
	return nil
}
