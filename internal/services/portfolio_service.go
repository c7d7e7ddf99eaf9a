package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paperbroker/internal/db"
	apperrors "paperbroker/internal/errors"
	"paperbroker/internal/models"
)

type portfolioService struct {
	db     *db.DB
	logger *zap.Logger
}

// NewPortfolioService creates the portfolio lifecycle service.
func NewPortfolioService(database *db.DB, log *zap.Logger) PortfolioService {
	if log == nil {
		log = zap.NewNop()
	}
	return &portfolioService{db: database, logger: log}
}

func (s *portfolioService) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CashBalance = p.CashBalance.Round(2)

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return apperrors.Persistence(err)
	}
	s.logger.Info("portfolio created",
		zap.String("portfolio_id", p.ID),
		zap.String("user_id", p.UserID))
	return nil
}

func (s *portfolioService) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.db.WithContext(ctx).First(&portfolio, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("portfolio", id)
	}
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return &portfolio, nil
}

func (s *portfolioService) ListPortfolios(ctx context.Context, userID string, limit, offset int) ([]*models.Portfolio, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Order("created_at ASC").Limit(limit).Offset(offset)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var portfolios []*models.Portfolio
	if err := query.Find(&portfolios).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}
	return portfolios, nil
}

func (s *portfolioService) RenamePortfolio(ctx context.Context, id, name string) (*models.Portfolio, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &apperrors.ErrValidation{Field: "name", Message: "is required"}
	}

	res := s.db.WithContext(ctx).Model(&models.Portfolio{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return nil, apperrors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("portfolio", id)
	}
	return s.GetPortfolio(ctx, id)
}

// DeletePortfolio removes the portfolio with its holdings and trade history
// in one transaction.
func (s *portfolioService) DeletePortfolio(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Portfolio{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("portfolio", id)
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		return tx.Where("portfolio_id = ?", id).Delete(&models.Trade{}).Error
	})
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return apperrors.Persistence(err)
	}
	s.logger.Info("portfolio deleted", zap.String("portfolio_id", id))
	return nil
}

func (s *portfolioService) ListHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	// Verify the portfolio exists so an unknown ID reads as 404, not an
	// empty position list.
	if _, err := s.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}

	var holdings []*models.Holding
	err := s.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("ticker ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return holdings, nil
}
