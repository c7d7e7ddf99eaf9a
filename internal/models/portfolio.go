package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "paperbroker/internal/errors"
)

// Portfolio is a single simulated brokerage account: a cash balance plus the
// holdings attached to it. Cash moves only through trade execution; the name
// is the only field ordinary updates may touch.
type Portfolio struct {
	ID          string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	UserID      string          `json:"user_id" gorm:"column:user_id;type:varchar(255);not null;index"`
	Name        string          `json:"name" gorm:"column:name;type:varchar(255);not null"`
	CashBalance decimal.Decimal `json:"cash_balance" gorm:"column:cash_balance;type:decimal(18,2);not null;default:0"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at;type:timestamptz;autoUpdateTime"`
}

// TableName returns the table name for the Portfolio model
func (Portfolio) TableName() string {
	return "portfolios"
}

// Validate validates portfolio data before creation.
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &apperrors.ErrValidation{Field: "name", Message: "is required"}
	}
	if strings.TrimSpace(p.UserID) == "" {
		return &apperrors.ErrValidation{Field: "user_id", Message: "is required"}
	}
	if p.CashBalance.IsNegative() {
		return &apperrors.ErrValidation{Field: "cash_balance", Message: "must be non-negative"}
	}
	return nil
}
