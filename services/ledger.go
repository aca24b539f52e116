package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lelaut/snaplu.cc/models"
)

// CreditLedger owns consumer balances. The only mutation it offers is a
// conditional decrement, so a balance can never go negative no matter how
// many plays race each other.
type CreditLedger struct {
	db *gorm.DB
}

func NewCreditLedger(db *gorm.DB) *CreditLedger {
	return &CreditLedger{db: db}
}

// WithTx returns a ledger bound to an open transaction.
func (l *CreditLedger) WithTx(tx *gorm.DB) *CreditLedger {
	return &CreditLedger{db: tx}
}

// Balance returns the consumer's current credits.
func (l *CreditLedger) Balance(ctx context.Context, consumerID string) (int64, error) {
	var consumer models.Consumer
	err := l.db.WithContext(ctx).Select("credits").First(&consumer, "id = ?", consumerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("consumer %s: %w", consumerID, ErrNotFound)
		}
		return 0, err
	}
	return consumer.Credits, nil
}

// Debit subtracts amount from the consumer's credits, but only if the
// balance still covers it at write time. Zero affected rows means the
// balance moved underneath us and no longer does.
func (l *CreditLedger) Debit(ctx context.Context, consumerID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount %d is negative", amount)
	}

	res := l.db.WithContext(ctx).
		Model(&models.Consumer{}).
		Where("id = ? AND credits >= ?", consumerID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}
