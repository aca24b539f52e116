package models

import "time"

// Consumer is an account that spends credits to draw cards. Credits are held
// in minor currency units and only ever change through the credit ledger's
// conditional decrement (or an external top-up).
type Consumer struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Name            string    `json:"name"`
	Credits         int64     `gorm:"not null;default:0" json:"credits"`
	CreditsCurrency string    `gorm:"not null;default:'usd'" json:"credits_currency"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
