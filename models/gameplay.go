package models

import (
	"time"

	"gorm.io/datatypes"
)

// Gameplay is the immutable receipt of one successful draw. PriceSnapshot
// records the resolved price at commit time so the receipt stays meaningful
// if the catalog entry changes later.
type Gameplay struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	ConsumerID    string         `gorm:"index;not null" json:"consumer_id"`
	CollectionID  string         `gorm:"not null" json:"collection_id"`
	CardID        string         `gorm:"not null" json:"card_id"`
	PriceSnapshot datatypes.JSON `json:"price_snapshot"`
	CreatedAt     time.Time      `json:"created_at"`
}
