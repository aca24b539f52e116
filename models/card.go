package models

import "time"

// Card is a single drawable item. A nil RarityName marks a free card, which
// is distributed through a separate unlock mechanism and never appears in
// the weighted draw. Cards are immutable after creation.
type Card struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	CollectionID string    `gorm:"index;not null" json:"collection_id"`
	Name         string    `json:"name"`
	RarityName   *string   `gorm:"index" json:"rarity,omitempty"`
	Rarity       *Rarity   `gorm:"foreignKey:RarityName;references:Name" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
