package models

import "time"

// Collection is a named set of cards offered under a single play cost. The
// cost itself lives in the external price catalog; GameplayPriceRef is the
// opaque handle into it. Collections stay hidden until the producer confirms
// every card asset was uploaded.
type Collection struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	ProducerID       string    `gorm:"index;not null" json:"producer_id"`
	Producer         Producer  `gorm:"foreignKey:ProducerID" json:"-"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	GameplayPriceRef string    `gorm:"not null" json:"-"`
	Confirmed        bool      `gorm:"not null;default:false" json:"confirmed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
