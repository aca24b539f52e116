package models

// Rarity is a named weight class. DropRate is a relative weight, not a
// probability; weights across a collection need not sum to 1.
type Rarity struct {
	Name     string  `gorm:"primaryKey" json:"name"`
	DropRate float64 `gorm:"not null" json:"drop_rate"`
}

// DefaultRarities is the production rarity catalog, seeded at migration time.
var DefaultRarities = []Rarity{
	{Name: "Common", DropRate: 0.7992},
	{Name: "Uncommon", DropRate: 0.1598},
	{Name: "Rare", DropRate: 0.032},
	{Name: "Unique", DropRate: 0.0064},
	{Name: "Extinct", DropRate: 0.0026},
	{Name: "Impossible", DropRate: 0.013},
}
