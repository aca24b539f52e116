package config

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lelaut/snaplu.cc/models"
)

// SetupDatabase connects to the database, runs migrations and seeds the
// rarity catalog.
func SetupDatabase(databaseURL string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	log.Println("✅ Database migration completed")
	return db
}

// Migrate runs schema migrations and seeds the default rarities. Seeding is
// idempotent; existing rarity rows are left untouched.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Producer{},
		&models.Consumer{},
		&models.Collection{},
		&models.Rarity{},
		&models.Card{},
		&models.Gameplay{},
	); err != nil {
		return err
	}

	for _, rarity := range models.DefaultRarities {
		if err := db.Where(models.Rarity{Name: rarity.Name}).FirstOrCreate(&rarity).Error; err != nil {
			return err
		}
	}
	return nil
}
