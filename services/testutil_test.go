package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lelaut/snaplu.cc/models"
)

// newTestDB opens an in-memory sqlite database with the full schema and the
// default rarity catalog. A single pooled connection keeps the in-memory
// database alive and serializes concurrent transactions the way a server
// would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Producer{},
		&models.Consumer{},
		&models.Collection{},
		&models.Rarity{},
		&models.Card{},
		&models.Gameplay{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	for _, rarity := range models.DefaultRarities {
		if err := db.Create(&rarity).Error; err != nil {
			t.Fatalf("seed rarity %s: %v", rarity.Name, err)
		}
	}
	return db
}

func createConsumer(t *testing.T, db *gorm.DB, credits int64) string {
	t.Helper()
	consumer := models.Consumer{
		ID:              uuid.NewString(),
		Name:            "tester",
		Credits:         credits,
		CreditsCurrency: "brl",
	}
	if err := db.Create(&consumer).Error; err != nil {
		t.Fatalf("create consumer: %v", err)
	}
	return consumer.ID
}

// createCollection sets up a confirmed collection (plus its producer) priced
// by priceRef.
func createCollection(t *testing.T, db *gorm.DB, priceRef string) string {
	t.Helper()
	producer := models.Producer{
		ID:   uuid.NewString(),
		Slug: "producer-" + uuid.NewString()[:8],
		Name: "producer",
	}
	if err := db.Create(&producer).Error; err != nil {
		t.Fatalf("create producer: %v", err)
	}
	collection := models.Collection{
		ID:               uuid.NewString(),
		ProducerID:       producer.ID,
		Name:             "test collection",
		GameplayPriceRef: priceRef,
		Confirmed:        true,
	}
	if err := db.Create(&collection).Error; err != nil {
		t.Fatalf("create collection: %v", err)
	}
	return collection.ID
}

// createCard adds a card; a nil rarity makes it a free card.
func createCard(t *testing.T, db *gorm.DB, collectionID string, rarity *string) string {
	t.Helper()
	card := models.Card{
		ID:           uuid.NewString(),
		CollectionID: collectionID,
		Name:         "card",
		RarityName:   rarity,
	}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("create card: %v", err)
	}
	return card.ID
}

func strPtr(s string) *string { return &s }

func countGameplays(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Gameplay{}).Count(&n).Error; err != nil {
		t.Fatalf("count gameplays: %v", err)
	}
	return n
}

func consumerCredits(t *testing.T, db *gorm.DB, consumerID string) int64 {
	t.Helper()
	var consumer models.Consumer
	if err := db.First(&consumer, "id = ?", consumerID).Error; err != nil {
		t.Fatalf("load consumer: %v", err)
	}
	return consumer.Credits
}

// stubCatalog is an in-memory PriceCatalog for coordinator tests.
type stubCatalog struct {
	prices map[string]Price
	err    error
}

func (s *stubCatalog) Resolve(_ context.Context, ref string) (Price, error) {
	if s.err != nil {
		return Price{}, s.err
	}
	price, ok := s.prices[ref]
	if !ok {
		return Price{}, fmt.Errorf("price %s: %w", ref, ErrNotFound)
	}
	return price, nil
}

// stubStorage signs nothing; it just echoes the object key.
type stubStorage struct{}

func (stubStorage) CardURL(_ context.Context, ownerID, collectionID, cardID string) (string, error) {
	return "https://cards.test/" + bucketKey(ownerID, collectionID, cardID), nil
}
