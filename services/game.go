package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lelaut/snaplu.cc/models"
	"github.com/lelaut/snaplu.cc/utils/logger"
)

// GameService orchestrates a play: price resolution, the affordability
// check, the weighted draw, and the atomic charge+receipt commit. It also
// serves the ownership-checked read path for receipts.
type GameService struct {
	db       *gorm.DB
	prices   PriceCatalog
	storage  CardStorage
	selector *CardSelector
	ledger   *CreditLedger
	feed     *DrawFeed
}

// NewGameService wires the coordinator with its collaborators. feed may be
// nil when no live feed is wanted.
func NewGameService(db *gorm.DB, prices PriceCatalog, storage CardStorage, selector *CardSelector, feed *DrawFeed) *GameService {
	return &GameService{
		db:       db,
		prices:   prices,
		storage:  storage,
		selector: selector,
		ledger:   NewCreditLedger(db),
		feed:     feed,
	}
}

// GameplayView is a receipt as shown to its owning consumer.
type GameplayView struct {
	CollectionID   string `json:"collection_id"`
	CollectionName string `json:"collection_name"`
	ProducerSlug   string `json:"producer_slug"`
	Rarity         string `json:"rarity"`
	URL            string `json:"url"`
}

type priceSnapshot struct {
	PriceRef   string `json:"price_ref"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
}

// Play charges consumerID the collection's play cost and draws one card.
// The charge and the receipt commit together or not at all; any failure on
// the way leaves no trace. There is no internal retry: a play losing the
// race on the balance fails with ErrInsufficientCredits and the caller may
// resubmit.
func (g *GameService) Play(ctx context.Context, consumerID, collectionID string) (string, error) {
	var collection models.Collection
	if err := g.db.WithContext(ctx).First(&collection, "id = ?", collectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("collection %s: %w", collectionID, ErrNotFound)
		}
		return "", err
	}

	price, err := g.prices.Resolve(ctx, collection.GameplayPriceRef)
	if err != nil {
		return "", err
	}
	cost := price.UnitAmount

	// TODO: reconcile price.Currency with the consumer's credit currency
	// once an exchange-rate source exists; until then credits and prices
	// are compared as same-currency amounts.
	balance, err := g.ledger.Balance(ctx, consumerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInsufficientCredits
		}
		return "", err
	}
	if balance < cost {
		return "", ErrInsufficientCredits
	}

	cardID, err := g.selector.SelectOne(ctx, collectionID)
	if err != nil {
		return "", err
	}

	snapshot, err := json.Marshal(priceSnapshot{
		PriceRef:   price.ID,
		UnitAmount: cost,
		Currency:   price.Currency,
	})
	if err != nil {
		return "", err
	}

	gameplay := models.Gameplay{
		ID:            uuid.NewString(),
		ConsumerID:    consumerID,
		CollectionID:  collectionID,
		CardID:        cardID,
		PriceSnapshot: snapshot,
	}
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The affordability check is re-verified here: a concurrent play
		// may have spent the balance since the read above.
		if err := g.ledger.WithTx(tx).Debit(ctx, consumerID, cost); err != nil {
			return err
		}
		return tx.Create(&gameplay).Error
	})
	if err != nil {
		return "", err
	}

	g.publishDraw(ctx, &gameplay)
	return gameplay.ID, nil
}

// publishDraw pushes a committed draw to the live feed. Best effort only; a
// feed problem never touches the play result.
func (g *GameService) publishDraw(ctx context.Context, gameplay *models.Gameplay) {
	if g.feed == nil {
		return
	}

	var card models.Card
	if err := g.db.WithContext(ctx).First(&card, "id = ?", gameplay.CardID).Error; err != nil {
		logger.Warnf("draw feed: load card %s: %v", gameplay.CardID, err)
		return
	}
	rarity := ""
	if card.RarityName != nil {
		rarity = *card.RarityName
	}
	g.feed.Publish(DrawEvent{
		CollectionID: gameplay.CollectionID,
		Rarity:       rarity,
		At:           gameplay.CreatedAt,
	})
}

// GetGameplay returns the receipt view for gameplayID, only to its owning
// consumer. A record owned by someone else is reported exactly like a
// missing one.
func (g *GameService) GetGameplay(ctx context.Context, gameplayID, consumerID string) (GameplayView, error) {
	var gameplay models.Gameplay
	err := g.db.WithContext(ctx).First(&gameplay, "id = ?", gameplayID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && gameplay.ConsumerID != consumerID) {
		return GameplayView{}, fmt.Errorf("gameplay %s: %w", gameplayID, ErrNotFound)
	}
	if err != nil {
		return GameplayView{}, err
	}

	var collection models.Collection
	if err := g.db.WithContext(ctx).Preload("Producer").First(&collection, "id = ?", gameplay.CollectionID).Error; err != nil {
		return GameplayView{}, err
	}
	var card models.Card
	if err := g.db.WithContext(ctx).First(&card, "id = ?", gameplay.CardID).Error; err != nil {
		return GameplayView{}, err
	}
	rarity := ""
	if card.RarityName != nil {
		rarity = *card.RarityName
	}

	// Assets live under the producer's key. The signing call is a pure
	// read; if it fails nothing committed earlier is affected.
	url, err := g.storage.CardURL(ctx, collection.ProducerID, collection.ID, card.ID)
	if err != nil {
		return GameplayView{}, fmt.Errorf("card url: %w", err)
	}

	return GameplayView{
		CollectionID:   collection.ID,
		CollectionName: collection.Name,
		ProducerSlug:   collection.Producer.Slug,
		Rarity:         rarity,
		URL:            url,
	}, nil
}
