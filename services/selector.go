package services

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"gorm.io/gorm"

	"github.com/lelaut/snaplu.cc/models"
)

// CardSelector draws a single card from a collection with probability
// proportional to its rarity's drop rate. Cards without a rarity are free
// cards and never eligible.
type CardSelector struct {
	db *gorm.DB

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCardSelector builds a selector over db. The seed fixes the random
// source so a draw sequence can be reproduced in tests; production callers
// should seed from NewSeed.
func NewCardSelector(db *gorm.DB, seed int64) *CardSelector {
	return &CardSelector{db: db, rng: rand.New(rand.NewSource(seed))}
}

// NewSeed returns a high-entropy seed for production selectors.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// SelectOne picks exactly one eligible card from the collection. Every
// eligible card i gets a sampling key -ln(U_i)/w_i and the minimum key wins,
// the single-draw case of Efraimidis-Spirakis weighted sampling. Rows are
// streamed and folded in one pass, never materialized.
func (s *CardSelector) SelectOne(ctx context.Context, collectionID string) (string, error) {
	rows, err := s.db.WithContext(ctx).
		Model(&models.Card{}).
		Select("cards.id, rarities.drop_rate").
		Joins("INNER JOIN rarities ON rarities.name = cards.rarity_name").
		Where("cards.collection_id = ?", collectionID).
		Rows()
	if err != nil {
		return "", fmt.Errorf("stream eligible cards: %w", err)
	}
	defer rows.Close()

	selected := ""
	minKey := math.Inf(1)
	for rows.Next() {
		var id string
		var dropRate float64
		if err := rows.Scan(&id, &dropRate); err != nil {
			return "", fmt.Errorf("scan eligible card: %w", err)
		}
		if dropRate <= 0 {
			continue
		}
		if key := -math.Log(s.uniform()) / dropRate; key < minKey {
			selected, minKey = id, key
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("stream eligible cards: %w", err)
	}

	if selected == "" {
		return "", fmt.Errorf("collection %s: %w", collectionID, ErrNoEligibleCard)
	}
	return selected, nil
}

// uniform draws from (0,1). Float64 covers [0,1), so zero is redrawn to keep
// the log finite.
func (s *CardSelector) uniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if u := s.rng.Float64(); u > 0 {
			return u
		}
	}
}
