package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/lelaut/snaplu.cc/models"
)

func TestSelectOneExcludesFreeCards(t *testing.T) {
	db := newTestDB(t)
	collectionID := createCollection(t, db, "price_x")

	eligible := createCard(t, db, collectionID, strPtr("Common"))
	createCard(t, db, collectionID, nil)
	createCard(t, db, collectionID, nil)

	selector := NewCardSelector(db, 1)
	for i := 0; i < 50; i++ {
		got, err := selector.SelectOne(context.Background(), collectionID)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if got != eligible {
			t.Fatalf("draw %d selected free card %s", i, got)
		}
	}
}

func TestSelectOneNoEligibleCard(t *testing.T) {
	db := newTestDB(t)
	selector := NewCardSelector(db, 1)

	t.Run("empty collection", func(t *testing.T) {
		collectionID := createCollection(t, db, "price_x")
		_, err := selector.SelectOne(context.Background(), collectionID)
		if !errors.Is(err, ErrNoEligibleCard) {
			t.Fatalf("want ErrNoEligibleCard, got %v", err)
		}
	})

	t.Run("only free cards", func(t *testing.T) {
		collectionID := createCollection(t, db, "price_y")
		createCard(t, db, collectionID, nil)
		createCard(t, db, collectionID, nil)
		_, err := selector.SelectOne(context.Background(), collectionID)
		if !errors.Is(err, ErrNoEligibleCard) {
			t.Fatalf("want ErrNoEligibleCard, got %v", err)
		}
	})
}

func TestSelectOneDeterministicWithSeed(t *testing.T) {
	db := newTestDB(t)
	collectionID := createCollection(t, db, "price_x")
	for i := 0; i < 5; i++ {
		createCard(t, db, collectionID, strPtr("Common"))
	}

	const draws = 20
	pick := func(seed int64) []string {
		selector := NewCardSelector(db, seed)
		out := make([]string, 0, draws)
		for i := 0; i < draws; i++ {
			id, err := selector.SelectOne(context.Background(), collectionID)
			if err != nil {
				t.Fatalf("draw %d: %v", i, err)
			}
			out = append(out, id)
		}
		return out
	}

	first := pick(99)
	second := pick(99)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs under the same seed: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestSelectOneWeightFidelity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 100k-draw fidelity check in short mode")
	}

	db := newTestDB(t)
	weights := map[string]float64{
		"COMMON":   0.8,
		"UNCOMMON": 0.16,
		"RARE":     0.04,
	}
	for name, w := range weights {
		if err := db.Create(&models.Rarity{Name: name, DropRate: w}).Error; err != nil {
			t.Fatalf("create rarity %s: %v", name, err)
		}
	}

	collectionID := createCollection(t, db, "price_x")
	cardRarity := map[string]string{}
	for name := range weights {
		cardRarity[createCard(t, db, collectionID, strPtr(name))] = name
	}

	const draws = 100000
	counts := map[string]int{}
	selector := NewCardSelector(db, 7)
	for i := 0; i < draws; i++ {
		id, err := selector.SelectOne(context.Background(), collectionID)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		counts[cardRarity[id]]++
	}

	const tolerance = 0.01
	for name, want := range weights {
		got := float64(counts[name]) / draws
		if math.Abs(got-want) > tolerance {
			t.Errorf("rarity %s drawn with frequency %.4f, want %.2f±%.2f", name, got, want, tolerance)
		}
	}
}
