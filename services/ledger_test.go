package services

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestLedgerDebit(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	ctx := context.Background()

	t.Run("covers cost", func(t *testing.T) {
		consumerID := createConsumer(t, db, 500)
		if err := ledger.Debit(ctx, consumerID, 200); err != nil {
			t.Fatalf("debit: %v", err)
		}
		if got := consumerCredits(t, db, consumerID); got != 300 {
			t.Fatalf("credits = %d, want 300", got)
		}
	})

	t.Run("exact balance", func(t *testing.T) {
		consumerID := createConsumer(t, db, 200)
		if err := ledger.Debit(ctx, consumerID, 200); err != nil {
			t.Fatalf("debit: %v", err)
		}
		if got := consumerCredits(t, db, consumerID); got != 0 {
			t.Fatalf("credits = %d, want 0", got)
		}
	})

	t.Run("insufficient", func(t *testing.T) {
		consumerID := createConsumer(t, db, 100)
		err := ledger.Debit(ctx, consumerID, 200)
		if !errors.Is(err, ErrInsufficientCredits) {
			t.Fatalf("want ErrInsufficientCredits, got %v", err)
		}
		if got := consumerCredits(t, db, consumerID); got != 100 {
			t.Fatalf("credits = %d, want 100 untouched", got)
		}
	})

	t.Run("unknown consumer", func(t *testing.T) {
		err := ledger.Debit(ctx, "nobody", 10)
		if !errors.Is(err, ErrInsufficientCredits) {
			t.Fatalf("want ErrInsufficientCredits, got %v", err)
		}
	})
}

func TestLedgerBalance(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	ctx := context.Background()

	consumerID := createConsumer(t, db, 750)
	balance, err := ledger.Balance(ctx, consumerID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 750 {
		t.Fatalf("balance = %d, want 750", balance)
	}

	if _, err := ledger.Balance(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// Concurrent debits against one balance must never overspend it.
func TestLedgerDebitConcurrent(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	consumerID := createConsumer(t, db, 500)

	const workers = 10
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.Debit(context.Background(), consumerID, 100)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrInsufficientCredits) {
			t.Fatalf("unexpected debit error: %v", err)
		}
	}

	if succeeded != 5 {
		t.Fatalf("%d debits succeeded, want exactly 5", succeeded)
	}
	if got := consumerCredits(t, db, consumerID); got != 0 {
		t.Fatalf("credits = %d, want 0 and never negative", got)
	}
}
