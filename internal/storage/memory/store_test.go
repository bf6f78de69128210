package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgbank/bank-account-api/internal/models"
)

func TestClientStoreRoundTrip(t *testing.T) {
	store := NewClientStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, models.Client{LastName: "Doe", FirstName: "John", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(saved.ID, "cli-") {
		t.Errorf("expected assigned ID, got %q", saved.ID)
	}

	got, ok, err := store.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected client to exist")
	}
	if got.LastName != "Doe" {
		t.Errorf("unexpected client: %+v", got)
	}

	_, ok, err = store.FindByID(ctx, "cli-missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected absent client")
	}
}

func TestAccountStoreRoundTrip(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, models.Account{
		Balance:    decimal.Zero,
		Client:     models.Client{ID: "cli-1", LastName: "Doe"},
		CreatedAt:  time.Now().UTC(),
		Statements: []models.Statement{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(saved.ID, "acc-") {
		t.Errorf("expected assigned ID, got %q", saved.ID)
	}

	// Save with an existing ID is an upsert, not a second document.
	saved.Balance = decimal.NewFromInt(10)
	saved.Statements = append(saved.Statements, models.Statement{
		Timestamp:    time.Now().UTC(),
		Amount:       decimal.NewFromInt(10),
		BalanceAfter: decimal.NewFromInt(10),
	})
	resaved, err := store.Save(ctx, saved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resaved.ID != saved.ID {
		t.Errorf("expected ID preserved, got %q", resaved.ID)
	}

	got, ok, err := store.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected account to exist")
	}
	if !got.Balance.Equal(decimal.NewFromInt(10)) || len(got.Statements) != 1 {
		t.Errorf("unexpected account: %+v", got)
	}
}

func TestAccountStoreCopiesAggregates(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, models.Account{
		Balance: decimal.NewFromInt(5),
		Statements: []models.Statement{
			{Amount: decimal.NewFromInt(5), BalanceAfter: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, _, err := store.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Appending to a loaded copy must not leak into the stored document.
	loaded.Statements = append(loaded.Statements, models.Statement{Amount: decimal.NewFromInt(1)})

	reloaded, _, err := store.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reloaded.Statements) != 1 {
		t.Errorf("stored document was mutated: %d statements", len(reloaded.Statements))
	}
}
