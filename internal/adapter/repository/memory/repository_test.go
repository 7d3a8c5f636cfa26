package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
)

func TestAccountRepository_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	for _, name := range []string{"first", "second", "third"} {
		if err := repo.Create(ctx, domain.RestoreAccount(name, name, decimal.Zero)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	accounts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
	for i, name := range []string{"first", "second", "third"} {
		if accounts[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, accounts[i].Name)
		}
	}
}

func TestAccountRepository_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	if err := repo.Create(ctx, domain.RestoreAccount("acc-1", "checking", decimal.NewFromInt(100))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutating the returned value must not change stored state until
	// Update commits it.
	if err := got.Withdraw(decimal.NewFromInt(60)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.GetByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected stored balance 100, got %s", stored.Balance)
	}

	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ = repo.GetByID(ctx, "acc-1")
	if !stored.Balance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected stored balance 40, got %s", stored.Balance)
	}
}

func TestAccountRepository_DeleteUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAccountRepository_UpdateUnknown(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	err := repo.Update(ctx, domain.RestoreAccount("missing", "x", decimal.Zero))
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestCategoryRepository_Roundtrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	cat := domain.RestoreCategory("cat-1", domain.TransactionTypeExpense, "food")
	if err := repo.Create(ctx, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, "cat-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "food" || got.Type != domain.TransactionTypeExpense {
		t.Errorf("unexpected category %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestOperationRepository_ListByDateRange(t *testing.T) {
	ctx := context.Background()
	repo := NewOperationRepository()

	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}
	for i, d := range []int{1, 5, 10, 20} {
		op, err := domain.RestoreOperation(
			string(rune('a'+i)), domain.TransactionTypeIncome, "acc-1",
			decimal.NewFromInt(int64(10*(i+1))), day(d), "", "cat-1",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Create(ctx, op); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Bounds are inclusive on both ends.
	operations, err := repo.ListByDateRange(ctx, day(5), day(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(operations))
	}
	if operations[0].ID != "b" || operations[1].ID != "c" {
		t.Errorf("unexpected operations: %s, %s", operations[0].ID, operations[1].ID)
	}

	operations, err = repo.ListByDateRange(ctx, day(25), day(28))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(operations) != 0 {
		t.Errorf("expected no operations, got %d", len(operations))
	}
}

func TestOperationRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewOperationRepository()

	op1, _ := domain.RestoreOperation("op-1", domain.TransactionTypeIncome, "acc-1", decimal.NewFromInt(10), time.Now(), "", "cat-1")
	if err := repo.Create(ctx, op1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	op2, _ := domain.RestoreOperation("op-2", domain.TransactionTypeExpense, "acc-2", decimal.NewFromInt(20), time.Now(), "", "cat-2")
	if err := repo.ReplaceAll(ctx, []*domain.Operation{op2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	operations, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(operations) != 1 || operations[0].ID != "op-2" {
		t.Fatalf("expected only op-2 after replace, got %d records", len(operations))
	}
}

func TestULIDGenerator_Generate(t *testing.T) {
	gen := NewULIDGenerator()

	a, b := gen.Generate(), gen.Generate()
	if len(a) != 26 {
		t.Errorf("expected 26-char ULID, got %d chars", len(a))
	}
	if a == b {
		t.Error("expected distinct ids")
	}
}
