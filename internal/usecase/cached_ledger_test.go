package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
	"github.com/iho/fintrack/internal/usecase/mocks"
)

func TestCachedLedger_ListAccounts_ServedFromCacheWithinTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockLedger(ctrl)
	clock := mocks.NewMockClock(ctrl)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	accounts := []*domain.Account{domain.RestoreAccount("acc-1", "checking", decimal.NewFromInt(100))}
	inner.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil).Times(1)

	cached := usecase.NewCachedLedger(inner, 30*time.Second, clock)
	ctx := context.Background()

	first, err := cached.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 29 seconds later the TTL has not elapsed; the inner ledger must not
	// be consulted again.
	now = base.Add(29 * time.Second)
	second, err := cached.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Error("expected identical cached result")
	}
}

func TestCachedLedger_ListAccounts_RefetchesAfterTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockLedger(ctrl)
	clock := mocks.NewMockClock(ctrl)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	inner.EXPECT().ListAccounts(gomock.Any()).Return(nil, nil).Times(2)

	cached := usecase.NewCachedLedger(inner, 30*time.Second, clock)
	ctx := context.Background()

	if _, err := cached.ListAccounts(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = base.Add(31 * time.Second)
	if _, err := cached.ListAccounts(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCachedLedger_AccountMutationsInvalidate(t *testing.T) {
	ctx := context.Background()
	account := domain.RestoreAccount("acc-1", "checking", decimal.Zero)

	tests := []struct {
		name   string
		expect func(inner *mocks.MockLedger)
		mutate func(cached *usecase.CachedLedger) error
	}{
		{
			name: "add account",
			expect: func(inner *mocks.MockLedger) {
				inner.EXPECT().AddAccount(gomock.Any(), account).Return(nil)
			},
			mutate: func(cached *usecase.CachedLedger) error {
				return cached.AddAccount(ctx, account)
			},
		},
		{
			name: "remove account",
			expect: func(inner *mocks.MockLedger) {
				inner.EXPECT().RemoveAccount(gomock.Any(), "acc-1").Return(nil)
			},
			mutate: func(cached *usecase.CachedLedger) error {
				return cached.RemoveAccount(ctx, "acc-1")
			},
		},
		{
			name: "edit account",
			expect: func(inner *mocks.MockLedger) {
				inner.EXPECT().EditAccount(gomock.Any(), "acc-1", "renamed").Return(nil)
			},
			mutate: func(cached *usecase.CachedLedger) error {
				return cached.EditAccount(ctx, "acc-1", "renamed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			inner := mocks.NewMockLedger(ctrl)
			clock := mocks.NewMockClock(ctrl)

			// The clock never advances, so without invalidation the second
			// read would be served from cache.
			base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			clock.EXPECT().Now().Return(base).AnyTimes()

			inner.EXPECT().ListAccounts(gomock.Any()).Return(nil, nil).Times(2)
			tt.expect(inner)

			cached := usecase.NewCachedLedger(inner, 30*time.Second, clock)

			if _, err := cached.ListAccounts(ctx); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := tt.mutate(cached); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := cached.ListAccounts(ctx); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCachedLedger_ListAccountsErrorNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockLedger(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()

	wantErr := errors.New("listing failed")
	gomock.InOrder(
		inner.EXPECT().ListAccounts(gomock.Any()).Return(nil, wantErr),
		inner.EXPECT().ListAccounts(gomock.Any()).Return([]*domain.Account{}, nil),
	)

	cached := usecase.NewCachedLedger(inner, 30*time.Second, clock)
	ctx := context.Background()

	if _, err := cached.ListAccounts(ctx); !errors.Is(err, wantErr) {
		t.Fatalf("expected listing error, got %v", err)
	}
	if _, err := cached.ListAccounts(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Category, operation and query calls bypass the cache entirely; the clock
// must never be consulted for them.
func TestCachedLedger_PassThroughCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockLedger(ctrl)
	clock := mocks.NewMockClock(ctrl)

	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	category := domain.RestoreCategory("cat-1", domain.TransactionTypeIncome, "salary")
	operation, err := domain.RestoreOperation("op-1", domain.TransactionTypeIncome, "acc-1", decimal.NewFromInt(10), start, "", "cat-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input := usecase.EditOperationInput{Amount: decimal.NewFromInt(20), Date: start}

	inner.EXPECT().AddCategory(ctx, category).Return(nil)
	inner.EXPECT().RemoveCategory(ctx, "cat-1").Return(nil)
	inner.EXPECT().EditCategory(ctx, "cat-1", "bonus", domain.TransactionTypeExpense).Return(nil)
	inner.EXPECT().ListCategories(ctx).Return(nil, nil)
	inner.EXPECT().AddOperation(ctx, operation).Return(nil)
	inner.EXPECT().RemoveOperation(ctx, "op-1").Return(nil)
	inner.EXPECT().EditOperation(ctx, "op-1", input).Return(nil)
	inner.EXPECT().ListOperations(ctx).Return(nil, nil)
	inner.EXPECT().IncomeExpenseDifference(ctx, start, end).Return(decimal.NewFromInt(150), nil)
	inner.EXPECT().GroupOperationsByCategory(ctx, start, end).Return(nil, nil)

	cached := usecase.NewCachedLedger(inner, 30*time.Second, clock)

	if err := cached.AddCategory(ctx, category); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cached.RemoveCategory(ctx, "cat-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cached.EditCategory(ctx, "cat-1", "bonus", domain.TransactionTypeExpense); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.ListCategories(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cached.AddOperation(ctx, operation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cached.RemoveOperation(ctx, "op-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cached.EditOperation(ctx, "op-1", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.ListOperations(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff, err := cached.IncomeExpenseDifference(ctx, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diff.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected difference 150, got %s", diff)
	}
	if _, err := cached.GroupOperationsByCategory(ctx, start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// When the cash effect fails, the operation record must never reach the
// repository. Expressed with strict mocks: no Create and no Update are
// expected.
func TestLedgerUseCase_AddOperation_NoRecordOnFailedWithdrawal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	categoryRepo := mocks.NewMockCategoryRepository(ctrl)
	operationRepo := mocks.NewMockOperationRepository(ctrl)

	account := domain.RestoreAccount("acc-1", "checking", decimal.NewFromInt(100))
	accountRepo.EXPECT().GetByID(gomock.Any(), "acc-1").Return(account, nil)

	engine := usecase.NewLedgerUseCase(accountRepo, categoryRepo, operationRepo)

	op, err := domain.RestoreOperation("op-1", domain.TransactionTypeExpense, "acc-1", decimal.NewFromInt(150), time.Now(), "", "cat-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := engine.AddOperation(context.Background(), op); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}
