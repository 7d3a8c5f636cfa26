package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
)

// LedgerUseCase is the ledger consistency engine. It owns the three
// collections through the repositories and is the only component that
// mutates them. Balance effects are always applied before the operation
// record is committed, so a failed withdrawal leaves the history untouched.
//
// The engine assumes a single logical owner; a concurrent host must
// serialize access to one instance.
type LedgerUseCase struct {
	accounts   AccountRepository
	categories CategoryRepository
	operations OperationRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accounts AccountRepository, categories CategoryRepository, operations OperationRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accounts:   accounts,
		categories: categories,
		operations: operations,
	}
}

// AddAccount registers an account.
func (uc *LedgerUseCase) AddAccount(ctx context.Context, account *domain.Account) error {
	return uc.accounts.Create(ctx, account)
}

// RemoveAccount removes an account by id. Removing an unknown id is a
// no-op. Operations referencing the account are left in place; removal
// never cascades.
func (uc *LedgerUseCase) RemoveAccount(ctx context.Context, id string) error {
	return uc.accounts.Delete(ctx, id)
}

// EditAccount renames an account.
func (uc *LedgerUseCase) EditAccount(ctx context.Context, id, newName string) error {
	account, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	account.Name = newName
	return uc.accounts.Update(ctx, account)
}

// ListAccounts returns all accounts in insertion order.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accounts.List(ctx)
}

// AddCategory registers a category.
func (uc *LedgerUseCase) AddCategory(ctx context.Context, category *domain.Category) error {
	return uc.categories.Create(ctx, category)
}

// RemoveCategory removes a category by id. Removing an unknown id is a
// no-op. Operations keep the dangling category reference.
func (uc *LedgerUseCase) RemoveCategory(ctx context.Context, id string) error {
	return uc.categories.Delete(ctx, id)
}

// EditCategory replaces a category's name and kind.
func (uc *LedgerUseCase) EditCategory(ctx context.Context, id, newName string, newType domain.TransactionType) error {
	category, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	category.UpdateName(newName)
	category.UpdateType(newType)
	return uc.categories.Update(ctx, category)
}

// ListCategories returns all categories in insertion order.
func (uc *LedgerUseCase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return uc.categories.List(ctx)
}

// AddOperation applies the operation's cash effect to the referenced
// account and then records the operation. When the cash effect fails the
// operation is not recorded.
func (uc *LedgerUseCase) AddOperation(ctx context.Context, operation *domain.Operation) error {
	account, err := uc.accounts.GetByID(ctx, operation.BankAccountID)
	if err != nil {
		return err
	}

	if operation.Type == domain.TransactionTypeIncome {
		err = account.Deposit(operation.Amount)
	} else {
		err = account.Withdraw(operation.Amount)
	}
	if err != nil {
		return err
	}

	if err := uc.accounts.Update(ctx, account); err != nil {
		return err
	}

	return uc.operations.Create(ctx, operation)
}

// RemoveOperation removes the operation record only. The account balance
// effect is not reversed.
func (uc *LedgerUseCase) RemoveOperation(ctx context.Context, id string) error {
	return uc.operations.Delete(ctx, id)
}

// EditOperationInput carries the replacement fields for an operation edit.
type EditOperationInput struct {
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CategoryID  string
}

// EditOperation replaces an operation's fields and keeps the account
// balance consistent with the net amount change. The balance is adjusted
// by the delta between the new and old amount rather than recomputed: for
// an income operation a positive delta is deposited and a negative delta
// withdrawn, mirrored for an expense. The balance adjustment happens
// before the record is mutated, so an uncovered withdrawal leaves the
// operation unchanged.
//
// A zero delta lands in the deposit branch and is rejected as an invalid
// amount; editing an operation without changing its amount fails.
func (uc *LedgerUseCase) EditOperation(ctx context.Context, id string, input EditOperationInput) error {
	operation, err := uc.operations.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	account, err := uc.accounts.GetByID(ctx, operation.BankAccountID)
	if err != nil {
		return err
	}

	delta := input.Amount.Sub(operation.Amount)
	if operation.Type == domain.TransactionTypeIncome {
		if delta.Sign() >= 0 {
			err = account.Deposit(delta)
		} else {
			err = account.Withdraw(delta.Neg())
		}
	} else {
		if delta.Sign() >= 0 {
			err = account.Withdraw(delta)
		} else {
			err = account.Deposit(delta.Neg())
		}
	}
	if err != nil {
		return err
	}

	if err := uc.accounts.Update(ctx, account); err != nil {
		return err
	}

	if err := operation.Update(input.Amount, input.Date, input.Description, input.CategoryID); err != nil {
		return err
	}
	return uc.operations.Update(ctx, operation)
}

// ListOperations returns all operations in insertion order.
func (uc *LedgerUseCase) ListOperations(ctx context.Context) ([]*domain.Operation, error) {
	return uc.operations.List(ctx)
}

// IncomeExpenseDifference sums income minus expense amounts over
// operations dated within [start, end] inclusive. Zero when nothing
// matches.
func (uc *LedgerUseCase) IncomeExpenseDifference(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	operations, err := uc.operations.ListByDateRange(ctx, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	diff := decimal.Zero
	for _, op := range operations {
		if op.Type == domain.TransactionTypeIncome {
			diff = diff.Add(op.Amount)
		} else {
			diff = diff.Sub(op.Amount)
		}
	}
	return diff, nil
}

// GroupOperationsByCategory sums amounts per category id over operations
// dated within [start, end] inclusive. The key is the raw category id even
// when that category has been removed.
func (uc *LedgerUseCase) GroupOperationsByCategory(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error) {
	operations, err := uc.operations.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]decimal.Decimal)
	for _, op := range operations {
		groups[op.CategoryID] = groups[op.CategoryID].Add(op.Amount)
	}
	return groups, nil
}

var _ Ledger = (*LedgerUseCase)(nil)
