package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	// Delete removes the account with the given id. Deleting an unknown id
	// is a no-op.
	Delete(ctx context.Context, id string) error
	// List returns all accounts in insertion order.
	List(ctx context.Context) ([]*domain.Account, error)
	ReplaceAll(ctx context.Context, accounts []*domain.Account) error
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Category, error)
	ReplaceAll(ctx context.Context, categories []*domain.Category) error
}

// OperationRepository defines data access for operations.
type OperationRepository interface {
	Create(ctx context.Context, operation *domain.Operation) error
	GetByID(ctx context.Context, id string) (*domain.Operation, error)
	Update(ctx context.Context, operation *domain.Operation) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Operation, error)
	// ListByDateRange returns operations whose date falls in [start, end]
	// inclusive, in insertion order.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Operation, error)
	ReplaceAll(ctx context.Context, operations []*domain.Operation) error
}

// Ledger is the narrow contract the engine exposes to surrounding CLI and
// I/O code. CachedLedger wraps it; LedgerUseCase implements it.
type Ledger interface {
	AddAccount(ctx context.Context, account *domain.Account) error
	RemoveAccount(ctx context.Context, id string) error
	EditAccount(ctx context.Context, id, newName string) error
	ListAccounts(ctx context.Context) ([]*domain.Account, error)

	AddCategory(ctx context.Context, category *domain.Category) error
	RemoveCategory(ctx context.Context, id string) error
	EditCategory(ctx context.Context, id, newName string, newType domain.TransactionType) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	AddOperation(ctx context.Context, operation *domain.Operation) error
	RemoveOperation(ctx context.Context, id string) error
	EditOperation(ctx context.Context, id string, input EditOperationInput) error
	ListOperations(ctx context.Context) ([]*domain.Operation, error)

	IncomeExpenseDifference(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	GroupOperationsByCategory(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error)
}

// Clock abstracts wall-clock reads for cache expiry checks.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
