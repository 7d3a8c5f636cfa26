package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
)

// DefaultAccountCacheTTL bounds how stale a cached account list may be.
const DefaultAccountCacheTTL = 30 * time.Second

// CachedLedger wraps a Ledger and caches the account list for a bounded
// wall-clock window. Mutations that can change the account set or a
// displayed name invalidate the cache immediately; category, operation and
// query calls pass through uncached so derived figures are always fresh.
type CachedLedger struct {
	inner Ledger
	ttl   time.Duration
	clock Clock

	mu        sync.Mutex
	accounts  []*domain.Account
	fetchedAt time.Time
}

// NewCachedLedger creates a CachedLedger with the given TTL. A
// non-positive ttl falls back to DefaultAccountCacheTTL.
func NewCachedLedger(inner Ledger, ttl time.Duration, clock Clock) *CachedLedger {
	if ttl <= 0 {
		ttl = DefaultAccountCacheTTL
	}
	return &CachedLedger{
		inner: inner,
		ttl:   ttl,
		clock: clock,
	}
}

// ListAccounts serves from cache while the TTL has not elapsed, refetching
// lazily on the first read after invalidation or expiry.
func (c *CachedLedger) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.accounts != nil && now.Sub(c.fetchedAt) <= c.ttl {
		return c.accounts, nil
	}

	accounts, err := c.inner.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	c.accounts = accounts
	c.fetchedAt = now
	return accounts, nil
}

// AddAccount delegates and invalidates the cached account list.
func (c *CachedLedger) AddAccount(ctx context.Context, account *domain.Account) error {
	err := c.inner.AddAccount(ctx, account)
	c.invalidate()
	return err
}

// RemoveAccount delegates and invalidates the cached account list.
func (c *CachedLedger) RemoveAccount(ctx context.Context, id string) error {
	err := c.inner.RemoveAccount(ctx, id)
	c.invalidate()
	return err
}

// EditAccount delegates and invalidates the cached account list.
func (c *CachedLedger) EditAccount(ctx context.Context, id, newName string) error {
	err := c.inner.EditAccount(ctx, id, newName)
	c.invalidate()
	return err
}

func (c *CachedLedger) AddCategory(ctx context.Context, category *domain.Category) error {
	return c.inner.AddCategory(ctx, category)
}

func (c *CachedLedger) RemoveCategory(ctx context.Context, id string) error {
	return c.inner.RemoveCategory(ctx, id)
}

func (c *CachedLedger) EditCategory(ctx context.Context, id, newName string, newType domain.TransactionType) error {
	return c.inner.EditCategory(ctx, id, newName, newType)
}

func (c *CachedLedger) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return c.inner.ListCategories(ctx)
}

func (c *CachedLedger) AddOperation(ctx context.Context, operation *domain.Operation) error {
	return c.inner.AddOperation(ctx, operation)
}

func (c *CachedLedger) RemoveOperation(ctx context.Context, id string) error {
	return c.inner.RemoveOperation(ctx, id)
}

func (c *CachedLedger) EditOperation(ctx context.Context, id string, input EditOperationInput) error {
	return c.inner.EditOperation(ctx, id, input)
}

func (c *CachedLedger) ListOperations(ctx context.Context) ([]*domain.Operation, error) {
	return c.inner.ListOperations(ctx)
}

func (c *CachedLedger) IncomeExpenseDifference(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return c.inner.IncomeExpenseDifference(ctx, start, end)
}

func (c *CachedLedger) GroupOperationsByCategory(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error) {
	return c.inner.GroupOperationsByCategory(ctx, start, end)
}

func (c *CachedLedger) invalidate() {
	c.mu.Lock()
	c.accounts = nil
	c.mu.Unlock()
}

var _ Ledger = (*CachedLedger)(nil)
