package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IDGenerator mints identities for newly created entities.
type IDGenerator interface {
	Generate() string
}

// Factory constructs validated entities with fresh identities.
type Factory struct {
	ids IDGenerator
}

// NewFactory creates a new Factory.
func NewFactory(ids IDGenerator) *Factory {
	return &Factory{ids: ids}
}

// NewAccount creates an account with a starting balance. The balance is not
// validated; a negative starting balance is accepted.
func (f *Factory) NewAccount(name string, initialBalance decimal.Decimal) *Account {
	return RestoreAccount(f.ids.Generate(), name, initialBalance)
}

// NewCategory creates a category of the given kind.
func (f *Factory) NewCategory(name string, t TransactionType) *Category {
	return RestoreCategory(f.ids.Generate(), t, name)
}

// NewOperation creates an operation against a live account. An expense that
// exceeds the account's current balance is rejected up front; the ledger
// engine re-validates independently when the operation is added, since
// direct construction can bypass the factory.
func (f *Factory) NewOperation(t TransactionType, account *Account, amount decimal.Decimal, date time.Time, description string, category *Category) (*Operation, error) {
	if t == TransactionTypeExpense && amount.GreaterThan(account.Balance) {
		return nil, ErrInsufficientFunds
	}
	return RestoreOperation(f.ids.Generate(), t, account.ID, amount, date, description, category.ID)
}
