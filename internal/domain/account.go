package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a bank account holding a running balance.
type Account struct {
	ID      string
	Name    string
	Balance decimal.Decimal
}

// RestoreAccount rebuilds an account with a caller-supplied identity, as
// read back from a snapshot. The initial balance is accepted as-is, even
// negative.
func RestoreAccount(id, name string, balance decimal.Decimal) *Account {
	return &Account{
		ID:      id,
		Name:    name,
		Balance: balance,
	}
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw subtracts amount from the balance. The balance is left untouched
// when the withdrawal cannot be covered.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
