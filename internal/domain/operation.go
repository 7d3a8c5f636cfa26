package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is a single dated income or expense transaction. It references
// its account and category by id only; the references are resolved by the
// ledger engine at use time and may dangle after a removal.
type Operation struct {
	ID            string
	Type          TransactionType
	BankAccountID string
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	CategoryID    string
}

// RestoreOperation rebuilds an operation with a caller-supplied identity.
// The amount must be strictly positive.
func RestoreOperation(id string, t TransactionType, accountID string, amount decimal.Decimal, date time.Time, description, categoryID string) (*Operation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	return &Operation{
		ID:            id,
		Type:          t,
		BankAccountID: accountID,
		Amount:        amount,
		Date:          date,
		Description:   description,
		CategoryID:    categoryID,
	}, nil
}

// Update replaces the mutable fields. It never touches any account balance;
// keeping the balance consistent with the new amount is the ledger engine's
// job.
func (o *Operation) Update(amount decimal.Decimal, date time.Time, description, categoryID string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	o.Amount = amount
	o.Date = date
	o.Description = description
	o.CategoryID = categoryID
	return nil
}
