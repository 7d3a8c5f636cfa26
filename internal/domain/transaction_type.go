package domain

import (
	"fmt"
	"strings"
)

// TransactionType tags a category or operation as money in or money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// ParseTransactionType maps a textual kind (case-insensitive) to a
// TransactionType. Used by snapshot import and the CLI.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return TransactionTypeIncome, nil
	case "expense":
		return TransactionTypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
	}
}

func (t TransactionType) String() string {
	return string(t)
}
