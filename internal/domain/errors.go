package domain

import "errors"

var (
	// Amount errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Lookup errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrOperationNotFound = errors.New("operation not found")

	ErrUnknownTransactionType = errors.New("unknown transaction type")
)
