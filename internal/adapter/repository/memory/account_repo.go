// Package memory provides in-memory repositories for the ledger engine.
// Entries are stored as copies and handed out as copies, so an entity
// mutated by a caller only changes stored state through an explicit
// Update. Insertion order is preserved.
package memory

import (
	"context"
	"sync"

	"github.com/iho/fintrack/internal/domain"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts []domain.Account
}

// NewAccountRepository creates an empty AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append(r.accounts, *account)
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			account := r.accounts[i]
			return &account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *AccountRepository) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == account.ID {
			r.accounts[i] = *account
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// Delete removes the account with the given id. Unknown ids are ignored.
func (r *AccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *AccountRepository) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	accounts := make([]*domain.Account, len(r.accounts))
	for i := range r.accounts {
		account := r.accounts[i]
		accounts[i] = &account
	}
	return accounts, nil
}

func (r *AccountRepository) ReplaceAll(_ context.Context, accounts []*domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		r.accounts = append(r.accounts, *account)
	}
	return nil
}
