package usecase

import (
	"context"

	"github.com/iho/fintrack/internal/domain"
)

// Snapshot is a point-in-time dump of the full ledger state.
type Snapshot struct {
	Accounts   []*domain.Account
	Categories []*domain.Category
	Operations []*domain.Operation
}

// Dump copies the full ledger state out of the engine.
func (uc *LedgerUseCase) Dump(ctx context.Context) (*Snapshot, error) {
	accounts, err := uc.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	operations, err := uc.operations.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Accounts:   accounts,
		Categories: categories,
		Operations: operations,
	}, nil
}

// Restore replaces the engine's entire state with the snapshot. The
// previous state is discarded.
func (uc *LedgerUseCase) Restore(ctx context.Context, snap *Snapshot) error {
	if err := uc.accounts.ReplaceAll(ctx, snap.Accounts); err != nil {
		return err
	}
	if err := uc.categories.ReplaceAll(ctx, snap.Categories); err != nil {
		return err
	}
	return uc.operations.ReplaceAll(ctx, snap.Operations)
}

// Merge appends the snapshot's records to the existing state. Records are
// inserted verbatim: identities are kept and no cash effects are applied,
// since imported balances already reflect the imported operations.
func (uc *LedgerUseCase) Merge(ctx context.Context, snap *Snapshot) error {
	for _, account := range snap.Accounts {
		if err := uc.accounts.Create(ctx, account); err != nil {
			return err
		}
	}
	for _, category := range snap.Categories {
		if err := uc.categories.Create(ctx, category); err != nil {
			return err
		}
	}
	for _, operation := range snap.Operations {
		if err := uc.operations.Create(ctx, operation); err != nil {
			return err
		}
	}
	return nil
}
