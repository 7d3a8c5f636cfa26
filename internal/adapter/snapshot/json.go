package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// JSONCodec dumps the ledger into a single indented JSON document and
// reads it back. Unlike the CSV codec, importing replaces the engine's
// entire state.
type JSONCodec struct {
	store Store
}

// NewJSONCodec creates a JSONCodec over the given store.
func NewJSONCodec(store Store) *JSONCodec {
	return &JSONCodec{store: store}
}

type jsonDocument struct {
	Accounts   []jsonAccount   `json:"Accounts"`
	Categories []jsonCategory  `json:"Categories"`
	Operations []jsonOperation `json:"Operations"`
}

type jsonAccount struct {
	ID      string          `json:"Id"`
	Name    string          `json:"Name"`
	Balance decimal.Decimal `json:"Balance"`
}

type jsonCategory struct {
	ID   string                 `json:"Id"`
	Type domain.TransactionType `json:"Type"`
	Name string                 `json:"Name"`
}

type jsonOperation struct {
	ID            string                 `json:"Id"`
	Type          domain.TransactionType `json:"Type"`
	BankAccountID string                 `json:"BankAccountId"`
	Amount        decimal.Decimal        `json:"Amount"`
	Date          time.Time              `json:"Date"`
	Description   string                 `json:"Description"`
	CategoryID    string                 `json:"CategoryId"`
}

// Export writes the full ledger state to path.
func (c *JSONCodec) Export(ctx context.Context, path string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	snap, err := c.store.Dump(ctx)
	if err != nil {
		return err
	}

	doc := jsonDocument{
		Accounts:   make([]jsonAccount, 0, len(snap.Accounts)),
		Categories: make([]jsonCategory, 0, len(snap.Categories)),
		Operations: make([]jsonOperation, 0, len(snap.Operations)),
	}
	for _, a := range snap.Accounts {
		doc.Accounts = append(doc.Accounts, jsonAccount{ID: a.ID, Name: a.Name, Balance: a.Balance})
	}
	for _, cat := range snap.Categories {
		doc.Categories = append(doc.Categories, jsonCategory{ID: cat.ID, Type: cat.Type, Name: cat.Name})
	}
	for _, op := range snap.Operations {
		doc.Operations = append(doc.Operations, jsonOperation{
			ID:            op.ID,
			Type:          op.Type,
			BankAccountID: op.BankAccountID,
			Amount:        op.Amount,
			Date:          op.Date,
			Description:   op.Description,
			CategoryID:    op.CategoryID,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Import reads a JSON snapshot from path and replaces the engine's state
// with it, keeping all identities verbatim.
func (c *JSONCodec) Import(ctx context.Context, path string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	snap := &usecase.Snapshot{
		Accounts:   make([]*domain.Account, 0, len(doc.Accounts)),
		Categories: make([]*domain.Category, 0, len(doc.Categories)),
		Operations: make([]*domain.Operation, 0, len(doc.Operations)),
	}
	for _, a := range doc.Accounts {
		snap.Accounts = append(snap.Accounts, domain.RestoreAccount(a.ID, a.Name, a.Balance))
	}
	for _, cat := range doc.Categories {
		snap.Categories = append(snap.Categories, domain.RestoreCategory(cat.ID, cat.Type, cat.Name))
	}
	for _, op := range doc.Operations {
		operation, err := domain.RestoreOperation(op.ID, op.Type, op.BankAccountID, op.Amount, op.Date, op.Description, op.CategoryID)
		if err != nil {
			return fmt.Errorf("operation %s: %w", op.ID, err)
		}
		snap.Operations = append(snap.Operations, operation)
	}

	return c.store.Restore(ctx, snap)
}
