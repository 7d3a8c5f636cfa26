package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

const (
	accountsFile   = "accounts.csv"
	categoriesFile = "categories.csv"
	operationsFile = "operations.csv"

	accountsHeader   = "Id,Name,Balance"
	categoriesHeader = "Id,Type,Name"
	operationsHeader = "Id,Type,BankAccountId,Amount,Date,Description,CategoryId"
)

// CSVCodec dumps the ledger into three flat CSV tables and reads them
// back. Rows are plain comma joins without quoting or escaping, so values
// containing commas corrupt the table; the JSON snapshot handles such
// data safely.
type CSVCodec struct {
	store Store
}

// NewCSVCodec creates a CSVCodec over the given store.
func NewCSVCodec(store Store) *CSVCodec {
	return &CSVCodec{store: store}
}

// Export writes accounts.csv, categories.csv and operations.csv into dir,
// creating it if needed.
func (c *CSVCodec) Export(ctx context.Context, dir string) error {
	if err := validatePath(dir); err != nil {
		return err
	}

	snap, err := c.store.Dump(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	accountRows := make([]string, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accountRows = append(accountRows, strings.Join([]string{a.ID, a.Name, a.Balance.String()}, ","))
	}
	if err := writeTable(filepath.Join(dir, accountsFile), accountsHeader, accountRows); err != nil {
		return err
	}

	categoryRows := make([]string, 0, len(snap.Categories))
	for _, cat := range snap.Categories {
		categoryRows = append(categoryRows, strings.Join([]string{cat.ID, cat.Type.String(), cat.Name}, ","))
	}
	if err := writeTable(filepath.Join(dir, categoriesFile), categoriesHeader, categoryRows); err != nil {
		return err
	}

	operationRows := make([]string, 0, len(snap.Operations))
	for _, op := range snap.Operations {
		operationRows = append(operationRows, strings.Join([]string{
			op.ID,
			op.Type.String(),
			op.BankAccountID,
			op.Amount.String(),
			op.Date.Format(dateLayout),
			op.Description,
			op.CategoryID,
		}, ","))
	}
	return writeTable(filepath.Join(dir, operationsFile), operationsHeader, operationRows)
}

// Import reads the three CSV tables from dir and appends their records to
// the existing ledger state, keeping the imported identities. A missing
// file means zero records of that entity type. Balances are taken as
// written; no cash effects are replayed.
func (c *CSVCodec) Import(ctx context.Context, dir string) error {
	if err := validatePath(dir); err != nil {
		return err
	}

	accounts, err := readTable(filepath.Join(dir, accountsFile), 3, parseAccountRow)
	if err != nil {
		return err
	}
	if err := c.store.Merge(ctx, &usecase.Snapshot{Accounts: accounts}); err != nil {
		return err
	}

	categories, err := readTable(filepath.Join(dir, categoriesFile), 3, parseCategoryRow)
	if err != nil {
		return err
	}
	if err := c.store.Merge(ctx, &usecase.Snapshot{Categories: categories}); err != nil {
		return err
	}

	operations, err := readTable(filepath.Join(dir, operationsFile), 7, parseOperationRow)
	if err != nil {
		return err
	}
	return c.store.Merge(ctx, &usecase.Snapshot{Operations: operations})
}

func writeTable(path, header string, rows []string) error {
	content := header + "\n" + strings.Join(rows, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readTable parses one table by positional column index. The header row
// is skipped, blank lines ignored.
func readTable[T any](path string, columns int, parse func([]string) (T, error)) ([]T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	lines := strings.Split(string(content), "\n")
	records := make([]T, 0, len(lines))
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != columns {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filepath.Base(path), i, columns, len(parts))
		}
		record, err := parse(parts)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filepath.Base(path), i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseAccountRow(parts []string) (*domain.Account, error) {
	balance, err := decimal.NewFromString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	return domain.RestoreAccount(parts[0], parts[1], balance), nil
}

func parseCategoryRow(parts []string) (*domain.Category, error) {
	kind, err := domain.ParseTransactionType(parts[1])
	if err != nil {
		return nil, err
	}
	return domain.RestoreCategory(parts[0], kind, parts[2]), nil
}

func parseOperationRow(parts []string) (*domain.Operation, error) {
	kind, err := domain.ParseTransactionType(parts[1])
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	date, err := time.Parse(dateLayout, parts[4])
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	return domain.RestoreOperation(parts[0], kind, parts[2], amount, date, parts[5], parts[6])
}
