package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/adapter/repository/memory"
	"github.com/iho/fintrack/internal/adapter/snapshot"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/infrastructure/config"
	"github.com/iho/fintrack/internal/usecase"
)

func newTestApp() *app {
	engine := usecase.NewLedgerUseCase(
		memory.NewAccountRepository(),
		memory.NewCategoryRepository(),
		memory.NewOperationRepository(),
	)

	return &app{
		log: zerolog.Nop(),
		cfg: &config.Config{
			AccountCacheTTL: 30 * time.Second,
			SnapshotDir:     "data",
			SnapshotFile:    "data/ledger.json",
		},
		engine:  engine,
		ledger:  usecase.NewCachedLedger(engine, 30*time.Second, usecase.SystemClock{}),
		factory: domain.NewFactory(memory.NewULIDGenerator()),
		csv:     snapshot.NewCSVCodec(engine),
		json:    snapshot.NewJSONCodec(engine),
	}
}

func runScript(t *testing.T, a *app, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	runMenu(a, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	return out.String()
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestMenuAddAndListAccounts(t *testing.T) {
	a := newTestApp()

	out := runScript(t, a,
		"1", "a", "checking", "150.50",
		"1", "l",
		"0",
	)

	if !strings.Contains(out, "created account") {
		t.Fatalf("expected account creation confirmation, got:\n%s", out)
	}

	if !strings.Contains(out, "checking") || !strings.Contains(out, "150.5") {
		t.Fatalf("expected listed account with balance, got:\n%s", out)
	}
}

func TestMenuErrorKeepsSessionAlive(t *testing.T) {
	a := newTestApp()

	out := runScript(t, a,
		"3", "a", "no-such-account",
		"1", "l",
		"0",
	)

	if !strings.Contains(out, "error: "+domain.ErrAccountNotFound.Error()) {
		t.Fatalf("expected account lookup error, got:\n%s", out)
	}

	if !strings.Contains(out, "no accounts") {
		t.Fatalf("expected menu to keep running after error, got:\n%s", out)
	}
}

func TestMenuAddOperationThroughFactory(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()

	account := domain.RestoreAccount("acc-1", "main", decimal.NewFromInt(100))
	if err := a.ledger.AddAccount(ctx, account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	category := domain.RestoreCategory("cat-1", domain.TransactionTypeExpense, "food")
	if err := a.ledger.AddCategory(ctx, category); err != nil {
		t.Fatalf("seed category: %v", err)
	}

	out := runScript(t, a,
		"3", "a", "acc-1", "cat-1", "40", "2024-05-01", "lunch",
		"0",
	)

	if !strings.Contains(out, "created operation") {
		t.Fatalf("expected operation creation confirmation, got:\n%s", out)
	}

	accounts, err := a.engine.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if !accounts[0].Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected balance 60 after expense, got %s", accounts[0].Balance)
	}
}

func TestExportCommandWritesJSON(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()

	if err := a.ledger.AddAccount(ctx, domain.RestoreAccount("acc-1", "main", decimal.NewFromInt(10))); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ledger.json")
	cmd := exportCmd(a)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if !strings.Contains(string(content), `"acc-1"`) {
		t.Fatalf("expected exported account in snapshot, got:\n%s", content)
	}
}
