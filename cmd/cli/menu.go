package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

const dateLayout = "2006-01-02"

// console drives the interactive menu loop. Every handler reports errors
// to the output and returns to the menu; user mistakes never end the
// session.
type console struct {
	app *app
	in  *bufio.Scanner
	out io.Writer
}

func runMenu(a *app, in io.Reader, out io.Writer) {
	c := &console{app: a, in: bufio.NewScanner(in), out: out}
	c.run()
}

func (c *console) run() {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1) accounts  2) categories  3) operations  4) analytics  5) snapshot  6) overview  0) exit")
		choice, ok := c.prompt("> ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			c.accountsMenu()
		case "2":
			c.categoriesMenu()
		case "3":
			c.operationsMenu()
		case "4":
			c.analyticsMenu()
		case "5":
			c.snapshotMenu()
		case "6":
			c.overview()
		case "0", "q", "quit", "exit":
			return
		default:
			fmt.Fprintln(c.out, "unknown choice")
		}
	}
}

func (c *console) overview() {
	ctx := context.Background()

	accounts, err := c.app.ledger.ListAccounts(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "accounts:")
	printAccounts(c.out, accounts)

	categories, err := c.app.ledger.ListCategories(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "categories:")
	printCategories(c.out, categories)

	operations, err := c.app.ledger.ListOperations(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "operations:")
	printOperations(c.out, operations)
}

func (c *console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) fail(err error) {
	c.app.log.Error().Err(err).Msg("command failed")
	fmt.Fprintf(c.out, "error: %v\n", err)
}

func (c *console) accountsMenu() {
	ctx := context.Background()
	choice, ok := c.prompt("a) add  r) remove  e) rename  l) list > ")
	if !ok {
		return
	}

	switch choice {
	case "a":
		name, ok := c.prompt("name: ")
		if !ok {
			return
		}
		raw, ok := c.prompt("initial balance: ")
		if !ok {
			return
		}
		balance, err := decimal.NewFromString(raw)
		if err != nil {
			c.fail(err)
			return
		}
		account := c.app.factory.NewAccount(name, balance)
		if err := c.app.ledger.AddAccount(ctx, account); err != nil {
			c.fail(err)
			return
		}
		fmt.Fprintf(c.out, "created account %s\n", account.ID)
	case "r":
		id, ok := c.prompt("account id: ")
		if !ok {
			return
		}
		if err := c.app.ledger.RemoveAccount(ctx, id); err != nil {
			c.fail(err)
		}
	case "e":
		id, ok := c.prompt("account id: ")
		if !ok {
			return
		}
		name, ok := c.prompt("new name: ")
		if !ok {
			return
		}
		if err := c.app.ledger.EditAccount(ctx, id, name); err != nil {
			c.fail(err)
		}
	case "l":
		accounts, err := c.app.ledger.ListAccounts(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		printAccounts(c.out, accounts)
	default:
		fmt.Fprintln(c.out, "unknown choice")
	}
}

func (c *console) categoriesMenu() {
	ctx := context.Background()
	choice, ok := c.prompt("a) add  r) remove  e) edit  l) list > ")
	if !ok {
		return
	}

	switch choice {
	case "a":
		name, ok := c.prompt("name: ")
		if !ok {
			return
		}
		kind, ok := c.promptType("type (Income/Expense): ")
		if !ok {
			return
		}
		category := c.app.factory.NewCategory(name, kind)
		if err := c.app.ledger.AddCategory(ctx, category); err != nil {
			c.fail(err)
			return
		}
		fmt.Fprintf(c.out, "created category %s\n", category.ID)
	case "r":
		id, ok := c.prompt("category id: ")
		if !ok {
			return
		}
		if err := c.app.ledger.RemoveCategory(ctx, id); err != nil {
			c.fail(err)
		}
	case "e":
		id, ok := c.prompt("category id: ")
		if !ok {
			return
		}
		name, ok := c.prompt("new name: ")
		if !ok {
			return
		}
		kind, ok := c.promptType("new type (Income/Expense): ")
		if !ok {
			return
		}
		if err := c.app.ledger.EditCategory(ctx, id, name, kind); err != nil {
			c.fail(err)
		}
	case "l":
		categories, err := c.app.ledger.ListCategories(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		printCategories(c.out, categories)
	default:
		fmt.Fprintln(c.out, "unknown choice")
	}
}

func (c *console) operationsMenu() {
	ctx := context.Background()
	choice, ok := c.prompt("a) add  r) remove  e) edit  l) list > ")
	if !ok {
		return
	}

	switch choice {
	case "a":
		c.addOperation(ctx)
	case "r":
		id, ok := c.prompt("operation id: ")
		if !ok {
			return
		}
		if err := c.app.ledger.RemoveOperation(ctx, id); err != nil {
			c.fail(err)
		}
	case "e":
		c.editOperation(ctx)
	case "l":
		operations, err := c.app.ledger.ListOperations(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		printOperations(c.out, operations)
	default:
		fmt.Fprintln(c.out, "unknown choice")
	}
}

func (c *console) addOperation(ctx context.Context) {
	accounts, err := c.app.ledger.ListAccounts(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	printAccounts(c.out, accounts)
	accountID, ok := c.prompt("account id: ")
	if !ok {
		return
	}
	account, err := c.findAccount(ctx, accountID)
	if err != nil {
		c.fail(err)
		return
	}

	categories, err := c.app.ledger.ListCategories(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	printCategories(c.out, categories)
	categoryID, ok := c.prompt("category id: ")
	if !ok {
		return
	}
	category, err := c.findCategory(ctx, categoryID)
	if err != nil {
		c.fail(err)
		return
	}

	raw, ok := c.prompt("amount: ")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		c.fail(err)
		return
	}

	date, ok := c.promptDate("date (YYYY-MM-DD, empty = today): ", time.Now())
	if !ok {
		return
	}

	description, ok := c.prompt("description: ")
	if !ok {
		return
	}

	operation, err := c.app.factory.NewOperation(category.Type, account, amount, date, description, category)
	if err != nil {
		c.fail(err)
		return
	}
	if err := c.app.ledger.AddOperation(ctx, operation); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "created operation %s\n", operation.ID)
}

func (c *console) editOperation(ctx context.Context) {
	id, ok := c.prompt("operation id: ")
	if !ok {
		return
	}
	raw, ok := c.prompt("new amount: ")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		c.fail(err)
		return
	}
	date, ok := c.promptDate("new date (YYYY-MM-DD, empty = today): ", time.Now())
	if !ok {
		return
	}
	description, ok := c.prompt("new description: ")
	if !ok {
		return
	}
	categoryID, ok := c.prompt("new category id: ")
	if !ok {
		return
	}

	err = c.app.ledger.EditOperation(ctx, id, usecase.EditOperationInput{
		Amount:      amount,
		Date:        date,
		Description: description,
		CategoryID:  categoryID,
	})
	if err != nil {
		c.fail(err)
	}
}

func (c *console) analyticsMenu() {
	ctx := context.Background()
	choice, ok := c.prompt("d) income/expense difference  g) totals by category > ")
	if !ok {
		return
	}

	start, ok := c.promptDate("from (YYYY-MM-DD): ", time.Time{})
	if !ok {
		return
	}
	end, ok := c.promptDate("to (YYYY-MM-DD): ", time.Time{})
	if !ok {
		return
	}

	switch choice {
	case "d":
		diff, err := c.app.ledger.IncomeExpenseDifference(ctx, start, end)
		if err != nil {
			c.fail(err)
			return
		}
		fmt.Fprintf(c.out, "income - expenses: %s\n", diff)
	case "g":
		totals, err := c.app.ledger.GroupOperationsByCategory(ctx, start, end)
		if err != nil {
			c.fail(err)
			return
		}
		printCategoryTotals(c.out, totals)
	default:
		fmt.Fprintln(c.out, "unknown choice")
	}
}

func (c *console) snapshotMenu() {
	ctx := context.Background()
	choice, ok := c.prompt("1) export csv  2) import csv  3) export json  4) import json > ")
	if !ok {
		return
	}

	var label, fallback string
	switch choice {
	case "1", "2":
		label, fallback = "directory", c.app.cfg.SnapshotDir
	case "3", "4":
		label, fallback = "file", c.app.cfg.SnapshotFile
	default:
		fmt.Fprintln(c.out, "unknown choice")
		return
	}

	path, ok := c.prompt(fmt.Sprintf("%s (empty = %s): ", label, fallback))
	if !ok {
		return
	}
	if path == "" {
		path = fallback
	}

	var err error
	switch choice {
	case "1":
		err = c.app.csv.Export(ctx, path)
	case "2":
		err = c.app.csv.Import(ctx, path)
	case "3":
		err = c.app.json.Export(ctx, path)
	case "4":
		err = c.app.json.Import(ctx, path)
	}
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "done")
}

// promptType reads a transaction kind, falling back to Expense when the
// input does not parse.
func (c *console) promptType(label string) (domain.TransactionType, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return "", false
	}
	kind, err := domain.ParseTransactionType(raw)
	if err != nil {
		return domain.TransactionTypeExpense, true
	}
	return kind, true
}

func (c *console) promptDate(label string, fallback time.Time) (time.Time, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return time.Time{}, false
	}
	if raw == "" {
		return fallback, true
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.fail(err)
		return fallback, true
	}
	return date, true
}

func (c *console) findAccount(ctx context.Context, id string) (*domain.Account, error) {
	accounts, err := c.app.ledger.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (c *console) findCategory(ctx context.Context, id string) (*domain.Category, error) {
	categories, err := c.app.ledger.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func printAccounts(out io.Writer, accounts []*domain.Account) {
	if len(accounts) == 0 {
		fmt.Fprintln(out, "no accounts")
		return
	}
	for _, account := range accounts {
		fmt.Fprintf(out, "%s  %s  %s\n", account.ID, truncate(account.Name, 30), account.Balance)
	}
}

func printCategories(out io.Writer, categories []*domain.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(out, "no categories")
		return
	}
	for _, category := range categories {
		fmt.Fprintf(out, "%s  %-7s  %s\n", category.ID, category.Type, truncate(category.Name, 30))
	}
}

func printOperations(out io.Writer, operations []*domain.Operation) {
	if len(operations) == 0 {
		fmt.Fprintln(out, "no operations")
		return
	}
	for _, op := range operations {
		fmt.Fprintf(out, "%s  %-7s  %s  %s  %s  %s\n",
			op.ID, op.Type, op.Amount, op.Date.Format(dateLayout), op.BankAccountID, truncate(op.Description, 40))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func printCategoryTotals(out io.Writer, totals map[string]decimal.Decimal) {
	if len(totals) == 0 {
		fmt.Fprintln(out, "no operations in range")
		return
	}
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "%s  %s\n", id, totals[id])
	}
}
