package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/fintrack/internal/adapter/repository/memory"
	"github.com/iho/fintrack/internal/adapter/snapshot"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/infrastructure/config"
	"github.com/iho/fintrack/internal/infrastructure/logger"
	"github.com/iho/fintrack/internal/usecase"
)

// app wires the in-memory ledger stack together for the CLI.
type app struct {
	log     zerolog.Logger
	cfg     *config.Config
	engine  *usecase.LedgerUseCase
	ledger  usecase.Ledger
	factory *domain.Factory
	csv     *snapshot.CSVCodec
	json    *snapshot.JSONCodec
}

func newApp() (*app, error) {
	// Missing .env is fine, environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	engine := usecase.NewLedgerUseCase(
		memory.NewAccountRepository(),
		memory.NewCategoryRepository(),
		memory.NewOperationRepository(),
	)

	return &app{
		log:     log,
		cfg:     cfg,
		engine:  engine,
		ledger:  usecase.NewCachedLedger(engine, cfg.AccountCacheTTL, usecase.SystemClock{}),
		factory: domain.NewFactory(memory.NewULIDGenerator()),
		csv:     snapshot.NewCSVCodec(engine),
		json:    snapshot.NewJSONCodec(engine),
	}, nil
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "fintrack",
		Short: "FinTrack personal finance ledger",
		Long:  `An interactive console for tracking accounts, categories and operations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runMenu(a, cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}

	rootCmd.AddCommand(exportCmd(a), importCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func exportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export the ledger to CSV files or a JSON snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch format {
			case "csv":
				path := a.cfg.SnapshotDir
				if len(args) > 0 {
					path = args[0]
				}
				return a.csv.Export(ctx, path)
			case "json":
				path := a.cfg.SnapshotFile
				if len(args) > 0 {
					path = args[0]
				}
				return a.json.Export(ctx, path)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Snapshot format: csv or json")
	return cmd
}

func importCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Import a CSV or JSON snapshot into the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch format {
			case "csv":
				path := a.cfg.SnapshotDir
				if len(args) > 0 {
					path = args[0]
				}
				return a.csv.Import(ctx, path)
			case "json":
				path := a.cfg.SnapshotFile
				if len(args) > 0 {
					path = args[0]
				}
				return a.json.Import(ctx, path)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Snapshot format: csv or json")
	return cmd
}
