// Package snapshot reads and writes full-ledger dumps as CSV tables or a
// single JSON document.
package snapshot

import (
	"context"
	"errors"
	"strings"

	"github.com/iho/fintrack/internal/usecase"
)

// ErrInvalidPath is returned when an export or import path is empty or
// whitespace-only.
var ErrInvalidPath = errors.New("path must not be empty")

// dateLayout is the operation date format in CSV snapshots.
const dateLayout = "2006-01-02"

// Store is the wholesale state surface of the ledger engine that the
// codecs drive. CSV import appends through Merge; JSON import replaces
// through Restore.
type Store interface {
	Dump(ctx context.Context) (*usecase.Snapshot, error)
	Restore(ctx context.Context, snap *usecase.Snapshot) error
	Merge(ctx context.Context, snap *usecase.Snapshot) error
}

func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}
	return nil
}
