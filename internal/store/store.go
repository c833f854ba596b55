// Package store persists the single résumé draft under a fixed key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/resume-latex/internal/types"
)

// StorageKey is the key the draft is kept under.
const StorageKey = "resume-generator-data"

// Supported drivers for Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrCorruptDraft is returned by Load when the stored value is not valid résumé JSON.
var ErrCorruptDraft = errors.New("stored draft is corrupt")

// Store is a key-value store holding one résumé draft.
type Store interface {
	// Load returns the saved draft, or nil with no error when nothing is saved.
	Load(ctx context.Context) (*types.ResumeData, error)
	// Save replaces the saved draft.
	Save(ctx context.Context, data *types.ResumeData) error
	// Clear removes the saved draft. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	Close() error
}

// Open connects to the backend named by driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, dsn)
	case DriverPostgres, "pgx":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q (want %s or %s)", driver, DriverSQLite, DriverPostgres)
	}
}

func encodeDraft(data *types.ResumeData) ([]byte, error) {
	if data == nil {
		return nil, errors.New("draft must not be nil")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}
	return b, nil
}

func decodeDraft(raw []byte) (*types.ResumeData, error) {
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDraft, err)
	}
	return &data, nil
}
