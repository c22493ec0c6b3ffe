package types

import (
	"context"
	"errors"
)

// Store is the tabular store adapter. Every backend treats the pantry as one
// table: Load returns all of it and Save replaces all of it.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(ctx context.Context, config Config) error

	// Detach releases backend resources. Idempotent.
	// After Detach, Load and Save return ErrStoreDetached.
	Detach() error

	// Load reads the entire table. A store that holds nothing yet returns
	// an empty table.
	Load(ctx context.Context) (PantryTable, error)

	// Save overwrites the entire table with table.
	Save(ctx context.Context, table PantryTable) error
}

// Store lifecycle and shape errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrMissingColumn   = errors.New("table is missing the Item or Expiration_Date column")
)
