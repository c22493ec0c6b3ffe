// Package sqlite implements the pantry store on a local SQLite database
// ({data_dir}/pantry.db). Save replaces every row inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// FileName is the database file inside the data directory.
const FileName = "pantry.db"

// Backend implements types.Store using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (creating if needed) the database in DataDir and applies the
// schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, FileName))
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; the pantry is never accessed concurrently.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createPantry); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	b.db = db
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

// Load returns all rows in saved order.
func (b *Backend) Load(ctx context.Context) (types.PantryTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.QueryContext(ctx, selectPantry)
	if err != nil {
		return nil, fmt.Errorf("query pantry: %w", err)
	}
	defer rows.Close()

	table := types.PantryTable{}
	for rows.Next() {
		var r types.PantryRecord
		if err := rows.Scan(&r.Item, &r.ExpirationDate); err != nil {
			return nil, fmt.Errorf("scan pantry row: %w", err)
		}
		table = append(table, r)
	}
	return table, rows.Err()
}

// Save deletes every row and inserts table, in one transaction.
func (b *Backend) Save(ctx context.Context, table types.PantryTable) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deletePantry); err != nil {
		return fmt.Errorf("clear pantry: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertPantry)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range table {
		if _, err := stmt.ExecContext(ctx, i, r.Item, r.ExpirationDate); err != nil {
			return fmt.Errorf("insert %q: %w", r.Item, err)
		}
	}
	return tx.Commit()
}
