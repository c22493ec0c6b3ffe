// Package postgres implements the pantry store on a PostgreSQL table.
package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// TableName is the table holding pantry rows.
const TableName = "pantry_items"

const (
	createTable = `CREATE TABLE IF NOT EXISTS pantry_items (
	position        INTEGER PRIMARY KEY,
	item            TEXT NOT NULL,
	expiration_date TEXT NOT NULL
)`
	selectAll = `SELECT item, expiration_date FROM pantry_items ORDER BY position`
	deleteAll = `DELETE FROM pantry_items`
)

var copyColumns = []string{"position", "item", "expiration_date"}

// Backend implements types.Store on a pgx connection pool.
type Backend struct {
	mu       sync.Mutex
	attached bool
	pool     *pgxpool.Pool
}

// NewBackend creates a detached postgres backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach connects to config.Postgres.DSN and creates the table if needed.
func (b *Backend) Attach(ctx context.Context, cfg types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if cfg.Postgres.DSN == "" {
		return &types.ConfigurationError{Missing: []string{"postgres.dsn"}}
	}

	pcfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("parse postgres dsn: %w", err)
	}
	pcfg.MaxConns = 2
	pcfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createTable); err != nil {
		pool.Close()
		return fmt.Errorf("create %s: %w", TableName, err)
	}

	b.pool = pool
	b.attached = true
	return nil
}

// Detach closes the pool. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.pool.Close()
	b.pool = nil
	b.attached = false
	return nil
}

// Load reads every row in stored order.
func (b *Backend) Load(ctx context.Context) (types.PantryTable, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.pool.Query(ctx, selectAll)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", TableName, err)
	}
	table, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.PantryRecord, error) {
		var r types.PantryRecord
		err := row.Scan(&r.Item, &r.ExpirationDate)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", TableName, err)
	}
	return types.PantryTable(table), nil
}

// Save replaces the table contents in a single transaction.
func (b *Backend) Save(ctx context.Context, table types.PantryTable) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteAll); err != nil {
		return fmt.Errorf("clear %s: %w", TableName, err)
	}
	rows := make([][]any, len(table))
	for i, r := range table {
		rows[i] = []any{int32(i), r.Item, r.ExpirationDate}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{TableName}, copyColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy %s: %w", TableName, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
