// Package jsonl implements the default pantry store: one JSON object per
// line in {data_dir}/pantry.jsonl, replaced atomically on every save.
package jsonl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// FileName is the table file inside the data directory.
const FileName = "pantry.jsonl"

// Backend implements types.Store on a JSONL file.
type Backend struct {
	mu       sync.Mutex
	attached bool
	path     string
}

// NewBackend creates a detached JSONL backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates the data directory if needed and points the backend at
// its pantry.jsonl. The file itself is created on first Save.
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
	b.path = filepath.Join(dataDir, FileName)
	b.attached = true
	return nil
}

// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = false
	return nil
}

// Path returns the table file path. Empty until attached.
func (b *Backend) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// Load reads every record. A missing file is an empty table. Lines that are
// not valid JSON objects are skipped.
func (b *Backend) Load(ctx context.Context) (types.PantryTable, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	lines, err := readLines(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.PantryTable{}, nil
	}
	if err != nil {
		return nil, err
	}

	table := make(types.PantryTable, 0, len(lines))
	for _, line := range lines {
		var r types.PantryRecord
		if err := json.Unmarshal(line, &r); err != nil {
			continue
		}
		table = append(table, r)
	}
	return table, nil
}

// Save replaces the file with table.
func (b *Backend) Save(ctx context.Context, table types.PantryTable) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	lines := make([]json.RawMessage, 0, len(table))
	for _, r := range table {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		lines = append(lines, data)
	}
	return writeLines(b.path, lines)
}
