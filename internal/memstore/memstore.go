// Package memstore provides an in-memory types.Store used by tests.
package memstore

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Store keeps the table in memory. LoadErr and SaveErr, when set, are
// returned by the next Load and Save calls.
type Store struct {
	mu       sync.Mutex
	attached bool
	table    types.PantryTable

	LoadErr error
	SaveErr error
	Loads   int
	Saves   int
}

// New returns an attached Store holding a copy of table.
func New(table types.PantryTable) *Store {
	return &Store{attached: true, table: table.Clone()}
}

// Attach marks the store attached. The config is ignored.
func (s *Store) Attach(ctx context.Context, config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return types.ErrAlreadyAttached
	}
	s.attached = true
	return nil
}

// Detach marks the store detached. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
	return nil
}

// Load returns a copy of the stored table.
func (s *Store) Load(ctx context.Context) (types.PantryTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	s.Loads++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.table.Clone(), nil
}

// Save replaces the stored table with a copy of table.
func (s *Store) Save(ctx context.Context, table types.PantryTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return types.ErrStoreDetached
	}
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.table = table.Clone()
	return nil
}

// Table returns a copy of the stored table without counting a Load.
func (s *Store) Table() types.PantryTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Clone()
}
