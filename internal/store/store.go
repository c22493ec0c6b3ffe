// Package store selects the pantry storage backend by name.
package store

import (
	"fmt"

	"github.com/mesh-intelligence/pantry/internal/jsonl"
	"github.com/mesh-intelligence/pantry/internal/postgres"
	"github.com/mesh-intelligence/pantry/internal/s3store"
	"github.com/mesh-intelligence/pantry/internal/sheets"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// New returns a detached store for the named backend.
func New(backend string) (types.Store, error) {
	switch backend {
	case types.BackendJSONL:
		return jsonl.NewBackend(), nil
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendSheets:
		return sheets.NewBackend(), nil
	case types.BackendS3:
		return s3store.NewBackend(), nil
	case types.BackendPostgres:
		return postgres.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, backend)
	}
}
