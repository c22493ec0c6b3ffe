package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// setupBackend attaches a Backend to a fresh data directory.
func setupBackend(t *testing.T, dataDir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(context.Background(), types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttachCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	setupBackend(t, dir)

	_, err := os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestSaveLoad(t *testing.T) {
	tests := []struct {
		name  string
		saves []types.PantryTable
		want  types.PantryTable
	}{
		{
			name: "empty database loads empty table",
			want: types.PantryTable{},
		},
		{
			name: "order is preserved",
			saves: []types.PantryTable{{
				{Item: "Milk", ExpirationDate: "2024-01-01"},
				{Item: "Jam", ExpirationDate: "NaT"},
				{Item: "Eggs", ExpirationDate: "2099-01-01"},
			}},
			want: types.PantryTable{
				{Item: "Milk", ExpirationDate: "2024-01-01"},
				{Item: "Jam", ExpirationDate: "NaT"},
				{Item: "Eggs", ExpirationDate: "2099-01-01"},
			},
		},
		{
			name: "second save replaces the first",
			saves: []types.PantryTable{
				{{Item: "A", ExpirationDate: "2024-01-01"}, {Item: "B", ExpirationDate: "2024-01-02"}},
				{{Item: "C", ExpirationDate: "2024-01-03"}},
			},
			want: types.PantryTable{{Item: "C", ExpirationDate: "2024-01-03"}},
		},
		{
			name: "saving empty clears",
			saves: []types.PantryTable{
				{{Item: "A", ExpirationDate: "2024-01-01"}},
				{},
			},
			want: types.PantryTable{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t, t.TempDir())
			ctx := context.Background()
			for _, s := range tt.saves {
				require.NoError(t, b.Save(ctx, s))
			}
			got, err := b.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataSurvivesReattach(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b := NewBackend()
	require.NoError(t, b.Attach(ctx, types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	require.NoError(t, b.Save(ctx, types.PantryTable{{Item: "Rice", ExpirationDate: "2030-01-01"}}))
	require.NoError(t, b.Detach())

	b2 := setupBackend(t, dir)
	got, err := b2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice"}, got.Items())
}

func TestLifecycle(t *testing.T) {
	b := setupBackend(t, t.TempDir())
	ctx := context.Background()

	assert.ErrorIs(t, b.Attach(ctx, types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}), types.ErrAlreadyAttached)
	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())

	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Save(ctx, types.PantryTable{}), types.ErrStoreDetached)
}
