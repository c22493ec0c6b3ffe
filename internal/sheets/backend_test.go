package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// fakeSheet is an in-process stand-in for the values endpoints of one
// spreadsheet.
type fakeSheet struct {
	values   [][]any
	cleared  int
	inputOpt string
	paths    []string
	failGet  bool
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.paths = append(f.paths, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet:
		if f.failGet {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"range": "Sheet1!A1:B10", "majorDimension": "ROWS", "values": f.values})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
		f.cleared++
		f.values = nil
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPut:
		var body struct {
			Values [][]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.inputOpt = r.URL.Query().Get("valueInputOption")
		f.values = body.Values
		_, _ = w.Write([]byte(`{"updatedRows":1}`))
	default:
		http.NotFound(w, r)
	}
}

func attachFake(t *testing.T, fake *fakeSheet, worksheet string) *Backend {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	b := NewBackend(option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	cfg := types.Config{Backend: types.BackendSheets, Sheets: types.SheetsConfig{SpreadsheetID: "sheet-id", Worksheet: worksheet}}
	require.NoError(t, b.Attach(context.Background(), cfg))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttachRequiresSpreadsheetID(t *testing.T) {
	err := NewBackend().Attach(context.Background(), types.Config{Backend: types.BackendSheets})
	var ce *types.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"sheets.spreadsheet_id"}, ce.Missing)
}

func TestLoad(t *testing.T) {
	fake := &fakeSheet{values: [][]any{
		{"Item", "Expiration_Date"},
		{"Milk", "2024-01-01"},
		{"Eggs", "2099-01-01"},
		{"", ""},
		{"Jam"},
	}}
	b := attachFake(t, fake, "")

	got, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.PantryTable{
		{Item: "Milk", ExpirationDate: "2024-01-01"},
		{Item: "Eggs", ExpirationDate: "2099-01-01"},
		{Item: "Jam", ExpirationDate: ""},
	}, got)
	assert.Contains(t, fake.paths[0], "/v4/spreadsheets/sheet-id/values/Sheet1")
}

func TestLoadEmptySheet(t *testing.T) {
	b := attachFake(t, &fakeSheet{}, "")
	got, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadError(t *testing.T) {
	b := attachFake(t, &fakeSheet{failGet: true}, "")
	_, err := b.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read sheet")
}

func TestSaveClearsThenWritesFromA1(t *testing.T) {
	fake := &fakeSheet{values: [][]any{{"Item", "Expiration_Date"}, {"Old", "2020-01-01"}}}
	b := attachFake(t, fake, "")
	ctx := context.Background()

	table := types.PantryTable{
		{Item: "Milk", ExpirationDate: "2024-01-01"},
		{Item: "Eggs", ExpirationDate: "2099-01-01"},
	}
	require.NoError(t, b.Save(ctx, table))
	assert.Equal(t, 1, fake.cleared)
	assert.Equal(t, "RAW", fake.inputOpt)
	assert.Equal(t, [][]any{
		{"Item", "Expiration_Date"},
		{"Milk", "2024-01-01"},
		{"Eggs", "2099-01-01"},
	}, fake.values)
	assert.Contains(t, fake.paths[len(fake.paths)-1], "Sheet1!A1")

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "Sheet1", quoteSheet("Sheet1"))
	assert.Equal(t, "'My Pantry'", quoteSheet("My Pantry"))
	assert.Equal(t, "'Bob''s'", quoteSheet("Bob's"))
}

func TestLifecycle(t *testing.T) {
	b := attachFake(t, &fakeSheet{}, "")
	ctx := context.Background()
	assert.ErrorIs(t, b.Attach(ctx, types.Config{Sheets: types.SheetsConfig{SpreadsheetID: "x"}}), types.ErrAlreadyAttached)
	require.NoError(t, b.Detach())
	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}
