// Package sheets implements the pantry store on a Google spreadsheet. The
// first row of the worksheet is the header; every other row is one record.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Backend implements types.Store using the Sheets API.
type Backend struct {
	mu            sync.Mutex
	attached      bool
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string

	// clientOpts replace the credentials-file options when set.
	clientOpts []option.ClientOption
}

// NewBackend creates a detached Sheets backend. Options, when given, are
// used instead of the service-account credentials file from the config.
func NewBackend(opts ...option.ClientOption) *Backend {
	return &Backend{clientOpts: opts}
}

// Attach builds the Sheets client from config.Sheets.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	sc := config.Sheets
	if sc.SpreadsheetID == "" {
		return &types.ConfigurationError{Missing: []string{"sheets.spreadsheet_id"}}
	}

	opts := b.clientOpts
	if len(opts) == 0 {
		creds := sc.CredentialsFile
		if creds == "" {
			creds = types.DefaultCredentials
		}
		opts = []option.ClientOption{
			option.WithCredentialsFile(creds),
			option.WithScopes(sheets.SpreadsheetsScope),
		}
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	b.svc = svc
	b.spreadsheetID = sc.SpreadsheetID
	b.worksheet = sc.Worksheet
	if b.worksheet == "" {
		b.worksheet = types.DefaultWorksheet
	}
	b.attached = true
	return nil
}

// Detach drops the client. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = false
	b.svc = nil
	return nil
}

// Load reads the whole worksheet. An empty worksheet is an empty table.
func (b *Backend) Load(ctx context.Context) (types.PantryTable, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	resp, err := b.svc.Spreadsheets.Values.Get(b.spreadsheetID, quoteSheet(b.worksheet)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		grid = append(grid, cells)
	}
	return types.TableFromGrid(grid)
}

// Save clears the worksheet and writes the header plus every record from A1.
func (b *Backend) Save(ctx context.Context, table types.PantryTable) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	sheet := quoteSheet(b.worksheet)
	if _, err := b.svc.Spreadsheets.Values.Clear(b.spreadsheetID, sheet, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	rows := table.Rows()
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		values = append(values, cells)
	}
	if _, err := b.svc.Spreadsheets.Values.Update(b.spreadsheetID, sheet+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	return nil
}

// quoteSheet quotes a worksheet name for A1 notation when it contains
// anything but letters, digits and underscores.
func quoteSheet(name string) string {
	plain := strings.IndexFunc(name, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) < 0
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
