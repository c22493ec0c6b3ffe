package types

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the canonical expiration date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Column names of the stored table.
const (
	ColumnItem           = "Item"
	ColumnExpirationDate = "Expiration_Date"
)

// Header is the header row written by every backend.
var Header = []string{ColumnItem, ColumnExpirationDate}

// lenientLayouts are accepted when reading stored dates. Spreadsheets and
// older exports sometimes re-render the canonical form.
var lenientLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// PantryRecord is one food item and its expiration date as stored.
type PantryRecord struct {
	Item           string `json:"Item"`
	ExpirationDate string `json:"Expiration_Date"`
}

// Expires parses the stored expiration date. The result is midnight of that
// calendar day in loc (time.Local when loc is nil).
func (r PantryRecord) Expires(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(r.ExpirationDate)
	for _, layout := range lenientLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

// ParseDate validates s against DateLayout exactly. It returns a
// *ValidationError wrapping ErrInvalidDate on mismatch.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: ColumnExpirationDate, Value: s, Err: ErrInvalidDate}
	}
	return t, nil
}

// PantryTable is the ordered list of pantry records.
type PantryTable []PantryRecord

// Items returns the item names in table order.
func (t PantryTable) Items() []string {
	items := make([]string, 0, len(t))
	for _, r := range t {
		items = append(items, r.Item)
	}
	return items
}

// Clone returns a copy that shares no backing array with t.
func (t PantryTable) Clone() PantryTable {
	if t == nil {
		return PantryTable{}
	}
	return slices.Clone(t)
}

// Rows returns the header row followed by one row per record.
func (t PantryTable) Rows() [][]string {
	rows := make([][]string, 0, len(t)+1)
	rows = append(rows, slices.Clone(Header))
	for _, r := range t {
		rows = append(rows, []string{r.Item, r.ExpirationDate})
	}
	return rows
}

// TableFromRows builds a table from a header row and value rows. Columns are
// located by header name; extra columns are ignored. Short rows are padded
// and rows whose cells are all empty are skipped.
// Returns ErrMissingColumn if either required column is absent.
func TableFromRows(header []string, rows [][]string) (PantryTable, error) {
	itemIdx, dateIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case ColumnItem:
			itemIdx = i
		case ColumnExpirationDate:
			dateIdx = i
		}
	}
	if itemIdx < 0 || dateIdx < 0 {
		return nil, ErrMissingColumn
	}

	table := make(PantryTable, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		table = append(table, PantryRecord{
			Item:           cell(row, itemIdx),
			ExpirationDate: cell(row, dateIdx),
		})
	}
	return table, nil
}

// TableFromGrid splits grid into header and rows. An empty grid is an empty table.
func TableFromGrid(grid [][]string) (PantryTable, error) {
	if len(grid) == 0 {
		return PantryTable{}, nil
	}
	return TableFromRows(grid[0], grid[1:])
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
