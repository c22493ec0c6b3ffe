package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPantryRecordExpires(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		want   time.Time
		wantOK bool
	}{
		{"canonical", "2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"surrounding space", " 2024-01-05 ", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"timestamp truncated to day", "2024-01-05 13:45:00", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"slashes", "2024/01/05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"us style", "01/05/2024", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "soon", time.Time{}, false},
		{"NaT from old exports", "NaT", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PantryRecord{Item: "x", ExpirationDate: tt.date}.Expires(time.UTC)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"2024/02/29", "2023-02-29", "not-a-date", "", "02/29/2024"} {
		_, err := ParseDate(bad)
		require.Error(t, err, bad)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), bad)
		assert.ErrorIs(t, err, ErrInvalidDate)
		assert.Equal(t, ColumnExpirationDate, ve.Field)
	}
}

func TestTableFromRows(t *testing.T) {
	t.Run("columns located by header name", func(t *testing.T) {
		header := []string{"Notes", "Expiration_Date", "Item"}
		rows := [][]string{
			{"top shelf", "2024-01-01", "Milk"},
			{"", "", ""},
			{"", "2024-02-01"},
		}
		table, err := TableFromRows(header, rows)
		require.NoError(t, err)
		assert.Equal(t, PantryTable{
			{Item: "Milk", ExpirationDate: "2024-01-01"},
			{Item: "", ExpirationDate: "2024-02-01"},
		}, table)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := TableFromRows([]string{"Item"}, nil)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("empty grid is empty table", func(t *testing.T) {
		table, err := TableFromGrid(nil)
		require.NoError(t, err)
		assert.Empty(t, table)
	})
}

func TestPantryTableRowsRoundTrip(t *testing.T) {
	table := PantryTable{
		{Item: "Milk", ExpirationDate: "2024-01-01"},
		{Item: "Eggs", ExpirationDate: "2099-01-01"},
	}
	rows := table.Rows()
	assert.Equal(t, Header, rows[0])

	back, err := TableFromGrid(rows)
	require.NoError(t, err)
	assert.Equal(t, table, back)
	assert.Equal(t, []string{"Milk", "Eggs"}, table.Items())
}

func TestPantryTableClone(t *testing.T) {
	table := PantryTable{{Item: "Milk", ExpirationDate: "2024-01-01"}}
	c := table.Clone()
	c[0].Item = "Oat milk"
	assert.Equal(t, "Milk", table[0].Item)
	assert.NotNil(t, PantryTable(nil).Clone())
}
