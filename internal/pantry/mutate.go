package pantry

import (
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// AddItem validates item and date, appends the new record, and returns the
// table re-sorted by expiration date. On failure the input table is returned
// as is together with a *types.ValidationError. table itself is never
// modified.
func AddItem(table types.PantryTable, item, date string) (types.PantryTable, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return table, &types.ValidationError{Field: types.ColumnItem, Err: types.ErrEmptyItem}
	}
	d, err := types.ParseDate(date)
	if err != nil {
		return table, err
	}

	next := table.Clone()
	next = append(next, types.PantryRecord{Item: item, ExpirationDate: d.Format(types.DateLayout)})
	SortByExpiration(next)
	return next, nil
}

// SortByExpiration orders table ascending by expiration date, in place.
// The sort is stable; records whose dates do not parse keep their relative
// order after every dated record.
func SortByExpiration(table types.PantryTable) {
	slices.SortStableFunc(table, func(a, b types.PantryRecord) int {
		da, okA := a.Expires(time.UTC)
		db, okB := b.Expires(time.UTC)
		switch {
		case okA && okB:
			return da.Compare(db)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}
